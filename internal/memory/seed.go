package memory

import (
	"io"
	"os"

	cl "albums-api/pkg/catelog"

	"github.com/pkg/errors"
	"github.com/twitsprout/tools"
	"github.com/twitsprout/tools/json"
)

// LoadAlbums decodes a JSON array of albums from r.
func LoadAlbums(r io.Reader) ([]cl.Album, error) {
	var albums []cl.Album
	if err := json.Decode(r, &albums); err != nil {
		return nil, errors.Wrap(err, "decode seed albums")
	}
	return albums, nil
}

// LoadAlbumsFile reads the seed albums stored at path.
func LoadAlbumsFile(path string) ([]cl.Album, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open seed file")
	}
	defer f.Close()

	albums, err := LoadAlbums(f)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return albums, nil
}

// NewAlbumStoreFromFile builds a store seeded from the albums at path. A
// missing or unreadable seed file is logged and yields an empty store.
func NewAlbumStoreFromFile(path string, logger tools.Logger) *AlbumStore {
	albums, err := LoadAlbumsFile(path)
	if err != nil {
		logger.Warn("starting with no albums",
			"seed_file", path,
			"details", err.Error(),
		)
	}
	logger.Info("loaded seed albums", "count", len(albums))
	return NewAlbumStore(albums)
}
