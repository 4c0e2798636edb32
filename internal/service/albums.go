package service

import (
	"context"

	"albums-api/internal"
	cl "albums-api/pkg/catelog"

	"github.com/pkg/errors"
)

// AlbumService applies the catalogue's lookup, filtering and error policy on
// top of an AlbumStore. Empty results are reported as cl.ErrNotFound, and an
// update whose path and body ids differ as cl.ErrInvalidArgument.
type AlbumService struct {
	store internal.AlbumStore
}

// NewAlbumService returns an AlbumService backed by store.
func NewAlbumService(store internal.AlbumStore) *AlbumService {
	return &AlbumService{store: store}
}

// ListAll returns every album in storage order.
func (s *AlbumService) ListAll(ctx context.Context) ([]cl.Album, error) {
	albums, err := s.store.ListAlbums(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list albums")
	}
	if len(albums) == 0 {
		return nil, errors.Wrap(cl.ErrNotFound, "no albums found")
	}
	return albums, nil
}

// GetByID returns the album with the given id.
func (s *AlbumService) GetByID(ctx context.Context, id int) (cl.Album, error) {
	album, err := s.store.GetAlbum(ctx, id)
	if err != nil {
		return cl.Album{}, errors.Wrapf(err, "get album %d", id)
	}
	return album, nil
}

// Create stores album under a newly assigned id. Any id set by the caller is
// ignored.
func (s *AlbumService) Create(ctx context.Context, album cl.Album) (cl.Album, error) {
	album.ID = 0
	album.CreatedAt = nil
	album.UpdatedAt = nil
	created, err := s.store.CreateAlbum(ctx, album)
	if err != nil {
		return cl.Album{}, errors.Wrap(err, "create album")
	}
	return created, nil
}

// Update overwrites the album identified by id with album. The ids must
// match; this is checked before the album is looked up.
func (s *AlbumService) Update(ctx context.Context, id int, album cl.Album) error {
	if id != album.ID {
		return errors.Wrapf(cl.ErrInvalidArgument, "album id %d in the url does not match id %d in the request body", id, album.ID)
	}
	album.CreatedAt = nil
	album.UpdatedAt = nil
	if err := s.store.UpdateAlbum(ctx, album); err != nil {
		return errors.Wrapf(err, "update album %d", id)
	}
	return nil
}

// Delete removes the album with the given id.
func (s *AlbumService) Delete(ctx context.Context, id int) error {
	if err := s.store.DeleteAlbum(ctx, id); err != nil {
		return errors.Wrapf(err, "delete album %d", id)
	}
	return nil
}

// FilterByGenre returns the albums whose genre contains genre, ignoring case.
// An empty genre matches every album.
func (s *AlbumService) FilterByGenre(ctx context.Context, genre string) ([]cl.Album, error) {
	albums, err := s.store.ListAlbums(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list albums")
	}
	res := cl.FilterByGenre(albums, genre)
	if len(res) == 0 {
		return nil, errors.Wrap(cl.ErrNotFound, "no albums found with matching genres")
	}
	return res, nil
}

// SearchByArtistOrTitle returns the albums whose artist or title contains
// term, ignoring case. An empty term matches every album.
func (s *AlbumService) SearchByArtistOrTitle(ctx context.Context, term string) ([]cl.Album, error) {
	albums, err := s.store.ListAlbums(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list albums")
	}
	res := cl.SearchByArtistOrTitle(albums, term)
	if len(res) == 0 {
		return nil, errors.Wrap(cl.ErrNotFound, "no albums found with those search parameters")
	}
	return res, nil
}
