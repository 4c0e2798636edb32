package memory

import (
	"context"
	"sync"

	"albums-api/internal"
	cl "albums-api/pkg/catelog"
)

var _ internal.AlbumStore = (*AlbumStore)(nil)

// AlbumStore keeps albums in insertion order in process memory. A single
// mutex guards the slice, so concurrent updates to the same album are
// last-writer-wins.
type AlbumStore struct {
	mu     sync.Mutex
	albums []cl.Album
	// lastID is the highest id ever held by the store. Ids are never handed
	// out twice, even after the album holding them is deleted.
	lastID int
}

// NewAlbumStore returns a store holding a copy of seed.
func NewAlbumStore(seed []cl.Album) *AlbumStore {
	albums := make([]cl.Album, len(seed))
	copy(albums, seed)
	s := &AlbumStore{albums: albums}
	s.lastID = s.highestID()
	return s
}

func (s *AlbumStore) ListAlbums(ctx context.Context) ([]cl.Album, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := make([]cl.Album, len(s.albums))
	copy(res, s.albums)
	return res, nil
}

func (s *AlbumStore) GetAlbum(ctx context.Context, id int) (cl.Album, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return cl.Album{}, cl.ErrNotFound
	}
	return s.albums[i], nil
}

// CreateAlbum assigns the album the next id, one past the highest id the
// store has ever held, and appends it.
func (s *AlbumStore) CreateAlbum(ctx context.Context, album cl.Album) (cl.Album, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	album.ID = s.nextID()
	s.albums = append(s.albums, album)
	return album, nil
}

func (s *AlbumStore) UpdateAlbum(ctx context.Context, album cl.Album) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(album.ID)
	if i < 0 {
		return cl.ErrNotFound
	}
	s.albums[i] = album
	return nil
}

func (s *AlbumStore) DeleteAlbum(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return cl.ErrNotFound
	}
	s.albums = append(s.albums[:i], s.albums[i+1:]...)
	return nil
}

// indexOf must be called with mu held.
func (s *AlbumStore) indexOf(id int) int {
	for i, a := range s.albums {
		if a.ID == id {
			return i
		}
	}
	return -1
}

// nextID must be called with mu held.
func (s *AlbumStore) nextID() int {
	if h := s.highestID(); h > s.lastID {
		s.lastID = h
	}
	s.lastID++
	return s.lastID
}

// highestID must be called with mu held, or before the store is shared.
func (s *AlbumStore) highestID() int {
	highest := 0
	for _, a := range s.albums {
		if a.ID > highest {
			highest = a.ID
		}
	}
	return highest
}
