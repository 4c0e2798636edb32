package mock

import (
	"context"

	"albums-api/internal"
	cl "albums-api/pkg/catelog"
)

var _ internal.AlbumStore = (*AlbumStore)(nil)

// AlbumStore implements internal.AlbumStore for mocking purposes.
type AlbumStore struct {
	ListAlbumsFn  func(ctx context.Context) ([]cl.Album, error)
	GetAlbumFn    func(ctx context.Context, id int) (cl.Album, error)
	CreateAlbumFn func(ctx context.Context, album cl.Album) (cl.Album, error)
	UpdateAlbumFn func(ctx context.Context, album cl.Album) error
	DeleteAlbumFn func(ctx context.Context, id int) error
}

// ListAlbums proxies the request to the injected ListAlbumsFn.
func (s *AlbumStore) ListAlbums(ctx context.Context) ([]cl.Album, error) {
	return s.ListAlbumsFn(ctx)
}

// GetAlbum proxies the request to the injected GetAlbumFn.
func (s *AlbumStore) GetAlbum(ctx context.Context, id int) (cl.Album, error) {
	return s.GetAlbumFn(ctx, id)
}

// CreateAlbum proxies the request to the injected CreateAlbumFn.
func (s *AlbumStore) CreateAlbum(ctx context.Context, album cl.Album) (cl.Album, error) {
	return s.CreateAlbumFn(ctx, album)
}

// UpdateAlbum proxies the request to the injected UpdateAlbumFn.
func (s *AlbumStore) UpdateAlbum(ctx context.Context, album cl.Album) error {
	return s.UpdateAlbumFn(ctx, album)
}

// DeleteAlbum proxies the request to the injected DeleteAlbumFn.
func (s *AlbumStore) DeleteAlbum(ctx context.Context, id int) error {
	return s.DeleteAlbumFn(ctx, id)
}
