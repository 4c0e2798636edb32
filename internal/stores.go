package internal

import (
	"context"

	cl "albums-api/pkg/catelog"
)

// AlbumStore is the storage behind the album service. Lookups by id return
// cl.ErrNotFound when no album has that id.
type AlbumStore interface {
	ListAlbums(ctx context.Context) ([]cl.Album, error)
	GetAlbum(ctx context.Context, id int) (cl.Album, error)
	CreateAlbum(ctx context.Context, album cl.Album) (cl.Album, error)
	UpdateAlbum(ctx context.Context, album cl.Album) error
	DeleteAlbum(ctx context.Context, id int) error
}
