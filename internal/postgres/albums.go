package postgres

import (
	"context"

	"albums-api/internal"
	cl "albums-api/pkg/catelog"

	sq "github.com/Masterminds/squirrel"

	"github.com/pkg/errors"
)

var _ internal.AlbumStore = (*Postgres)(nil)

const tableAlbums = "albums"

const (
	albumsColumnID          = `"id"`
	albumsColumnRank        = `"rank"`
	albumsColumnArtist      = `"artist"`
	albumsColumnReleaseYear = `"release_year"`
	albumsColumnGenre       = `"genre"`
	albumsColumnAlbumTitle  = `"album_title"`
	albumsColumnCreatedAt   = `"created_at"`
	albumsColumnUpdatedAt   = `"updated_at"`
)

var albumsColumns = []string{
	albumsColumnID,
	albumsColumnRank,
	albumsColumnArtist,
	albumsColumnReleaseYear,
	albumsColumnGenre,
	albumsColumnAlbumTitle,
	albumsColumnCreatedAt,
	albumsColumnUpdatedAt,
}

func (p *Postgres) ListAlbums(ctx context.Context) ([]cl.Album, error) {
	qv, err := buildListAlbumsQuery()
	if err != nil {
		return nil, errors.Wrap(err, "build list albums query")
	}

	r := []cl.Album{}
	err = p.sqldb.SelectContext(ctx, &r, qv.query, qv.args...)
	if err != nil {
		return nil, errors.Wrap(err, "execute list albums query")
	}
	return r, nil
}

func buildListAlbumsQuery() (QueryValues, error) {
	q, args, err := psql.
		Select(tableColumns(tableAlbums, albumsColumns)...).
		From(tableAlbums).
		OrderBy(albumsColumnID + " ASC").
		ToSql()

	return QueryValues{q, args}, errors.Wrap(err, "list albums build query into SQL string")
}

func (p *Postgres) GetAlbum(ctx context.Context, id int) (cl.Album, error) {
	qv, err := buildGetAlbumQuery(id)
	if err != nil {
		return cl.Album{}, errors.Wrap(err, "build get album query")
	}

	var r []cl.Album
	err = p.sqldb.SelectContext(ctx, &r, qv.query, qv.args...)
	if err != nil {
		return cl.Album{}, errors.Wrap(err, "execute get album query")
	}

	// If no rows are found, return a 404.
	if len(r) == 0 {
		return cl.Album{}, cl.ErrNotFound
	}
	return r[0], nil
}

func buildGetAlbumQuery(id int) (QueryValues, error) {
	q, args, err := psql.
		Select(tableColumns(tableAlbums, albumsColumns)...).
		From(tableAlbums).
		Where(sq.Eq{albumsColumnID: id}).
		ToSql()

	return QueryValues{q, args}, errors.Wrap(err, "get album build query into SQL string")
}

// CreateAlbum inserts the album, letting the albums id sequence pick its id.
// Both timestamps are set to the current time.
func (p *Postgres) CreateAlbum(ctx context.Context, album cl.Album) (cl.Album, error) {
	now := p.clock.Now().UTC()
	album.CreatedAt = &now
	album.UpdatedAt = &now

	qv, err := buildCreateAlbumQuery(album)
	if err != nil {
		return cl.Album{}, errors.Wrap(err, "build create album query")
	}

	err = p.sqldb.QueryRowxContext(ctx, qv.query, qv.args...).Scan(&album.ID)
	if err != nil {
		return cl.Album{}, errors.Wrap(err, "execute create album query")
	}
	return album, nil
}

func buildCreateAlbumQuery(album cl.Album) (QueryValues, error) {
	q, args, err := psql.
		Insert(tableAlbums).
		Columns(albumsColumns[1:]...).
		Values(
			album.Rank,
			album.Artist,
			album.ReleaseYear,
			album.Genre,
			album.AlbumTitle,
			*album.CreatedAt,
			*album.UpdatedAt,
		).
		Suffix("RETURNING " + albumsColumnID).
		ToSql()

	return QueryValues{q, args}, errors.Wrap(err, "create album build query into SQL string")
}

// UpdateAlbum overwrites every mutable column of the album and refreshes
// updated_at. created_at is left untouched.
func (p *Postgres) UpdateAlbum(ctx context.Context, album cl.Album) error {
	now := p.clock.Now().UTC()
	album.UpdatedAt = &now

	qv, err := buildUpdateAlbumQuery(album)
	if err != nil {
		return errors.Wrap(err, "build update album query")
	}
	return p.execAffectingOne(ctx, qv, "update album")
}

func buildUpdateAlbumQuery(album cl.Album) (QueryValues, error) {
	q, args, err := psql.
		Update(tableAlbums).
		Set(albumsColumnRank, album.Rank).
		Set(albumsColumnArtist, album.Artist).
		Set(albumsColumnReleaseYear, album.ReleaseYear).
		Set(albumsColumnGenre, album.Genre).
		Set(albumsColumnAlbumTitle, album.AlbumTitle).
		Set(albumsColumnUpdatedAt, *album.UpdatedAt).
		Where(sq.Eq{albumsColumnID: album.ID}).
		ToSql()

	return QueryValues{q, args}, errors.Wrap(err, "update album build query into SQL string")
}

func (p *Postgres) DeleteAlbum(ctx context.Context, id int) error {
	qv, err := buildDeleteAlbumQuery(id)
	if err != nil {
		return errors.Wrap(err, "build delete album query")
	}
	return p.execAffectingOne(ctx, qv, "delete album")
}

func buildDeleteAlbumQuery(id int) (QueryValues, error) {
	q, args, err := psql.
		Delete(tableAlbums).
		Where(sq.Eq{albumsColumnID: id}).
		ToSql()

	return QueryValues{q, args}, errors.Wrap(err, "delete album build query into SQL string")
}

// execAffectingOne runs a statement keyed by album id, returning
// cl.ErrNotFound when no row matched.
func (p *Postgres) execAffectingOne(ctx context.Context, qv QueryValues, label string) error {
	res, err := p.sqldb.ExecContext(ctx, qv.query, qv.args...)
	if err != nil {
		return errors.Wrapf(err, "execute %s query", label)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrapf(err, "%s rows affected", label)
	}
	if n == 0 {
		return cl.ErrNotFound
	}
	return nil
}
