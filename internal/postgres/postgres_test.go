package postgres

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	cl "albums-api/pkg/catelog"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	tm "github.com/twitsprout/tools/mock"
	"gopkg.in/guregu/null.v3"
)

var testNow = time.Date(2024, 5, 6, 20, 11, 4, 0, time.UTC)

var albumRowColumns = []string{"id", "rank", "artist", "release_year", "genre", "album_title", "created_at", "updated_at"}

func newMockPostgres(t *testing.T) (*Postgres, sqlmock.Sqlmock) {
	t.Helper()
	db, m, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unable to create sqlmock: %s", err.Error())
	}
	t.Cleanup(func() { _ = db.Close() })
	c := &tm.Clock{NowFn: func() time.Time { return testNow }}
	return newWithDB(sqlx.NewDb(db, "sqlmock"), c), m
}

func expectationsMet(t *testing.T, m sqlmock.Sqlmock) {
	t.Helper()
	if err := m.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sql expectations: %s", err.Error())
	}
}

func TestListAlbums(t *testing.T) {
	p, m := newMockPostgres(t)
	m.ExpectQuery(`^SELECT (.+) FROM albums ORDER BY "id" ASC$`).
		WillReturnRows(sqlmock.NewRows(albumRowColumns).
			AddRow(1, 1, "Marvin Gaye", 1971, "Soul", "What's Going On", testNow, testNow).
			AddRow(2, 2, nil, 1966, nil, "Pet Sounds", testNow, testNow))

	albums, err := p.ListAlbums(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	ts := testNow
	exp := []cl.Album{
		{ID: 1, Rank: 1, Artist: null.StringFrom("Marvin Gaye"), ReleaseYear: 1971, Genre: null.StringFrom("Soul"), AlbumTitle: null.StringFrom("What's Going On"), CreatedAt: &ts, UpdatedAt: &ts},
		{ID: 2, Rank: 2, ReleaseYear: 1966, AlbumTitle: null.StringFrom("Pet Sounds"), CreatedAt: &ts, UpdatedAt: &ts},
	}
	if !cmp.Equal(albums, exp) {
		t.Fatalf("unexpected albums: %s", cmp.Diff(exp, albums))
	}
	expectationsMet(t, m)
}

func TestListAlbumsEmpty(t *testing.T) {
	p, m := newMockPostgres(t)
	m.ExpectQuery(`^SELECT (.+) FROM albums`).
		WillReturnRows(sqlmock.NewRows(albumRowColumns))

	albums, err := p.ListAlbums(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	if len(albums) != 0 {
		t.Fatalf("expected no albums, got %d", len(albums))
	}
	expectationsMet(t, m)
}

func TestGetAlbum(t *testing.T) {
	table := []struct {
		label  string
		rows   *sqlmock.Rows
		expErr error
	}{
		{
			label:  "should return not found when no row matches",
			rows:   sqlmock.NewRows(albumRowColumns),
			expErr: cl.ErrNotFound,
		},
		{
			label: "should return the matching album",
			rows:  sqlmock.NewRows(albumRowColumns).AddRow(3, 5, "Nirvana", 1991, "Grunge", "Nevermind", testNow, testNow),
		},
	}
	for _, ts := range table {
		t.Run(ts.label, func(t *testing.T) {
			p, m := newMockPostgres(t)
			m.ExpectQuery(`^SELECT (.+) FROM albums WHERE "id" = \$1$`).
				WithArgs(3).
				WillReturnRows(ts.rows)

			album, err := p.GetAlbum(context.Background(), 3)
			if errors.Cause(err) != ts.expErr {
				t.Fatalf("unexpected error: got %v, want %v", err, ts.expErr)
			}
			if ts.expErr == nil && album.ID != 3 {
				t.Fatalf("unexpected album id: %s", cmp.Diff(3, album.ID))
			}
			expectationsMet(t, m)
		})
	}
}

func TestCreateAlbum(t *testing.T) {
	p, m := newMockPostgres(t)
	m.ExpectQuery(`^INSERT INTO albums (.+) RETURNING "id"$`).
		WithArgs(4, "Joni Mitchell", 1971, "Folk", nil, testNow, testNow).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	in := cl.Album{
		Rank:        4,
		Artist:      null.StringFrom("Joni Mitchell"),
		ReleaseYear: 1971,
		Genre:       null.StringFrom("Folk"),
	}
	created, err := p.CreateAlbum(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}

	ts := testNow
	exp := in
	exp.ID = 11
	exp.CreatedAt = &ts
	exp.UpdatedAt = &ts
	if !cmp.Equal(created, exp) {
		t.Fatalf("unexpected album: %s", cmp.Diff(exp, created))
	}
	expectationsMet(t, m)
}

func TestUpdateAlbum(t *testing.T) {
	table := []struct {
		label    string
		affected int64
		expErr   error
	}{
		{label: "should return not found when no row is updated", affected: 0, expErr: cl.ErrNotFound},
		{label: "should update the matching row", affected: 1},
	}
	for _, ts := range table {
		t.Run(ts.label, func(t *testing.T) {
			p, m := newMockPostgres(t)
			m.ExpectExec(`^UPDATE albums SET (.+) WHERE "id" = \$7$`).
				WithArgs(1, "Miles Davis", 1959, "Jazz", "Kind of Blue", testNow, 2).
				WillReturnResult(sqlmock.NewResult(0, ts.affected))

			err := p.UpdateAlbum(context.Background(), cl.Album{
				ID:          2,
				Rank:        1,
				Artist:      null.StringFrom("Miles Davis"),
				ReleaseYear: 1959,
				Genre:       null.StringFrom("Jazz"),
				AlbumTitle:  null.StringFrom("Kind of Blue"),
			})
			if errors.Cause(err) != ts.expErr {
				t.Fatalf("unexpected error: got %v, want %v", err, ts.expErr)
			}
			expectationsMet(t, m)
		})
	}
}

func TestDeleteAlbum(t *testing.T) {
	table := []struct {
		label    string
		affected int64
		expErr   error
	}{
		{label: "should return not found when no row is deleted", affected: 0, expErr: cl.ErrNotFound},
		{label: "should delete the matching row", affected: 1},
	}
	for _, ts := range table {
		t.Run(ts.label, func(t *testing.T) {
			p, m := newMockPostgres(t)
			m.ExpectExec(`^DELETE FROM albums WHERE "id" = \$1$`).
				WithArgs(9).
				WillReturnResult(sqlmock.NewResult(0, ts.affected))

			err := p.DeleteAlbum(context.Background(), 9)
			if errors.Cause(err) != ts.expErr {
				t.Fatalf("unexpected error: got %v, want %v", err, ts.expErr)
			}
			expectationsMet(t, m)
		})
	}
}

func TestQueryErrorsAreWrapped(t *testing.T) {
	p, m := newMockPostgres(t)
	errConn := errors.New("connection reset")
	m.ExpectQuery(`^SELECT (.+) FROM albums`).WillReturnError(errConn)

	_, err := p.ListAlbums(context.Background())
	if errors.Cause(err) != errConn {
		t.Fatalf("unexpected error: got %v, want cause %v", err, errConn)
	}
	expectationsMet(t, m)
}

// newPostgres connects to a real database when POSTGRES_TEST_HOST is set.
// The albums table must already be migrated.
func newPostgres(t *testing.T) *Postgres {
	dbHost := os.Getenv("POSTGRES_TEST_HOST")
	if dbHost == "" {
		t.Skip("POSTGRES_TEST_HOST not set")
	}
	dbPort, _ := strconv.Atoi(os.Getenv("POSTGRES_TEST_PORT"))
	if dbPort == 0 {
		dbPort = 5432
	}

	p, err := New(Config{
		DisableSSL: true,
		Host:       dbHost,
		Port:       dbPort,
		Name:       "albums_test",
		Password:   os.Getenv("POSTGRES_TEST_PASS"),
		Username:   "postgres",
	})
	if err != nil {
		t.Fatalf("Unable to create postgres instance: %s", err.Error())
	}
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func clearPostgres(p *Postgres, t *testing.T) {
	_, err := p.sqldb.Exec(`TRUNCATE TABLE albums RESTART IDENTITY CASCADE;`)
	if err != nil {
		t.Fatalf("Unable to clear postgres: %s", err.Error())
	}
}

func TestAlbumsRoundTrip(t *testing.T) {
	p := newPostgres(t)
	clearPostgres(p, t)
	ctx := context.Background()

	created, err := p.CreateAlbum(ctx, cl.Album{Rank: 1, AlbumTitle: null.StringFrom("Blue"), Genre: null.StringFrom("Folk")})
	if err != nil {
		t.Fatalf("unexpected error creating album: %s", err.Error())
	}
	got, err := p.GetAlbum(ctx, created.ID)
	if err != nil {
		t.Fatalf("unexpected error getting album: %s", err.Error())
	}
	if got.AlbumTitle != created.AlbumTitle || got.Genre != created.Genre {
		t.Fatalf("unexpected album: %s", cmp.Diff(created, got))
	}

	created.Rank = 2
	if err := p.UpdateAlbum(ctx, created); err != nil {
		t.Fatalf("unexpected error updating album: %s", err.Error())
	}
	if err := p.DeleteAlbum(ctx, created.ID); err != nil {
		t.Fatalf("unexpected error deleting album: %s", err.Error())
	}
	if _, err := p.GetAlbum(ctx, created.ID); errors.Cause(err) != cl.ErrNotFound {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestToSnakeCase(t *testing.T) {
	table := map[string]string{
		"ID":          "id",
		"Rank":        "rank",
		"ReleaseYear": "release_year",
		"AlbumTitle":  "album_title",
		"CreatedAt":   "created_at",
	}
	for in, exp := range table {
		if got := ToSnakeCase(in); got != exp {
			t.Fatalf("unexpected snake case for %q: %s", in, cmp.Diff(exp, got))
		}
	}
}
