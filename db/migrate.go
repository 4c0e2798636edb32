// Command migrate applies or rolls back the albums table schema kept in
// db/migrations against a Postgres database. It is run from the repository
// root before starting albums-api with STORAGE=postgres:
//
//	go run ./db -host localhost:5432 -database albums
//	go run ./db -down
//
// The in-memory store needs no migrations.
package main

import (
	"flag"
	"fmt"
	"log"

	migrate "github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

var (
	db   = flag.String("database", "albums", "name of the database holding the albums table")
	host = flag.String("host", "localhost:5432", "postgres host and port")
	user = flag.String("user", "postgres", "postgres user")
	pass = flag.String("password", "", "postgres password")
	path = flag.String("path", "db/migrations", "directory holding the albums migrations")
	down = flag.Bool("down", false, "roll back every albums migration instead of applying them")
)

func main() {
	flag.Parse()
	dsn := fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable", *user, *pass, *host, *db)
	m, err := migrate.New("file://"+*path, dsn)
	if err != nil {
		log.Fatalf("open albums migrations: %s", err)
	}
	defer m.Close()

	if *down {
		err = m.Down()
	} else {
		err = m.Up()
	}
	if err == migrate.ErrNoChange {
		log.Printf("albums schema already up to date in %s", *db)
		return
	}
	if err != nil {
		log.Fatalf("migrate albums schema: %s", err)
	}

	version, dirty, err := m.Version()
	switch {
	case err == migrate.ErrNilVersion:
		log.Printf("albums schema rolled back in %s", *db)
	case err != nil:
		log.Fatalf("read albums schema version: %s", err)
	default:
		log.Printf("albums schema at version %d (dirty=%t) in %s", version, dirty, *db)
	}
}
