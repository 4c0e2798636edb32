package main

import (
	"context"
	"log"
	"os"
	"syscall"
	"time"

	"albums-api/internal"
	"albums-api/internal/http"
	"albums-api/internal/memory"
	"albums-api/internal/postgres"
	"albums-api/internal/service"

	"cloud.google.com/go/compute/metadata"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	httputils "github.com/twitsprout/tools/http"
	"github.com/twitsprout/tools/lifecycle"
	"github.com/twitsprout/tools/zap"
)

var version string

const (
	storageMemory   = "memory"
	storagePostgres = "postgres"
)

type variables struct {
	Addr         string `required:"true" envconfig:"addr"`
	Storage      string `default:"memory" envconfig:"storage"`
	SeedFile     string `default:"data/albums.json" envconfig:"seed_file"`
	PostgresHost string `required:"false" envconfig:"postgres_host"`
	PostgresPort int    `required:"false" envconfig:"postgres_port"`
	PostgresDB   string `required:"false" envconfig:"postgres_db"`
	PostgresUser string `required:"false" envconfig:"postgres_user"`
	PostgresPass string `required:"false" envconfig:"postgres_pass"`
	LogLevel     string `required:"false" envconfig:"log_level"`
	AppName      string `default:"albums-api" envconfig:"app_name"`
}

var v variables

func init() {
	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	if metadata.OnGCE() {
		port := os.Getenv("PORT")
		err := os.Setenv("ADDR", ":"+port)
		if err != nil {
			log.Fatal(err)
		}
	}

	envconfig.MustProcess("albums", &v)
	if v.LogLevel == "" {
		v.LogLevel = "info"
	}
}

func main() {
	logger := zap.New(v.AppName, version, os.Stdout)
	if err := logger.SetLevel(v.LogLevel); err != nil {
		logger.Error("failed to set log level", "error", err.Error())
	}
	logger.Info("configuration loaded",
		"addr", v.Addr,
		"storage", v.Storage,
		"log_level", v.LogLevel,
	)

	store, closeStore := newStore(v, logger)
	defer closeStore()

	ctx := context.Background()

	lc, ctx := lifecycle.New(ctx, logger)
	lc.Start("albums-api root context", func() error {
		<-ctx.Done()
		return ctx.Err()
	})

	h := http.Handler{
		Logger:  logger,
		Version: version,
		Albums:  service.NewAlbumService(store),
		AppName: v.AppName,
	}
	server := httputils.NewServer(v.Addr, h.Handler())
	lc.StartServer(server)
	lc.StartSignals(syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	_ = lc.Wait(15 * time.Second)
}

func newStore(v variables, logger *zap.Zap) (internal.AlbumStore, func()) {
	switch v.Storage {
	case storagePostgres:
		pg := newPostgres(v)
		return pg, func() {
			if err := pg.Close(); err != nil {
				logger.Warn("failed to close postgres", "details", err.Error())
			}
		}
	case storageMemory:
		return memory.NewAlbumStoreFromFile(v.SeedFile, logger), func() {}
	default:
		log.Fatalf("unknown storage %q, expected %q or %q", v.Storage, storageMemory, storagePostgres)
		return nil, nil
	}
}

func newPostgres(v variables) *postgres.Postgres {
	pgConfig := postgres.Config{
		Host:       v.PostgresHost,
		Name:       v.PostgresDB,
		Password:   v.PostgresPass,
		Username:   v.PostgresUser,
		DisableSSL: true,
	}
	// Only use a Postgres port if one was provided
	if v.PostgresPort > 0 {
		pgConfig.Port = v.PostgresPort
	}
	pg, err := postgres.New(pgConfig)
	if err != nil {
		panic(err)
	}
	return pg
}
