package http

import (
	"albums-api/internal/service"

	"github.com/gorilla/mux"
	"github.com/twitsprout/tools"
)

type Handler struct {
	Version string
	AppName string
	router  *mux.Router
	Logger  tools.Logger
	Albums  *service.AlbumService
}
