package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	httputils "github.com/twitsprout/tools/http"
)

// Handler mounts all the handlers at the appropriate routes and adds any required middleware.
func (h *Handler) Handler() http.Handler {
	r := mux.NewRouter()

	r.Use(httputils.TimeoutMiddleware(1 * time.Minute))
	r.Use(httputils.RequestIDMiddleware)
	r.Use(httputils.RealIPMiddleware)
	r.Use(httputils.LimitReaderMiddleware(1 << 20))
	r.Use(httputils.LoggingMiddleware(h.Logger))
	r.Use(httputils.RecoverMiddleware(h.Logger, httputils.InternalServerErrorHandler(h.Logger)))
	r.Use(httputils.MaxConnectionsMiddleware(5000, httputils.ServiceUnavailableHandler(h.Logger)))
	r.Use(httputils.ConcurrentLimitMiddleware(250, httputils.ServiceUnavailableHandler(h.Logger)))

	r.MethodNotAllowedHandler = httputils.MethodNotAllowedHandler(h.Logger)
	r.NotFoundHandler = httputils.NotFoundHandler(h.Logger)

	versionHandler := httputils.VersionHandler(h.AppName, h.Version, h.Logger)
	r.Methods("GET").Path("/").Name("root").Handler(versionHandler)
	r.Methods("GET").Path("/version").Name("version").Handler(versionHandler)
	if lh := h.Logger.Handler(); lh != nil {
		r.Methods("GET", "PUT").Path("/loglevel").Name("log_level").Handler(lh)
	}

	api := r.PathPrefix("/api").Subrouter()

	// filter and search are registered before {id} so they are not taken as ids.
	api.Methods("GET").Path("/albums").Name("list_albums").HandlerFunc(h.ListAlbums)
	api.Methods("GET").Path("/albums/filter").Name("filter_albums").HandlerFunc(h.FilterAlbums)
	api.Methods("GET").Path("/albums/search").Name("search_albums").HandlerFunc(h.SearchAlbums)
	api.Methods("GET").Path("/albums/{id}").Name("get_album").HandlerFunc(h.GetAlbum)
	api.Methods("POST").Path("/albums").Name("create_album").HandlerFunc(h.CreateAlbum)
	api.Methods("PUT").Path("/albums/{id}").Name("update_album").HandlerFunc(h.UpdateAlbum)
	api.Methods("DELETE").Path("/albums/{id}").Name("delete_album").HandlerFunc(h.DeleteAlbum)
	h.router = r
	return r
}
