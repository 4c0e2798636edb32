package http

import (
	"net/http"
	"strconv"

	cl "albums-api/pkg/catelog"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	httputils "github.com/twitsprout/tools/http"
	"github.com/twitsprout/tools/requestid"
)

// ListAlbums gets the list of all the albums.
func (h *Handler) ListAlbums(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	v := r.URL.Query()

	res, err := h.Albums.ListAll(ctx)
	if err != nil {
		h.writeError(w, r, "[ListAlbums] error getting albums list", err)
		return
	}

	_ = httputils.WriteJSON(w, v, res, http.StatusOK)
}

// GetAlbum gets the details of the album matching the path id.
func (h *Handler) GetAlbum(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	v := r.URL.Query()

	req, err := parseGetAlbumRequest(r)
	if err != nil {
		h.writeError(w, r, "[GetAlbum] error parsing request", err)
		return
	}

	res, err := h.Albums.GetByID(ctx, req.AlbumID)
	if err != nil {
		h.writeError(w, r, "[GetAlbum] error getting album", err)
		return
	}

	_ = httputils.WriteJSON(w, v, res, http.StatusOK)
}

// CreateAlbum stores the album in the request body under a new id and
// responds with the stored album and its location.
func (h *Handler) CreateAlbum(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	v := r.URL.Query()

	album, err := parseCreateAlbumRequest(r)
	if err != nil {
		h.writeError(w, r, "[CreateAlbum] error parsing request", err)
		return
	}

	res, err := h.Albums.Create(ctx, album)
	if err != nil {
		h.writeError(w, r, "[CreateAlbum] error creating album", err)
		return
	}

	loc, err := h.router.Get("get_album").URL("id", strconv.Itoa(res.ID))
	if err == nil {
		w.Header().Set("Location", loc.String())
	} else {
		h.Logger.Warn("[CreateAlbum] unable to build album location",
			"request_id", requestid.Get(ctx),
			"details", err.Error(),
		)
	}
	_ = httputils.WriteJSON(w, v, res, http.StatusCreated)
}

// UpdateAlbum overwrites the album matching the path id with the request body.
func (h *Handler) UpdateAlbum(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := parseUpdateAlbumRequest(r)
	if err != nil {
		h.writeError(w, r, "[UpdateAlbum] error parsing request", err)
		return
	}

	if err := h.Albums.Update(ctx, req.AlbumID, req.Album); err != nil {
		h.writeError(w, r, "[UpdateAlbum] error updating album", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteAlbum removes the album matching the path id.
func (h *Handler) DeleteAlbum(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := parseGetAlbumRequest(r)
	if err != nil {
		h.writeError(w, r, "[DeleteAlbum] error parsing request", err)
		return
	}

	if err := h.Albums.Delete(ctx, req.AlbumID); err != nil {
		h.writeError(w, r, "[DeleteAlbum] error deleting album", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// FilterAlbums lists the albums whose genre contains the "genre" query value.
func (h *Handler) FilterAlbums(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	v := r.URL.Query()

	res, err := h.Albums.FilterByGenre(ctx, v.Get("genre"))
	if err != nil {
		h.writeError(w, r, "[FilterAlbums] error filtering albums", err)
		return
	}

	_ = httputils.WriteJSON(w, v, res, http.StatusOK)
}

// SearchAlbums lists the albums whose artist or title contains the "term"
// query value.
func (h *Handler) SearchAlbums(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	v := r.URL.Query()

	res, err := h.Albums.SearchByArtistOrTitle(ctx, v.Get("term"))
	if err != nil {
		h.writeError(w, r, "[SearchAlbums] error searching albums", err)
		return
	}

	_ = httputils.WriteJSON(w, v, res, http.StatusOK)
}

// writeError logs err and writes it as a JSON error with the status code
// matching its cause.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	reqID := requestid.Get(r.Context())

	code := statusCode(err)
	if code >= http.StatusInternalServerError {
		h.Logger.Error(msg,
			"request_id", reqID,
			"details", err.Error(),
		)
	} else {
		h.Logger.Warn(msg,
			"request_id", reqID,
			"details", err.Error(),
		)
	}
	_ = httputils.WriteJSONError(w, r.URL.Query(), err.Error(), code)
}

type badRequestError struct {
	msg string
}

func (e *badRequestError) Error() string {
	return e.msg
}

func statusCode(err error) int {
	switch errors.Cause(err) {
	case cl.ErrNotFound:
		return http.StatusNotFound
	case cl.ErrInvalidArgument:
		return http.StatusBadRequest
	}
	if _, ok := errors.Cause(err).(*badRequestError); ok {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func parseAlbumID(r *http.Request, fn string) (int, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &badRequestError{msg: "[" + fn + "] album id must be an integer: '" + raw + "'"}
	}
	return id, nil
}

func parseGetAlbumRequest(r *http.Request) (cl.GetAlbumReq, error) {
	var req cl.GetAlbumReq

	id, err := parseAlbumID(r, "parseGetAlbumRequest")
	if err != nil {
		return req, err
	}

	req = cl.GetAlbumReq{
		AlbumID: id,
	}
	return req, nil
}

func parseCreateAlbumRequest(r *http.Request) (cl.Album, error) {
	var album cl.Album
	if err := httputils.ReadJSON(r.Body, &album); err != nil {
		return album, &badRequestError{msg: err.Error()}
	}
	return album, nil
}

func parseUpdateAlbumRequest(r *http.Request) (cl.UpdateAlbumReq, error) {
	var req cl.UpdateAlbumReq

	id, err := parseAlbumID(r, "parseUpdateAlbumRequest")
	if err != nil {
		return req, err
	}

	var album cl.Album
	if err := httputils.ReadJSON(r.Body, &album); err != nil {
		return req, &badRequestError{msg: err.Error()}
	}

	req = cl.UpdateAlbumReq{
		AlbumID: id,
		Album:   album,
	}
	return req, nil
}
