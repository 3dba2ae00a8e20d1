package http

import (
	"context"
	"fmt"
	"net/http"

	"album-service/internal/auth"
	"album-service/internal/metrics"
	cl "album-service/pkg/catelog"

	"github.com/gorilla/mux"
	httputils "github.com/twitsprout/tools/http"
	"github.com/twitsprout/tools/requestid"
)

func (h *Handler) albumRoutes() []route {
	return []route{
		{name: "create_album", method: "POST", path: "/album", handler: h.CreateAlbum},
		{name: "list_albums", method: "GET", path: "/album", handler: h.ListAlbums},
		{name: "get_album", method: "GET", path: "/album/{id}", handler: h.GetAlbum},
		{name: "update_album", method: "PUT", path: "/album/{id}", handler: h.UpdateAlbum},
		{name: "delete_album", method: "DELETE", path: "/album/{id}", handler: h.DeleteAlbum},
	}
}

// authenticated returns the request identity or cl.ErrUnauthorized.
func authenticated(ctx context.Context) (auth.Identity, error) {
	id, ok := auth.FromContext(ctx)
	if !ok {
		return id, cl.ErrUnauthorized
	}
	return id, nil
}

// privileged returns the request identity if it may mutate resources.
func privileged(ctx context.Context) (auth.Identity, error) {
	id, err := authenticated(ctx)
	if err != nil {
		return id, err
	}
	if !id.IsPrivileged() {
		return id, cl.ErrNotPrivileged
	}
	return id, nil
}

// CreateAlbum stores a new album.
func (h *Handler) CreateAlbum(w http.ResponseWriter, r *http.Request) {
	const op = "albums/create"
	ctx := r.Context()

	if _, err := privileged(ctx); err != nil {
		h.fail(w, r, op, err)
		return
	}

	var req cl.CreateAlbumRequest
	if err := httputils.ReadJSON(r.Body, &req); err != nil {
		h.fail(w, r, op, badRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		h.fail(w, r, op, err)
		return
	}

	album, err := h.AlbumStore.CreateAlbum(ctx, req)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}

	h.writeJSON(w, r, album, http.StatusCreated)
}

// ListAlbums get the list of all the albums
func (h *Handler) ListAlbums(w http.ResponseWriter, r *http.Request) {
	const op = "albums/showAll"
	ctx := r.Context()

	if _, err := authenticated(ctx); err != nil {
		h.fail(w, r, op, err)
		return
	}

	albums, err := h.AlbumStore.ListAlbums(ctx)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	if albums == nil {
		albums = []cl.Album{}
	}

	h.writeJSON(w, r, albums, http.StatusOK)
}

// GetAlbum get the details of a album matching with the album id
func (h *Handler) GetAlbum(w http.ResponseWriter, r *http.Request) {
	const op = "albums/showById"
	ctx := r.Context()

	if _, err := privileged(ctx); err != nil {
		h.fail(w, r, op, err)
		return
	}

	album, err := h.AlbumStore.GetAlbum(ctx, mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, op, err)
		return
	}

	h.writeJSON(w, r, album, http.StatusOK)
}

// UpdateAlbum applies a partial update and responds with the updated album.
func (h *Handler) UpdateAlbum(w http.ResponseWriter, r *http.Request) {
	const op = "albums/updateById"
	ctx := r.Context()

	if _, err := privileged(ctx); err != nil {
		h.fail(w, r, op, err)
		return
	}

	var req cl.UpdateAlbumRequest
	if err := httputils.ReadJSON(r.Body, &req); err != nil {
		h.fail(w, r, op, badRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		h.fail(w, r, op, err)
		return
	}

	album, err := h.AlbumStore.UpdateAlbum(ctx, mux.Vars(r)["id"], req)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}

	h.writeJSON(w, r, album, http.StatusOK)
}

// DeleteAlbum removes an album and then every photo that belonged to it.
func (h *Handler) DeleteAlbum(w http.ResponseWriter, r *http.Request) {
	const op = "albums/deleteById"
	ctx := r.Context()

	if _, err := privileged(ctx); err != nil {
		h.fail(w, r, op, err)
		return
	}

	album, err := h.AlbumStore.DeleteAlbum(ctx, mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	h.cascadeAlbumPhotos(r, op, album.ID)

	res := cl.DeleteAlbumRes{
		Message: fmt.Sprintf("Album '%s' deleted.", album.Title),
		Album:   album,
	}
	h.writeJSON(w, r, res, http.StatusOK)
}

// cascadeAlbumPhotos deletes the photos of a deleted album. The album is
// already gone, so a failure here is only logged.
func (h *Handler) cascadeAlbumPhotos(r *http.Request, op, albumID string) {
	if h.PhotoStore == nil {
		return
	}
	ctx := r.Context()
	n, err := h.PhotoStore.DeleteAlbumPhotos(ctx, albumID)
	if err != nil {
		h.Logger.Error("["+op+"] error deleting album photos",
			"request_id", requestid.Get(ctx),
			"album_id", albumID,
			"details", err.Error(),
		)
		return
	}
	if n > 0 {
		h.stats().Count(metrics.CascadedPhotoDeletes, float64(n), nil)
		h.Logger.Info("["+op+"] deleted album photos",
			"request_id", requestid.Get(ctx),
			"album_id", albumID,
			"count", n,
		)
	}
}
