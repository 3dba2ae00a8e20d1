package http

import (
	"context"
	"fmt"
	"net/http"

	cl "album-service/pkg/catelog"

	"github.com/gorilla/mux"
	httputils "github.com/twitsprout/tools/http"
)

func (h *Handler) photoRoutes() []route {
	return []route{
		{name: "create_photo", method: "POST", path: "/album/{albumId}/photo", handler: h.CreatePhoto},
		{name: "list_photos", method: "GET", path: "/album/{albumId}/photo", handler: h.ListPhotos},
		{name: "get_photo", method: "GET", path: "/album/{albumId}/photo/{photoId}", handler: h.GetPhoto},
		{name: "update_photo", method: "PUT", path: "/album/{albumId}/photo/{photoId}", handler: h.UpdatePhoto},
		{name: "delete_photo", method: "DELETE", path: "/album/{albumId}/photo/{photoId}", handler: h.DeletePhoto},
	}
}

// parentAlbum confirms the album named in the path exists. Every photo
// operation calls it before touching a photo.
func (h *Handler) parentAlbum(ctx context.Context, r *http.Request) (cl.Album, error) {
	return h.AlbumStore.GetAlbum(ctx, mux.Vars(r)["albumId"])
}

// CreatePhoto adds a photo to the album in the path. Any album given in the
// body is replaced with the verified album's id.
func (h *Handler) CreatePhoto(w http.ResponseWriter, r *http.Request) {
	const op = "photos/create"
	ctx := r.Context()

	if _, err := privileged(ctx); err != nil {
		h.fail(w, r, op, err)
		return
	}
	album, err := h.parentAlbum(ctx, r)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}

	var req cl.CreatePhotoRequest
	if err := httputils.ReadJSON(r.Body, &req); err != nil {
		h.fail(w, r, op, badRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		h.fail(w, r, op, err)
		return
	}
	req.AlbumID = album.ID
	if req.Date == nil {
		now := h.now()
		req.Date = &now
	}

	photo, err := h.PhotoStore.CreatePhoto(ctx, req)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}

	h.writeJSON(w, r, photo, http.StatusCreated)
}

// ListPhotos lists every photo of the album in the path.
func (h *Handler) ListPhotos(w http.ResponseWriter, r *http.Request) {
	const op = "photos/showAll"
	ctx := r.Context()

	if _, err := authenticated(ctx); err != nil {
		h.fail(w, r, op, err)
		return
	}
	album, err := h.parentAlbum(ctx, r)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}

	photos, err := h.PhotoStore.ListPhotos(ctx, album.ID)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	if photos == nil {
		photos = []cl.Photo{}
	}

	h.writeJSON(w, r, photos, http.StatusOK)
}

// GetPhoto returns one photo, provided it belongs to the album in the path.
func (h *Handler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	const op = "photos/showById"
	ctx := r.Context()

	if _, err := authenticated(ctx); err != nil {
		h.fail(w, r, op, err)
		return
	}
	album, err := h.parentAlbum(ctx, r)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}

	photo, err := h.PhotoStore.GetPhoto(ctx, album.ID, mux.Vars(r)["photoId"])
	if err != nil {
		h.fail(w, r, op, err)
		return
	}

	h.writeJSON(w, r, photo, http.StatusOK)
}

// UpdatePhoto applies a partial update to a photo of the album in the path.
func (h *Handler) UpdatePhoto(w http.ResponseWriter, r *http.Request) {
	const op = "photos/updateById"
	ctx := r.Context()

	if _, err := privileged(ctx); err != nil {
		h.fail(w, r, op, err)
		return
	}
	album, err := h.parentAlbum(ctx, r)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}

	var req cl.UpdatePhotoRequest
	if err := httputils.ReadJSON(r.Body, &req); err != nil {
		h.fail(w, r, op, badRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		h.fail(w, r, op, err)
		return
	}

	photo, err := h.PhotoStore.UpdatePhoto(ctx, album.ID, mux.Vars(r)["photoId"], req)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}

	h.writeJSON(w, r, photo, http.StatusOK)
}

// DeletePhoto removes a photo of the album in the path.
func (h *Handler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	const op = "photos/deleteById"
	ctx := r.Context()

	if _, err := privileged(ctx); err != nil {
		h.fail(w, r, op, err)
		return
	}
	album, err := h.parentAlbum(ctx, r)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}

	photo, err := h.PhotoStore.DeletePhoto(ctx, album.ID, mux.Vars(r)["photoId"])
	if err != nil {
		h.fail(w, r, op, err)
		return
	}

	res := cl.DeletePhotoRes{
		Message: fmt.Sprintf("Photo '%s' deleted.", photo.Title),
		Photo:   photo,
	}
	h.writeJSON(w, r, res, http.StatusOK)
}
