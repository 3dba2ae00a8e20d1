package http

import (
	"net/http"
	"strconv"

	"album-service/internal/metrics"
	cl "album-service/pkg/catelog"

	"github.com/pkg/errors"
	httputils "github.com/twitsprout/tools/http"
	"github.com/twitsprout/tools/requestid"
)

const (
	msgUnauthorized    = "Unauthorized"
	msgNotPrivileged   = "Unauthorized - you are not a coach"
	msgAlbumNotFound   = "Album not found"
	msgPhotoNotFound   = "Photo not found in this album"
	msgNotFound        = "Not found"
	msgBadRequest      = "Bad request"
	msgTooManyRequests = "Too many requests"
	msgInternal        = "Internal Server Error"
)

// badRequestError marks a body that could not be decoded.
type badRequestError struct {
	err error
}

func (e *badRequestError) Error() string { return e.err.Error() }
func (e *badRequestError) Unwrap() error { return e.err }

func badRequest(err error) error {
	return &badRequestError{err: err}
}

// classify maps any error raised while serving an album or photo request to
// the status code and the message the client sees. Unknown errors are 500s
// and never leak their detail.
func classify(err error) (int, string) {
	var verr *cl.ValidationError
	var berr *badRequestError
	switch {
	case errors.Is(err, cl.ErrNotPrivileged):
		return http.StatusUnauthorized, msgNotPrivileged
	case errors.Is(err, cl.ErrUnauthorized):
		return http.StatusUnauthorized, msgUnauthorized
	case errors.Is(err, cl.ErrAlbumNotFound):
		return http.StatusNotFound, msgAlbumNotFound
	case errors.Is(err, cl.ErrPhotoNotFound):
		return http.StatusNotFound, msgPhotoNotFound
	case errors.Is(err, cl.ErrNotFound):
		return http.StatusNotFound, msgNotFound
	case errors.As(err, &verr):
		return http.StatusBadRequest, msgBadRequest + " - " + verr.Error()
	case errors.As(err, &berr):
		return http.StatusBadRequest, msgBadRequest
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

// fail classifies err, logs it under the operation tag, and writes the error
// body.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	code, msg := classify(err)
	reqID := requestid.Get(r.Context())
	if code >= http.StatusInternalServerError {
		h.Logger.Error("["+op+"] "+msg,
			"request_id", reqID,
			"details", err.Error(),
		)
	} else {
		h.Logger.Debug("["+op+"] "+msg,
			"request_id", reqID,
			"details", err.Error(),
		)
	}
	h.stats().Count(metrics.HTTPFaults, 1, []string{op, strconv.Itoa(code)})
	h.writeJSON(w, r, cl.ErrorRes{Code: code, Message: msg}, code)
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, res interface{}, code int) {
	err := httputils.WriteJSON(w, r.URL.Query(), res, code)
	if err != nil {
		h.Logger.Warn("unable to write JSON response",
			"request_id", requestid.Get(r.Context()),
			"details", err.Error(),
		)
	}
}
