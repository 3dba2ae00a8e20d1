package http

import (
	"time"

	"album-service/internal"
	"album-service/internal/auth"
	"album-service/internal/metrics"

	"github.com/gorilla/mux"
	"github.com/twitsprout/tools"
	"github.com/twitsprout/tools/clock"
	"golang.org/x/time/rate"
)

// Authenticator turns a bearer token into an identity.
type Authenticator interface {
	Authenticate(token string) (auth.Identity, error)
}

type Handler struct {
	Version    string
	AppName    string
	router     *mux.Router
	Logger     tools.Logger
	Stats      tools.StatsClient
	Clock      clock.Clock
	Auth       Authenticator
	AlbumStore internal.AlbumStore
	PhotoStore internal.PhotoStore

	// RateLimit is the per-identity request rate. Zero disables limiting.
	RateLimit rate.Limit
	RateBurst int
}

func (h *Handler) stats() tools.StatsClient {
	if h.Stats == nil {
		return metrics.Nop
	}
	return h.Stats
}

// now returns the handler clock's time at the precision the stores keep.
func (h *Handler) now() time.Time {
	var c clock.Clock = &clock.Default{}
	if h.Clock != nil {
		c = h.Clock
	}
	return c.Now().UTC().Truncate(time.Millisecond)
}
