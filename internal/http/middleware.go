package http

import (
	"net/http"
	"sync"
	"time"

	"album-service/internal/auth"
	cl "album-service/pkg/catelog"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

// authenticate resolves the bearer token into an identity stored in the
// request context. Requests without a valid token never reach a handler.
func (h *Handler) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Auth == nil {
			h.fail(w, r, "auth", errors.Wrap(cl.ErrUnauthorized, "no authenticator configured"))
			return
		}
		tok, err := auth.BearerToken(r.Header.Get("Authorization"))
		if err != nil {
			h.fail(w, r, "auth", errors.Wrap(cl.ErrUnauthorized, err.Error()))
			return
		}
		id, err := h.Auth.Authenticate(tok)
		if err != nil {
			h.fail(w, r, "auth", errors.Wrap(cl.ErrUnauthorized, err.Error()))
			return
		}
		next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
	})
}

const limiterIdle = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiter keeps one token bucket per identity subject, falling back to
// the remote address. Idle buckets are pruned at most once a minute.
type rateLimiter struct {
	limit rate.Limit
	burst int

	mu        sync.Mutex
	visitors  map[string]*visitor
	lastPrune time.Time
	now       func() time.Time
}

func newRateLimiter(limit rate.Limit, burst int) *rateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &rateLimiter{
		limit:    limit,
		burst:    burst,
		visitors: make(map[string]*visitor),
		now:      time.Now,
	}
}

func (rl *rateLimiter) allow(key string) bool {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if now.Sub(rl.lastPrune) > time.Minute {
		for k, v := range rl.visitors {
			if now.Sub(v.lastSeen) > limiterIdle {
				delete(rl.visitors, k)
			}
		}
		rl.lastPrune = now
	}

	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

func (rl *rateLimiter) middleware(h *Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.RemoteAddr
			if id, ok := auth.FromContext(r.Context()); ok {
				key = "sub:" + id.Subject
			}
			if !rl.allow(key) {
				w.Header().Set("Retry-After", "1")
				h.writeJSON(w, r, cl.ErrorRes{Code: http.StatusTooManyRequests, Message: msgTooManyRequests}, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
