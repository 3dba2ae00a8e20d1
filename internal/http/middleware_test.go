package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"album-service/internal/auth"
	"album-service/internal/memory"
	cl "album-service/pkg/catelog"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

func TestClassify(t *testing.T) {
	table := []struct {
		label   string
		err     error
		expCode int
		expMsg  string
	}{
		{"not privileged", cl.ErrNotPrivileged, 401, "Unauthorized - you are not a coach"},
		{"wrapped unauthorized", errors.Wrap(cl.ErrUnauthorized, "bad token"), 401, "Unauthorized"},
		{"album not found", errors.Wrap(cl.ErrAlbumNotFound, "a1"), 404, "Album not found"},
		{"photo not found", cl.ErrPhotoNotFound, 404, "Photo not found in this album"},
		{"generic not found", cl.ErrNotFound, 404, "Not found"},
		{"validation", &cl.ValidationError{Field: "title", Reason: "is required"}, 400, "Bad request - title is required"},
		{"malformed body", badRequest(errors.New("unexpected EOF")), 400, "Bad request"},
		{"store failure", errors.New("connection refused"), 500, "Internal Server Error"},
	}
	for _, ts := range table {
		t.Run(ts.label, func(t *testing.T) {
			code, msg := classify(ts.err)
			if code != ts.expCode || msg != ts.expMsg {
				t.Fatalf("unexpected classification: %s %s", cmp.Diff(ts.expCode, code), cmp.Diff(ts.expMsg, msg))
			}
		})
	}
}

func TestAuthenticate(t *testing.T) {
	expired, err := auth.NewJWT(testSecret, testClock).Issue("user-1", cl.RoleCoach, -time.Minute)
	if err != nil {
		t.Fatalf("unexpected error issuing token: %s", err.Error())
	}
	forged, err := auth.NewJWT("other-secret", testClock).Issue("user-1", cl.RoleCoach, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error issuing token: %s", err.Error())
	}

	table := []struct {
		label   string
		header  string
		expCode int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic dXNlcjpwYXNz", http.StatusUnauthorized},
		{"expired token", "Bearer " + expired, http.StatusUnauthorized},
		{"forged token", "Bearer " + forged, http.StatusUnauthorized},
		{"valid token", "Bearer " + token(t, cl.RoleMember), http.StatusOK},
	}
	for _, ts := range table {
		t.Run(ts.label, func(t *testing.T) {
			h := newMemoryHandler()
			h.Handler()
			req := httptest.NewRequest("GET", "/album", nil)
			if ts.header != "" {
				req.Header.Set("Authorization", ts.header)
			}
			wr := httptest.NewRecorder()
			h.router.ServeHTTP(wr, req)
			if ts.expCode == http.StatusUnauthorized {
				checkErrorRes(t, wr, ts.expCode, "Unauthorized")
				return
			}
			if wr.Code != ts.expCode {
				t.Fatalf("unexpected response code returned: %s", cmp.Diff(ts.expCode, wr.Code))
			}
		})
	}
}

func TestAuthenticateWithoutAuthenticator(t *testing.T) {
	h := newMemoryHandler()
	h.Auth = nil
	wr := serve(t, h, "GET", "/album", "", token(t, cl.RoleCoach))
	checkErrorRes(t, wr, http.StatusUnauthorized, "Unauthorized")
}

func TestRateLimit(t *testing.T) {
	store := memory.New()
	h := newTestHandler()
	h.AlbumStore = store
	h.PhotoStore = store
	h.RateLimit = rate.Every(time.Hour)
	h.RateBurst = 2

	coach := token(t, cl.RoleCoach)
	for i := 0; i < 2; i++ {
		wr := serve(t, h, "GET", "/album", "", coach)
		if wr.Code != http.StatusOK {
			t.Fatalf("unexpected response code returned for request %d: %s", i, cmp.Diff(http.StatusOK, wr.Code))
		}
	}
	wr := serve(t, h, "GET", "/album", "", coach)
	if wr.Header().Get("Retry-After") == "" {
		t.Fatal("expected a Retry-After header")
	}
	checkErrorRes(t, wr, http.StatusTooManyRequests, "Too many requests")
}

func TestRateLimiterPrunesIdleVisitors(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := newRateLimiter(rate.Every(time.Second), 1)
	rl.now = func() time.Time { return now }

	if !rl.allow("a") {
		t.Fatal("expected first request to be allowed")
	}
	if rl.allow("a") {
		t.Fatal("expected burst to be exhausted")
	}
	if !rl.allow("b") {
		t.Fatal("expected a separate bucket per key")
	}

	now = now.Add(limiterIdle + 2*time.Minute)
	if !rl.allow("c") {
		t.Fatal("expected request to be allowed")
	}
	if _, ok := rl.visitors["a"]; ok {
		t.Fatal("expected idle visitor to be pruned")
	}
	if len(rl.visitors) != 1 {
		t.Fatalf("unexpected visitor count: %d", len(rl.visitors))
	}
}
