package auth

import (
	"context"
	"testing"
	"time"

	cl "album-service/pkg/catelog"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	tm "github.com/twitsprout/tools/mock"
)

func fixedClock(t time.Time) *tm.Clock {
	return &tm.Clock{NowFn: func() time.Time { return t }}
}

func TestJWTRoundTrip(t *testing.T) {
	now := time.Date(2024, 5, 6, 20, 0, 0, 0, time.UTC)
	j := NewJWT("secret", fixedClock(now))

	tok, err := j.Issue("user-1", cl.RoleCoach, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error issuing token: %s", err.Error())
	}
	id, err := j.Authenticate(tok)
	if err != nil {
		t.Fatalf("unexpected error authenticating: %s", err.Error())
	}
	exp := Identity{Subject: "user-1", Role: cl.RoleCoach}
	if !cmp.Equal(id, exp) {
		t.Fatalf("unexpected identity: %s", cmp.Diff(exp, id))
	}
	if !id.IsPrivileged() {
		t.Fatalf("expected coach to be privileged")
	}
}

func TestJWTAuthenticateFailures(t *testing.T) {
	now := time.Date(2024, 5, 6, 20, 0, 0, 0, time.UTC)
	issuer := NewJWT("secret", fixedClock(now))

	expired, _ := issuer.Issue("user-1", cl.RoleCoach, time.Minute)
	otherSecret, _ := NewJWT("other", fixedClock(now)).Issue("user-1", cl.RoleCoach, time.Hour)
	noSubject, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{Role: "coach"}).SignedString([]byte("secret"))
	unsigned, _ := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		Role:             "coach",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)

	table := []struct {
		label string
		token string
		now   time.Time
	}{
		{label: "should fail with garbage", token: "not-a-token", now: now},
		{label: "should fail when expired", token: expired, now: now.Add(time.Hour)},
		{label: "should fail with another secret", token: otherSecret, now: now},
		{label: "should fail without subject", token: noSubject, now: now},
		{label: "should fail with the none algorithm", token: unsigned, now: now},
	}
	for _, ts := range table {
		t.Run(ts.label, func(t *testing.T) {
			_, err := NewJWT("secret", fixedClock(ts.now)).Authenticate(ts.token)
			if errors.Cause(err) != ErrInvalidToken {
				t.Fatalf("expected invalid token error, got %v", err)
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	table := []struct {
		header string
		expTok string
		expErr error
	}{
		{header: "", expErr: ErrMissingToken},
		{header: "Bearer", expErr: ErrInvalidToken},
		{header: "Basic abc", expErr: ErrInvalidToken},
		{header: "Bearer   ", expErr: ErrInvalidToken},
		{header: "Bearer abc.def", expTok: "abc.def"},
		{header: "bearer abc.def", expTok: "abc.def"},
	}
	for _, ts := range table {
		t.Run(ts.header, func(t *testing.T) {
			tok, err := BearerToken(ts.header)
			if err != ts.expErr {
				t.Fatalf("unexpected error: %v", err)
			}
			if tok != ts.expTok {
				t.Fatalf("unexpected token: %s", cmp.Diff(ts.expTok, tok))
			}
		})
	}
}

func TestIdentityContext(t *testing.T) {
	ctx := context.Background()
	if _, ok := FromContext(ctx); ok {
		t.Fatalf("expected no identity in a bare context")
	}
	ctx = WithIdentity(ctx, Identity{Subject: "s", Role: cl.RoleMember})
	id, ok := FromContext(ctx)
	if !ok || id.Subject != "s" || id.IsPrivileged() {
		t.Fatalf("unexpected identity: %+v", id)
	}
}
