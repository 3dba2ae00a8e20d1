package auth

import (
	"strings"
	"time"

	cl "album-service/pkg/catelog"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/twitsprout/tools/clock"
)

// ErrMissingToken is returned when a request carries no bearer token.
var ErrMissingToken = errors.New("missing bearer token")

// ErrInvalidToken is returned for tokens that fail verification.
var ErrInvalidToken = errors.New("invalid bearer token")

// Claims are the JWT claims understood by the service.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWT signs and verifies HS256 bearer tokens.
type JWT struct {
	secret []byte
	clock  clock.Clock
}

// NewJWT returns a JWT using the shared secret. A nil clock uses real time.
func NewJWT(secret string, c clock.Clock) *JWT {
	if c == nil {
		c = &clock.Default{}
	}
	return &JWT{secret: []byte(secret), clock: c}
}

// Authenticate verifies the token and returns the identity it names.
func (j *JWT) Authenticate(token string) (Identity, error) {
	var claims Claims
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(j.clock.Now),
	)
	tok, err := parser.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return j.secret, nil
	})
	if err != nil {
		return Identity{}, errors.Wrap(ErrInvalidToken, err.Error())
	}
	if !tok.Valid || claims.Subject == "" {
		return Identity{}, ErrInvalidToken
	}
	return Identity{
		Subject: claims.Subject,
		Role:    cl.ParseRole(claims.Role),
	}, nil
}

// Issue signs a token for the subject and role, valid for ttl.
func (j *JWT) Issue(subject string, role cl.Role, ttl time.Duration) (string, error) {
	now := j.clock.Now()
	claims := Claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	return s, errors.Wrap(err, "sign token")
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrMissingToken
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", ErrInvalidToken
	}
	return strings.TrimSpace(parts[1]), nil
}
