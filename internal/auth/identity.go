package auth

import (
	"context"

	cl "album-service/pkg/catelog"
)

// Identity is the authenticated caller of a request.
type Identity struct {
	Subject string
	Role    cl.Role
}

// IsPrivileged reports whether the identity may mutate albums and photos.
func (i Identity) IsPrivileged() bool {
	return i.Role.IsPrivileged()
}

type contextKeyType int

const identityKey contextKeyType = 0

// WithIdentity returns a child context carrying the identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// FromContext returns the identity stored in ctx, if any.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}
