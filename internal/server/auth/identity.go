package auth

import "context"

// Identity is the request-scoped result of token verification. The zero value
// means "unauthenticated". It is created once per request by the gate
// middleware and read-only afterwards.
type Identity struct {
	Verified bool
	UserID   string
}

type ctxKey string

const identityKey ctxKey = "identity"

// WithIdentity returns a context carrying the given identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext returns the identity attached to ctx, or the
// unauthenticated zero value when none was attached.
func IdentityFromContext(ctx context.Context) Identity {
	if id, ok := ctx.Value(identityKey).(Identity); ok {
		return id
	}
	return Identity{}
}
