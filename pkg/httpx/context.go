package httpx

import "context"

// Identity is the authenticated caller attached to a request's context by
// the authn gate. It lives for the duration of the request only.
type Identity struct {
	UserID string
	Email  string
	Role   string
}

type ctxKey string

const ctxKeyIdentity ctxKey = "identity"

// ContextWithIdentity returns a child context carrying the identity.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKeyIdentity, id)
}

// IdentityFromContext extracts the authenticated identity from the request
// context. ok is false when the request was not authenticated.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKeyIdentity).(Identity)
	return id, ok
}
