package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/keyfold/keyfold/pkg/slogx"
)

// IdentityResolver turns a raw bearer token into an authenticated identity.
// Implementations verify the token's signature, expiry and that the subject
// still maps to a live user record.
type IdentityResolver interface {
	ResolveToken(ctx context.Context, token string) (Identity, error)
}

// AuthnMiddleware is the access gate. It inspects the Authorization header
// of every request and, when it carries a valid bearer token, attaches the
// resolved Identity to the request context. Requests without a usable token
// pass through unauthenticated; routes that need an identity reject them
// later via RequireIdentity. This keeps public routes and protected routes
// behind one single-pass, stateless check.
func AuthnMiddleware(resolver IdentityResolver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				next.ServeHTTP(w, r)
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			// Skip if something upstream already authenticated the request.
			if _, ok := IdentityFromContext(ctx); ok {
				next.ServeHTTP(w, r)
				return
			}

			id, err := resolver.ResolveToken(ctx, raw)
			if err != nil {
				// Not a hard failure at this layer; downstream
				// authorization rejects if identity is required.
				slogx.FromContext(ctx).Debug("token rejected", "err", err)
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithIdentity(ctx, id)))
		})
	}
}

// RequireIdentity rejects any request that reached this point without an
// authenticated identity attached by the gate.
func RequireIdentity() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := IdentityFromContext(r.Context()); !ok {
				WriteBearerError(w, "authentication required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WriteBearerError writes an RFC 6750-compliant error response for bearer auth.
func WriteBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	w.WriteHeader(http.StatusUnauthorized)
}
