package middleware

import (
	"context"
	"net/http"

	"Feedline/internal/core/identity"
)

// Context keys for storing request identity
type contextKey string

const identityKey contextKey = "identity"

// Authenticator verifies a raw Authorization header value. Implemented by
// identity.TokenAuthenticator.
type Authenticator interface {
	Authenticate(rawHeaderValue string) identity.Identity
}

// IdentityMiddleware resolves the caller's identity once per request.
// It never rejects: a missing or invalid token yields the anonymous
// identity and the request continues. Mutation paths fail closed by
// re-checking the identity at the authorization step.
type IdentityMiddleware struct {
	authenticator Authenticator
}

// NewIdentityMiddleware creates a new identity middleware
func NewIdentityMiddleware(authenticator Authenticator) *IdentityMiddleware {
	return &IdentityMiddleware{authenticator: authenticator}
}

// Resolve authenticates the request and injects the resulting identity
// into the context.
func (m *IdentityMiddleware) Resolve(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := m.authenticator.Authenticate(r.Header.Get("Authorization"))
		ctx := context.WithValue(r.Context(), identityKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IdentityFrom extracts the caller's identity from the context.
// Returns the anonymous identity if none was resolved.
func IdentityFrom(ctx context.Context) identity.Identity {
	id, _ := ctx.Value(identityKey).(identity.Identity)
	return id
}

// WithIdentity injects an identity into the context. Used by tests and by
// the websocket handler, which authenticates outside the HTTP middleware
// chain.
func WithIdentity(ctx context.Context, id identity.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}
