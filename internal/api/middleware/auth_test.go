package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"Feedline/internal/core/identity"
)

type stubAuthenticator struct {
	lastHeader string
	result     identity.Identity
}

func (s *stubAuthenticator) Authenticate(rawHeaderValue string) identity.Identity {
	s.lastHeader = rawHeaderValue
	return s.result
}

func TestResolve_InjectsAuthenticatedIdentity(t *testing.T) {
	auth := &stubAuthenticator{result: identity.Authenticated("user-1")}
	mw := NewIdentityMiddleware(auth)

	var seen identity.Identity
	handler := mw.Resolve(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = IdentityFrom(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/feed/posts", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if auth.lastHeader != "Bearer some-token" {
		t.Errorf("authenticator saw header %q", auth.lastHeader)
	}
	if !seen.IsAuthenticated || seen.SubjectID != "user-1" {
		t.Errorf("unexpected identity in context: %+v", seen)
	}
}

func TestResolve_AnonymousStillContinues(t *testing.T) {
	mw := NewIdentityMiddleware(&stubAuthenticator{result: identity.Anonymous})

	called := false
	var seen identity.Identity
	handler := mw.Resolve(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		seen = IdentityFrom(r.Context())
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/feed/posts", nil))

	if !called {
		t.Fatal("request should continue without a token")
	}
	if seen.IsAuthenticated {
		t.Errorf("expected anonymous identity, got %+v", seen)
	}
}

func TestIdentityFrom_MissingDefaultsToAnonymous(t *testing.T) {
	id := IdentityFrom(context.Background())
	if id.IsAuthenticated || id.SubjectID != "" {
		t.Errorf("expected anonymous default, got %+v", id)
	}
}

func TestWithIdentity_RoundTrip(t *testing.T) {
	ctx := WithIdentity(context.Background(), identity.Authenticated("user-2"))
	id := IdentityFrom(ctx)
	if !id.IsAuthenticated || id.SubjectID != "user-2" {
		t.Errorf("unexpected identity: %+v", id)
	}
}
