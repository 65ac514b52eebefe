package identity

import (
	"testing"
	"time"
)

func TestAuthenticate_ValidToken(t *testing.T) {
	auth := NewTokenAuthenticator([]byte("test-secret"))

	token, err := auth.IssueToken("user-1", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	id := auth.Authenticate("Bearer " + token)
	if !id.IsAuthenticated {
		t.Fatal("expected authenticated identity")
	}
	if id.SubjectID != "user-1" {
		t.Errorf("expected subject user-1, got %q", id.SubjectID)
	}
}

func TestAuthenticate_FailsOpenIntoAnonymous(t *testing.T) {
	auth := NewTokenAuthenticator([]byte("test-secret"))

	valid, err := auth.IssueToken("user-1", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	other := NewTokenAuthenticator([]byte("another-secret"))
	wrongSecret, err := other.IssueToken("user-1", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	cases := []struct {
		name   string
		header string
	}{
		{"absent header", ""},
		{"not a bearer scheme", "Basic dXNlcjpwYXNz"},
		{"bearer with no token", "Bearer "},
		{"garbage token", "Bearer not.a.jwt"},
		{"token without prefix", valid},
		{"wrong signing secret", "Bearer " + wrongSecret},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id := auth.Authenticate(tc.header)
			if id.IsAuthenticated {
				t.Errorf("expected anonymous identity for %q", tc.header)
			}
			if id.SubjectID != "" {
				t.Errorf("anonymous identity must carry no subject, got %q", id.SubjectID)
			}
		})
	}
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	auth := NewTokenAuthenticator([]byte("test-secret"))

	past := time.Now().Add(-2 * time.Hour)
	auth.now = func() time.Time { return past }
	token, err := auth.IssueToken("user-1", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	auth.now = time.Now
	if id := auth.Authenticate("Bearer " + token); id.IsAuthenticated {
		t.Error("expired token must authenticate as anonymous")
	}
}

func TestIssueToken_RequiresSubject(t *testing.T) {
	auth := NewTokenAuthenticator([]byte("test-secret"))

	if _, err := auth.IssueToken("", time.Hour); err == nil {
		t.Error("expected error for empty subject")
	}
}
