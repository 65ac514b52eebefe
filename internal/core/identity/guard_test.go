package identity

import (
	"testing"

	"Feedline/internal/core/apperr"
)

func TestAuthorize(t *testing.T) {
	cases := []struct {
		name    string
		viewer  Identity
		ownerID string
		want    apperr.Kind
	}{
		{"owner mutates own resource", Authenticated("u1"), "u1", apperr.KindUnknown},
		{"anonymous caller", Anonymous, "u1", apperr.KindNotAuthenticated},
		{"anonymous caller, missing owner", Anonymous, "", apperr.KindNotAuthenticated},
		{"different user", Authenticated("v1"), "u1", apperr.KindNotAuthorized},
		{"owner record missing", Authenticated("u1"), "", apperr.KindNotAuthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Authorize(tc.viewer, tc.ownerID)
			if tc.want == apperr.KindUnknown {
				if err != nil {
					t.Fatalf("expected allow, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected deny")
			}
			if got := apperr.KindOf(err); got != tc.want {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
