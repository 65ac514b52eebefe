package identity

import "Feedline/internal/core/apperr"

// Authorize decides whether the caller may mutate a resource owned by
// ownerID. Pure and deterministic; every mutation path across both
// transport front-ends goes through this one rule.
//
// An empty ownerID means the owner record is missing, which denies with
// NotAuthorized rather than NotFound: the resource exists, the caller
// just cannot prove ownership of it.
func Authorize(id Identity, ownerID string) error {
	if !id.IsAuthenticated {
		return apperr.New(apperr.KindNotAuthenticated, "not authenticated")
	}
	if ownerID == "" {
		return apperr.New(apperr.KindNotAuthorized, "not authorized")
	}
	if id.SubjectID != ownerID {
		return apperr.New(apperr.KindNotAuthorized, "not authorized")
	}
	return nil
}
