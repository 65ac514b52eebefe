package graphql

import (
	"log/slog"
	"net/http"

	"Feedline/internal/api/handlers/common"
	"Feedline/internal/core/apperr"
)

// resolverError carries a domain error through graphql-go so the response
// exposes the same status code and violation list as the REST surface.
// Implements gqlerrors.ExtendedError via Extensions.
type resolverError struct {
	err error
}

// wrapError tags a service error for the GraphQL response. Untagged errors
// are logged here and surfaced without internal detail.
func wrapError(err error) error {
	if apperr.KindOf(err) == apperr.KindUnknown || apperr.KindOf(err) == apperr.KindUnavailable {
		slog.Error("unexpected error in resolver", "error", err)
	}
	return resolverError{err: err}
}

func (e resolverError) Error() string {
	if common.StatusForKind(apperr.KindOf(e.err)) == http.StatusInternalServerError {
		return "an internal error occurred"
	}
	return e.err.Error()
}

// Extensions exposes the status code and violations in the error entry,
// using the same mapping table as the REST handlers.
func (e resolverError) Extensions() map[string]interface{} {
	kind := apperr.KindOf(e.err)
	ext := map[string]interface{}{
		"code":   kind.String(),
		"status": common.StatusForKind(kind),
	}
	if violations := apperr.ViolationsOf(e.err); len(violations) > 0 {
		ext["data"] = violations
	}
	return ext
}
