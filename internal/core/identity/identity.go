package identity

// Identity is the result of authenticating a request. It is produced exactly
// once per request by the TokenAuthenticator and threaded explicitly into
// every service call instead of living as per-request mutable state.
type Identity struct {
	SubjectID       string
	IsAuthenticated bool
}

// Anonymous is the identity of an unauthenticated caller.
var Anonymous = Identity{}

// Authenticated builds an identity for a verified subject.
func Authenticated(subjectID string) Identity {
	return Identity{SubjectID: subjectID, IsAuthenticated: true}
}
