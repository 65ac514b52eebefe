package identity

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenAuthenticator verifies bearer credentials and mints new ones.
// Authentication fails open into Anonymous: a missing, malformed, badly
// signed or expired token never aborts request processing. Mutation paths
// fail closed by re-checking Identity.IsAuthenticated at the authorization
// step.
type TokenAuthenticator struct {
	secret []byte
	now    func() time.Time
}

// NewTokenAuthenticator creates an authenticator for HS256 tokens signed
// with the given shared secret.
func NewTokenAuthenticator(secret []byte) *TokenAuthenticator {
	return &TokenAuthenticator{secret: secret, now: time.Now}
}

// Authenticate verifies the raw value of an Authorization header.
// Every failure mode yields Anonymous; it never returns an error.
func (a *TokenAuthenticator) Authenticate(rawHeaderValue string) Identity {
	if rawHeaderValue == "" {
		return Anonymous
	}
	if !strings.HasPrefix(rawHeaderValue, "Bearer ") {
		return Anonymous
	}
	tokenString := strings.TrimSpace(strings.TrimPrefix(rawHeaderValue, "Bearer "))
	if tokenString == "" {
		return Anonymous
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return a.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil || !token.Valid {
		return Anonymous
	}
	if claims.Subject == "" {
		return Anonymous
	}

	return Authenticated(claims.Subject)
}

// IssueToken mints a signed bearer token for the given subject.
func (a *TokenAuthenticator) IssueToken(subjectID string, ttl time.Duration) (string, error) {
	if subjectID == "" {
		return "", fmt.Errorf("subject ID is required")
	}

	now := a.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subjectID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})

	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
