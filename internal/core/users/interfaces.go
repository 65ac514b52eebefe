package users

import (
	"context"
	"time"

	"Feedline/internal/core/identity"
)

// Repository defines the data access interface for users.
// The post-set methods maintain the ordered set of post IDs owned by a
// user; only the post lifecycle service calls them.
type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateStatus(ctx context.Context, id, status string) error

	AddPost(ctx context.Context, userID, postID string) error
	RemovePost(ctx context.Context, userID, postID string) error
	PostIDs(ctx context.Context, userID string) ([]string, error)
}

// TokenIssuer mints signed bearer tokens. Implemented by
// identity.TokenAuthenticator.
type TokenIssuer interface {
	IssueToken(subjectID string, ttl time.Duration) (string, error)
}

// Service defines the business logic interface for accounts.
type Service interface {
	Signup(ctx context.Context, req SignupRequest) (*User, error)
	Login(ctx context.Context, email, password string) (*LoginResponse, error)
	Get(ctx context.Context, viewer identity.Identity) (*User, error)
	GetStatus(ctx context.Context, viewer identity.Identity) (string, error)
	UpdateStatus(ctx context.Context, viewer identity.Identity, status string) (*User, error)
}
