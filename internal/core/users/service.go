package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"Feedline/internal/core/apperr"
	"Feedline/internal/core/identity"
	"Feedline/internal/core/validation"
)

const bcryptCost = 12

type userService struct {
	repo     Repository
	issuer   TokenIssuer
	tokenTTL time.Duration
}

// NewUserService creates a new user service. tokenTTL bounds the lifetime
// of tokens minted at login.
func NewUserService(repo Repository, issuer TokenIssuer, tokenTTL time.Duration) Service {
	return &userService{
		repo:     repo,
		issuer:   issuer,
		tokenTTL: tokenTTL,
	}
}

// Signup creates a new account. A duplicate email yields Conflict, which is
// distinct from the ValidationFailed returned for malformed input.
func (s *userService) Signup(ctx context.Context, req SignupRequest) (*User, error) {
	if violations := validation.ValidateSignup(req.Email, req.Name, req.Password); len(violations) > 0 {
		return nil, apperr.Validation(violations...)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, apperr.Unavailable(fmt.Errorf("failed to hash password: %w", err))
	}

	user := &User{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		Name:         validation.SanitizeName(req.Name),
		Status:       "I am new!",
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, apperr.New(apperr.KindConflict, "a user with this email already exists")
		}
		return nil, apperr.Unavailable(err)
	}

	return created, nil
}

// Login verifies credentials and mints a bearer token. Unknown email and
// wrong password both surface as NotAuthenticated without telling the
// caller which one it was.
func (s *userService) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	if violations := validation.ValidateLogin(email, password); len(violations) > 0 {
		return nil, apperr.Validation(violations...)
	}

	user, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperr.New(apperr.KindNotAuthenticated, "wrong email or password")
		}
		return nil, apperr.Unavailable(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.New(apperr.KindNotAuthenticated, "wrong email or password")
	}

	token, err := s.issuer.IssueToken(user.ID, s.tokenTTL)
	if err != nil {
		return nil, apperr.Unavailable(fmt.Errorf("failed to issue token: %w", err))
	}

	return &LoginResponse{Token: token, UserID: user.ID}, nil
}

// Get returns the viewer's own account.
func (s *userService) Get(ctx context.Context, viewer identity.Identity) (*User, error) {
	if !viewer.IsAuthenticated {
		return nil, apperr.New(apperr.KindNotAuthenticated, "not authenticated")
	}

	user, err := s.repo.GetByID(ctx, viewer.SubjectID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "user not found")
		}
		return nil, apperr.Unavailable(err)
	}
	return user, nil
}

// GetStatus returns the viewer's status line.
func (s *userService) GetStatus(ctx context.Context, viewer identity.Identity) (string, error) {
	user, err := s.Get(ctx, viewer)
	if err != nil {
		return "", err
	}
	return user.Status, nil
}

// UpdateStatus overwrites the viewer's status line.
func (s *userService) UpdateStatus(ctx context.Context, viewer identity.Identity, status string) (*User, error) {
	user, err := s.Get(ctx, viewer)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, user.ID, status); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "user not found")
		}
		return nil, apperr.Unavailable(err)
	}

	user.Status = status
	return user, nil
}
