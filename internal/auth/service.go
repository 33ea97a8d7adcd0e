package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/taskforge/taskforge/internal/user"
)

// ErrInvalidCredentials is returned for both unknown emails and wrong
// passwords, so a caller cannot probe which accounts exist.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Service provides authentication operations.
type Service struct {
	userRepo user.Repository
	tokens   *TokenService
}

// NewService creates a new auth Service.
func NewService(userRepo user.Repository, tokens *TokenService) *Service {
	return &Service{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Login verifies the email/password pair against the stored credentials
// and returns a signed bearer token on success. The email is trimmed and
// lowercased before lookup. Nothing is persisted; there is no session
// state beyond the token itself.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("looking up user: %w", err)
	}

	if !VerifyPassword(u.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u)
	if err != nil {
		return "", fmt.Errorf("issuing token: %w", err)
	}

	return token, nil
}

// ResolveUser loads the user with the given ID and returns its Identity.
// Used by the HTTP layer to turn a token subject or fallback header into
// the current user.
func (s *Service) ResolveUser(ctx context.Context, id uuid.UUID) (*Identity, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &Identity{
		UserID: u.ID,
		Email:  u.Email,
		Role:   u.Role,
	}, nil
}
