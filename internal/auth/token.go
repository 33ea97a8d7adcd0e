package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskforge/taskforge/internal/user"
)

// ErrInvalidToken is returned when a token fails signature, issuer,
// audience, or lifetime validation.
var ErrInvalidToken = errors.New("invalid token")

// Claims are the JWT claims carried by issued tokens: the registered
// set plus the user's email and role.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"`
}

// TokenConfig holds the parameters for issuing and verifying tokens.
type TokenConfig struct {
	SigningKey     string
	Issuer         string
	Audience       string
	ExpiresMinutes int
}

// TokenService issues and verifies HS256-signed bearer tokens. Tokens
// are stateless: validity is purely a function of signature and expiry,
// with no server-side revocation.
type TokenService struct {
	cfg TokenConfig
	now func() time.Time
}

// NewTokenService creates a TokenService from the given config.
func NewTokenService(cfg TokenConfig) *TokenService {
	return &TokenService{cfg: cfg, now: time.Now}
}

// Issue signs a token for the given user. The token carries the user's
// ID as subject plus email and role claims, and expires after the
// configured number of minutes. Tokens are not renewable; a new login
// is required after expiry.
func (s *TokenService) Issue(u *user.User) (string, error) {
	issuedAt := s.now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			Subject:   u.ID.String(),
			Audience:  jwt.ClaimStrings{s.cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Duration(s.cfg.ExpiresMinutes) * time.Minute)),
		},
		Email: u.Email,
		Role:  u.Role.String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.SigningKey))
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return signed, nil
}

// Verify parses and validates a raw token string, enforcing the HS256
// signing method, issuer, audience, and lifetime.
func (s *TokenService) Verify(raw string) (*Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims,
		func(t *jwt.Token) (any, error) {
			return []byte(s.cfg.SigningKey), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithAudience(s.cfg.Audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &claims, nil
}
