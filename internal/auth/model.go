package auth

import (
	"github.com/google/uuid"

	"github.com/taskforge/taskforge/internal/user"
)

// Identity is the resolved current user, stored in the request context
// after authentication.
type Identity struct {
	UserID uuid.UUID
	Email  string
	Role   user.Role
}
