package validation

import (
	"strings"

	"github.com/taskforge/taskforge/internal/user"
)

// UserRequest mirrors the fields needed for create/update user validation.
type UserRequest struct {
	FullName string
	Email    string
	Role     string
	Password string
}

// ValidateCreateUserRequest validates the fields of a create user request.
// Password is required on create.
func ValidateCreateUserRequest(req UserRequest) []FieldError {
	errs := validateUserFields(req)

	if req.Password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "password is required"})
	} else if len(req.Password) < 8 {
		errs = append(errs, FieldError{Field: "password", Message: "password must be at least 8 characters"})
	}

	return errs
}

// ValidateUpdateUserRequest validates the fields of an update user request.
// Password is optional on update; when present it replaces the stored hash.
func ValidateUpdateUserRequest(req UserRequest) []FieldError {
	errs := validateUserFields(req)

	if req.Password != "" && len(req.Password) < 8 {
		errs = append(errs, FieldError{Field: "password", Message: "password must be at least 8 characters"})
	}

	return errs
}

func validateUserFields(req UserRequest) []FieldError {
	var errs []FieldError

	errs = requireName("fullName", req.FullName, errs)

	email := strings.TrimSpace(req.Email)
	if email == "" {
		errs = append(errs, FieldError{Field: "email", Message: "email is required"})
	} else if !validEmail(email) {
		errs = append(errs, FieldError{Field: "email", Message: "email must be a valid address"})
	}

	if req.Role == "" {
		errs = append(errs, FieldError{Field: "role", Message: "role is required"})
	} else if _, ok := user.ParseRole(req.Role); !ok {
		errs = append(errs, FieldError{Field: "role", Message: `role must be "admin", "manage" or "employee"`})
	}

	return errs
}
