package validation

import (
	"net/mail"
	"strings"
)

// FieldError describes a single invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// validEmail reports whether the string parses as an address.
func validEmail(s string) bool {
	_, err := mail.ParseAddress(s)
	return err == nil
}

// requireName validates a required, bounded name-like field.
func requireName(field, value string, errs []FieldError) []FieldError {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		errs = append(errs, FieldError{Field: field, Message: field + " is required"})
	} else if len(trimmed) > 255 {
		errs = append(errs, FieldError{Field: field, Message: field + " must be at most 255 characters"})
	}
	return errs
}
