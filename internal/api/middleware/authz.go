package middleware

import (
	"net/http"

	"github.com/taskforge/taskforge/internal/api/response"
	"github.com/taskforge/taskforge/internal/authz"
)

// Authorize returns middleware that consults the authorization decision
// table for the given operation and rejects denied identities with 403.
// Ownership-sensitive decisions (the assignee status-only task update)
// cannot be expressed here and live in the task handler.
func Authorize(op authz.Operation) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := GetRequestID(r.Context())

			identity := GetIdentity(r.Context())
			if identity == nil {
				response.Err(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", requestID)
				return
			}

			if !authz.Allowed(identity.Role, op) {
				response.Err(w, http.StatusForbidden, "FORBIDDEN", "Insufficient permissions", requestID)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
