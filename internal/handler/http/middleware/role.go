package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/staffport/attendance-backend-go/internal/domain/user"
	"github.com/staffport/attendance-backend-go/internal/handler/http/response"
)

// RequireAdmin requires the admin role
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrAdminAccessRequired)
			return
		}

		role, ok := claims["role"].(string)
		if !ok || role != string(user.RoleAdmin) {
			response.HandleError(w, user.ErrAdminAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// StaffOnly rejects admin accounts. Admins manage the ledger but never hold
// records in it, so the self-marking endpoints are closed to them.
func StaffOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrStaffOnly)
			return
		}

		if role, ok := claims["role"].(string); ok && role == string(user.RoleAdmin) {
			response.HandleError(w, user.ErrStaffOnly)
			return
		}

		next.ServeHTTP(w, r)
	})
}
