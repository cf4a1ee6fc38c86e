package middleware

import (
	"net/http"

	"therapy-booking/internal/domain/entity"
	"therapy-booking/pkg/response"
)

// RequirePermission gates a route on the role policy. The role is read from
// context, so it must run after AuthMiddleware.
func RequirePermission(op entity.Operation) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetRoleFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Role information not found")
				return
			}

			if !entity.Allowed(role, op) {
				response.Forbidden(w, "You don't have permission to access this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin is a convenience middleware for admin-only endpoints
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := GetRoleFromContext(r.Context())
		if !ok {
			response.Unauthorized(w, "Role information not found")
			return
		}
		if role != entity.RoleAdmin {
			response.Forbidden(w, "You don't have permission to access this resource")
			return
		}
		next.ServeHTTP(w, r)
	})
}
