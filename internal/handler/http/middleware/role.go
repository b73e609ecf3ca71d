package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/trainhub/trainhub-backend-go/internal/domain/user"
	"github.com/trainhub/trainhub-backend-go/internal/handler/http/response"
)

// RequireMentor requires mentor or admin role
func RequireMentor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrMentorAccessRequired)
			return
		}

		roleStr, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, user.ErrMentorAccessRequired)
			return
		}

		role := user.Role(roleStr)
		if role != user.RoleMentor && role != user.RoleAdmin {
			response.HandleError(w, user.ErrMentorAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireAdmin requires admin role
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
