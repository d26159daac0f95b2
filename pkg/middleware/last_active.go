package middleware

import (
	"net/http"

	"onegoal/internal/services"
)

// UpdateLastActiveMiddleware stamps the user's last-active time on every
// authenticated request. The inactivity reminder scan reads this stamp.
func UpdateLastActiveMiddleware(userService *services.UserService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetUserFromContext(r.Context())
			if claims != nil {
				userService.UpdateLastActive(r.Context(), claims.UserID)
			}
			next.ServeHTTP(w, r)
		})
	}
}
