package middleware

import (
	"net/http"

	"github.com/clevelandclean/payroll-backend-go/internal/domain/auth"
	"github.com/clevelandclean/payroll-backend-go/internal/domain/user"
	"github.com/clevelandclean/payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// RequireElevated gates payroll operations on the caller's profile role
// flags. The profile is loaded from the users collection on every request
// rather than trusted from token claims, so a revoked role takes effect
// immediately. Denied callers never reach a payroll read.
func RequireElevated(users user.Repository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrUnauthenticated)
				return
			}

			userID, ok := claims["user_id"].(string)
			if !ok || userID == "" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			profile, err := users.GetByID(r.Context(), userID)
			if err != nil {
				response.HandleError(w, err)
				return
			}

			if !profile.HasElevatedRole() {
				response.HandleError(w, user.ErrElevatedAccessRequired)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
