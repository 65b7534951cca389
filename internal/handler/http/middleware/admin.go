package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/kayaops/backoffice-backend-go/internal/domain/user"
	"github.com/kayaops/backoffice-backend-go/internal/handler/http/response"
)

// AdminOnly guards destructive operations; operators can read and write
// day-to-day records but only admins may delete them or run bulk payroll.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrInvalidToken)
			return
		}

		role, ok := claims["role"].(string)
		if !ok || role != string(user.RoleAdmin) {
			response.HandleError(w, user.ErrAdminRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
