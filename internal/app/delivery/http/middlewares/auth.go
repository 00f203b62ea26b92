package middlewares

import (
	"context"
	"net/http"
	"strings"

	"medika-service/internal/pkg/constvars"
	"medika-service/internal/pkg/exceptions"
	"medika-service/internal/pkg/utils"
)

// Authenticate verifies the bearer token and places the user id and role on
// the request context.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		if authHeader == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		userID, role, err := utils.ParseJWT(token, m.InternalConfig.JWT.Secret)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_USER_ID_KEY, userID)
		ctx = context.WithValue(ctx, constvars.CONTEXT_USER_ROLE_KEY, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles guards a route for the given roles. It must sit below
// Authenticate in the chain.
func (m *Middlewares) RequireRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := utils.GetUserRole(r.Context())
			for _, allowed := range roles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrForbidden(nil))
		})
	}
}
