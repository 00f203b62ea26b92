package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"medika-service/internal/app/config"
	"medika-service/internal/pkg/constvars"
	"medika-service/internal/pkg/utils"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestAuthenticate(t *testing.T) {
	secret := "test-signing-secret"
	middlewares := &Middlewares{
		Log: zap.NewNop(),
		InternalConfig: &config.InternalConfig{
			JWT: config.JWT{Secret: secret},
		},
	}

	protected := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "user-123", utils.GetUserID(r.Context()), "user id should come from the token")
		assert.Equal(t, constvars.RoleDoctor, utils.GetUserRole(r.Context()), "role should come from the token")
		w.WriteHeader(http.StatusOK)
	})

	t.Run("Valid Token", func(t *testing.T) {
		token, err := utils.GenerateJWT("user-123", constvars.RoleDoctor, secret, time.Hour)
		assert.NoError(t, err)

		req := httptest.NewRequest("GET", "/api/v1/bookings/my", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+token)

		rr := httptest.NewRecorder()
		middlewares.Authenticate(protected).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Missing Header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/bookings/my", nil)

		rr := httptest.NewRecorder()
		middlewares.Authenticate(protected).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Token Signed With Another Secret", func(t *testing.T) {
		token, err := utils.GenerateJWT("user-123", constvars.RoleDoctor, "other-secret", time.Hour)
		assert.NoError(t, err)

		req := httptest.NewRequest("GET", "/api/v1/bookings/my", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+token)

		rr := httptest.NewRecorder()
		middlewares.Authenticate(protected).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestRequireRoles(t *testing.T) {
	secret := "test-signing-secret"
	middlewares := &Middlewares{
		Log: zap.NewNop(),
		InternalConfig: &config.InternalConfig{
			JWT: config.JWT{Secret: secret},
		},
	}

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	callWithRole := func(role string, handler http.Handler) *httptest.ResponseRecorder {
		token, err := utils.GenerateJWT("user-123", role, secret, time.Hour)
		assert.NoError(t, err)

		req := httptest.NewRequest("GET", "/api/v1/reports/income", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+token)

		rr := httptest.NewRecorder()
		middlewares.Authenticate(handler).ServeHTTP(rr, req)
		return rr
	}

	t.Run("Allowed Role", func(t *testing.T) {
		handler := middlewares.RequireRoles(constvars.RoleAdmin)(ok)

		rr := callWithRole(constvars.RoleAdmin, handler)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Denied Role", func(t *testing.T) {
		handler := middlewares.RequireRoles(constvars.RoleAdmin)(ok)

		rr := callWithRole(constvars.RoleUser, handler)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("Any Of Several Roles", func(t *testing.T) {
		handler := middlewares.RequireRoles(constvars.RoleDoctor, constvars.RoleAdmin)(ok)

		rr := callWithRole(constvars.RoleDoctor, handler)

		assert.Equal(t, http.StatusOK, rr.Code)
	})
}
