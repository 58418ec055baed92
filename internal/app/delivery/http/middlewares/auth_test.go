package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"medisync-service/internal/app/config"
	"medisync-service/internal/pkg/constvars"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func signTestToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func testMiddlewares() *Middlewares {
	return NewMiddlewares(zap.NewNop(), &config.InternalConfig{
		JWT: config.JWT{Secret: testSecret},
	})
}

func TestAuthenticate(t *testing.T) {
	m := testMiddlewares()

	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := ActorFromContext(r.Context())
		assert.True(t, ok, "actor should be set in context")
		assert.Equal(t, int64(42), actor.UserID)
		assert.Equal(t, constvars.RoleReceptionist, actor.Role)
		assert.Equal(t, int64(3), actor.HospitalID)
		w.WriteHeader(http.StatusOK)
	})

	t.Run("valid bearer token", func(t *testing.T) {
		token := signTestToken(t, jwt.MapClaims{
			"user_id":     float64(42),
			"role":        constvars.RoleReceptionist,
			"hospital_id": float64(3),
			"exp":         time.Now().Add(time.Hour).Unix(),
		})

		req := httptest.NewRequest("POST", "/api/appointments", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+token)
		rr := httptest.NewRecorder()

		m.Authenticate(okHandler).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("token via query param on GET", func(t *testing.T) {
		token := signTestToken(t, jwt.MapClaims{
			"user_id":     float64(42),
			"role":        constvars.RoleReceptionist,
			"hospital_id": float64(3),
		})

		req := httptest.NewRequest("GET", "/api/events/appointments?token="+token, nil)
		rr := httptest.NewRecorder()

		m.Authenticate(okHandler).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/appointments", nil)
		rr := httptest.NewRecorder()

		m.Authenticate(okHandler).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		token := signTestToken(t, jwt.MapClaims{
			"user_id": float64(42),
			"role":    constvars.RoleReceptionist,
			"exp":     time.Now().Add(-time.Hour).Unix(),
		})

		req := httptest.NewRequest("POST", "/api/appointments", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+token)
		rr := httptest.NewRecorder()

		m.Authenticate(okHandler).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("wrong signature", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": float64(42),
			"role":    constvars.RoleReceptionist,
		})
		signed, err := token.SignedString([]byte("other-secret"))
		require.NoError(t, err)

		req := httptest.NewRequest("POST", "/api/appointments", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+signed)
		rr := httptest.NewRecorder()

		m.Authenticate(okHandler).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestRequireRoles(t *testing.T) {
	m := testMiddlewares()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	protected := m.Authenticate(m.RequireRoles(constvars.RoleReceptionist, constvars.RoleAdmin)(handler))

	t.Run("allowed role", func(t *testing.T) {
		token := signTestToken(t, jwt.MapClaims{
			"user_id": float64(1),
			"role":    constvars.RoleAdmin,
		})
		req := httptest.NewRequest("PATCH", "/api/appointments/1/confirm", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+token)
		rr := httptest.NewRecorder()

		protected.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("forbidden role", func(t *testing.T) {
		token := signTestToken(t, jwt.MapClaims{
			"user_id": float64(1),
			"role":    constvars.RolePatient,
		})
		req := httptest.NewRequest("PATCH", "/api/appointments/1/confirm", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+token)
		rr := httptest.NewRecorder()

		protected.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}
