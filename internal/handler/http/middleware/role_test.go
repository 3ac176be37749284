package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffport/attendance-backend-go/internal/domain/user"
	"github.com/staffport/attendance-backend-go/internal/pkg/jwt"
)

func roleTestRouter(t *testing.T) (chi.Router, jwt.Service) {
	t.Helper()
	jwtService := jwt.NewJWTService("test-secret-key", "1h", "24h")

	r := chi.NewRouter()
	r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
	r.Use(AuthRequired(jwtService.JWTAuth()))

	r.Group(func(r chi.Router) {
		r.Use(StaffOnly)
		r.Post("/attendance/leave", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})
	r.Group(func(r chi.Router) {
		r.Use(RequireAdmin)
		r.Get("/admin/users", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})
	return r, jwtService
}

func doRequest(t *testing.T, r chi.Router, method, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestStaffOnly_RejectsAdminAccounts(t *testing.T) {
	r, jwtService := roleTestRouter(t)
	token, _, err := jwtService.GenerateAccessToken("admin-1", "admin@attendance.com", user.RoleAdmin)
	require.NoError(t, err)

	rec := doRequest(t, r, http.MethodPost, "/attendance/leave", token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestStaffOnly_AllowsStaffAccounts(t *testing.T) {
	r, jwtService := roleTestRouter(t)
	token, _, err := jwtService.GenerateAccessToken("user-1", "alice@attendance.com", user.RoleStaff)
	require.NoError(t, err)

	rec := doRequest(t, r, http.MethodPost, "/attendance/leave", token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdmin_RejectsStaffAccounts(t *testing.T) {
	r, jwtService := roleTestRouter(t)
	token, _, err := jwtService.GenerateAccessToken("user-1", "alice@attendance.com", user.RoleStaff)
	require.NoError(t, err)

	rec := doRequest(t, r, http.MethodGet, "/admin/users", token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAdmin_AllowsAdminAccounts(t *testing.T) {
	r, jwtService := roleTestRouter(t)
	token, _, err := jwtService.GenerateAccessToken("admin-1", "admin@attendance.com", user.RoleAdmin)
	require.NoError(t, err)

	rec := doRequest(t, r, http.MethodGet, "/admin/users", token)
	assert.Equal(t, http.StatusOK, rec.Code)
}
