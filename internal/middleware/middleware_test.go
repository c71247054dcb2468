package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"asf-backend/internal/auth"
	"asf-backend/internal/config"
	"asf-backend/internal/models"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUsers map[int64]*models.User

func (s stubUsers) Get(_ context.Context, id int64) (*models.User, error) {
	if u, ok := s[id]; ok {
		return u, nil
	}
	return nil, errors.New("no rows")
}

func jwtManager() *auth.JWTManager {
	cfg := &config.Config{}
	cfg.JWT.Secret = "middleware-test"
	cfg.JWT.AdminSupSession = time.Hour
	cfg.JWT.AdminSession = time.Hour
	cfg.JWT.SupSession = time.Hour
	return auth.NewJWTManager(cfg)
}

func token(t *testing.T, m *auth.JWTManager, u *models.User) string {
	t.Helper()
	tok, _, err := m.GenerateToken(u)
	require.NoError(t, err)
	return tok
}

func echoIdentity(w http.ResponseWriter, r *http.Request) {
	id, _ := GetUserIDFromContext(r.Context())
	role, _ := GetRoleFromContext(r.Context())
	w.Header().Set("X-User", role)
	if id == 0 {
		w.WriteHeader(http.StatusTeapot)
	}
}

func TestAuthenticate(t *testing.T) {
	jm := jwtManager()
	active := &models.User{ID: 1, Role: models.RoleAdmin, IsActive: true}
	suspended := &models.User{ID: 2, Role: models.RoleSupervisor, IsActive: false}
	users := stubUsers{1: active, 2: suspended}
	mw := NewAuthMiddleware(jm, users)

	// role in the token is stale; the database says admin-sup now
	stale := token(t, jm, &models.User{ID: 1, Role: models.RoleSupervisor})
	active.Role = models.RoleAdminSup

	tests := []struct {
		name     string
		setup    func(r *http.Request)
		wantCode int
		wantRole string
	}{
		{"no token", func(r *http.Request) {}, http.StatusUnauthorized, ""},
		{"garbage token", func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, http.StatusUnauthorized, ""},
		{"wrong scheme", func(r *http.Request) { r.Header.Set("Authorization", "Basic "+stale) }, http.StatusUnauthorized, ""},
		{"bearer header", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+stale) }, http.StatusOK, models.RoleAdminSup},
		{"cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: TokenCookie, Value: stale}) }, http.StatusOK, models.RoleAdminSup},
		{"suspended user", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+token(t, jm, suspended))
		}, http.StatusForbidden, ""},
		{"deleted user", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+token(t, jm, &models.User{ID: 99, Role: models.RoleAdmin}))
		}, http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/invoices", nil)
			tt.setup(req)
			rec := httptest.NewRecorder()

			mw.Authenticate(http.HandlerFunc(echoIdentity)).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantRole, rec.Header().Get("X-User"))
		})
	}
}

func TestRequireRole(t *testing.T) {
	h := RequireRole(models.RoleAdmin, models.RoleAdminSup)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	for role, want := range map[string]int{
		models.RoleAdmin:      http.StatusOK,
		models.RoleAdminSup:   http.StatusOK,
		models.RoleSupervisor: http.StatusForbidden,
		"":                    http.StatusForbidden,
	} {
		t.Run(role, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req = req.WithContext(context.WithValue(req.Context(), RoleKey, role))
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)
			assert.Equal(t, want, rec.Code)
		})
	}
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	h := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/clients", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/api/clients", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestPanicRecovery(t *testing.T) {
	h := PanicRecovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Internal server error"}`, rec.Body.String())
}

func TestMetricsMiddlewareUsesRouteTemplate(t *testing.T) {
	r := mux.NewRouter()
	r.Use(MetricsMiddleware)
	r.HandleFunc("/api/invoices/{id}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/invoices/{id}", routeLabel(r))
		w.WriteHeader(http.StatusAccepted)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/invoices/42", nil))
	assert.Equal(t, http.StatusAccepted, rec.Code)

	assert.Equal(t, "unmatched", routeLabel(httptest.NewRequest(http.MethodGet, "/x", nil)))
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "10.0.0.1, 10.0.0.2")
	assert.Equal(t, "10.0.0.1", clientIP(req))
}
