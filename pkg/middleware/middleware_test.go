package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alokyadav9045/travellr-sub002/internal/domain"
	"github.com/alokyadav9045/travellr-sub002/internal/usecases/authenticating"
	"github.com/alokyadav9045/travellr-sub002/internal/usecases/authenticating/mocks"
	"github.com/alokyadav9045/travellr-sub002/pkg/apiErrors"
	"github.com/alokyadav9045/travellr-sub002/pkg/log"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	log.SetupTestLogger()

	tests := []struct {
		name       string
		path       string
		headers    map[string]string
		setup      func(m *mocks.MockAuthenticator)
		wantStatus int
	}{
		{
			name:       "rota pública",
			path:       "/healthcheck",
			setup:      func(m *mocks.MockAuthenticator) {},
			wantStatus: http.StatusOK,
		},
		{
			name:       "sem credenciais",
			path:       "/v1/reports/revenue",
			setup:      func(m *mocks.MockAuthenticator) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "authorization sem bearer",
			path:       "/v1/reports/revenue",
			headers:    map[string]string{"Authorization": "Basic abc"},
			setup:      func(m *mocks.MockAuthenticator) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:    "jwt válido",
			path:    "/v1/reports/revenue",
			headers: map[string]string{"Authorization": "Bearer good"},
			setup: func(m *mocks.MockAuthenticator) {
				m.EXPECT().ValidateToken("good").Return(&domain.Claims{UserID: 1, UserRoleID: domain.RoleAdmin}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:    "jwt expirado",
			path:    "/v1/reports/revenue",
			headers: map[string]string{"Authorization": "Bearer old"},
			setup: func(m *mocks.MockAuthenticator) {
				m.EXPECT().ValidateToken("old").Return(nil, authenticating.NewAuthError(authenticating.ErrExpiredToken, apiErrors.ErrExpiredToken, ""))
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:    "api key válida",
			path:    "/v1/reports/revenue",
			headers: map[string]string{HeaderAPIKey: "svc"},
			setup: func(m *mocks.MockAuthenticator) {
				m.EXPECT().ValidateAPIKey("svc").Return(domain.ServiceClaims(), nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:    "api key inválida",
			path:    "/v1/reports/revenue",
			headers: map[string]string{HeaderAPIKey: "bad"},
			setup: func(m *mocks.MockAuthenticator) {
				m.EXPECT().ValidateAPIKey("bad").Return(nil, errors.New("invalid api key"))
			},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			auth := mocks.NewMockAuthenticator(ctrl)
			tt.setup(auth)

			handler := AuthMiddleware(auth, "/healthcheck")(okHandler())
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRoleMiddleware(t *testing.T) {
	log.SetupTestLogger()

	tests := []struct {
		name       string
		claims     *domain.Claims
		wantStatus int
	}{
		{"sem claims", nil, http.StatusUnauthorized},
		{"admin", &domain.Claims{UserRoleID: domain.RoleAdmin}, http.StatusOK},
		{"staff", &domain.Claims{UserRoleID: domain.RoleStaff}, http.StatusForbidden},
		{"fornecedor", &domain.Claims{UserRoleID: domain.RoleVendor, VendorID: "v"}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/cron/status", nil)
			if tt.claims != nil {
				req = req.WithContext(WithClaims(req.Context(), tt.claims))
			}
			rec := httptest.NewRecorder()

			AdminOnly()(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestCors(t *testing.T) {
	handler := Cors([]string{"https://dashboard.travellr.com"})(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/v1/reports/revenue", nil)
	req.Header.Set("Origin", "https://dashboard.travellr.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://dashboard.travellr.com", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/v1/reports/revenue", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestLoggingMiddlewareCorrelationID(t *testing.T) {
	log.SetupTestLogger()
	var seen string
	handler := LoggingMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = log.GetCorrelationID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	req.Header.Set(HeaderCorrelationID, "corr-1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "corr-1", seen)
	assert.Equal(t, "corr-1", rec.Header().Get(HeaderCorrelationID))
	assert.Equal(t, http.StatusTeapot, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	assert.NotEmpty(t, rec.Header().Get(HeaderCorrelationID))
}

func TestLogPanicMiddleware(t *testing.T) {
	log.SetupTestLogger()
	t.Setenv("APP_ENV", "production")
	handler := LogPanicMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/reports/revenue", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), apiErrors.ErrInternalServer)
}
