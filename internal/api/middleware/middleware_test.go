package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/auth"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

func issue(t *testing.T, tokens *auth.TokenManager, p domain.Principal) string {
	t.Helper()
	token, _, err := tokens.Issue(p)
	require.NoError(t, err)
	return token
}

func TestAuth(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", "parqhub", time.Hour)
	a := NewAuth(tokens, logger.NewDiscard())

	userToken := issue(t, tokens, domain.Principal{Kind: domain.PrincipalUser, ID: 7})
	adminToken := issue(t, tokens, domain.Principal{Kind: domain.PrincipalAdmin, ID: 2, Role: domain.RoleFinanceOfficer})

	var seen *domain.Principal
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = GetPrincipal(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name   string
		wrap   func(http.Handler) http.Handler
		header string
		status int
	}{
		{"user allowed", a.RequireUser, "Bearer " + userToken, http.StatusNoContent},
		{"admin on user route", a.RequireUser, "Bearer " + adminToken, http.StatusForbidden},
		{"admin allowed", a.RequireAdmin, "Bearer " + adminToken, http.StatusNoContent},
		{"user on admin route", a.RequireAdmin, "Bearer " + userToken, http.StatusForbidden},
		{"missing header", a.RequireUser, "", http.StatusUnauthorized},
		{"wrong scheme", a.RequireUser, "Basic " + userToken, http.StatusUnauthorized},
		{"garbage token", a.RequireAdmin, "Bearer not-a-token", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			tt.wrap(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusNoContent {
				require.NotNil(t, seen)
			} else {
				assert.Nil(t, seen)
			}
		})
	}
}

func TestAuth_AdminPrincipalCarriesRole(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", "parqhub", time.Hour)
	a := NewAuth(tokens, logger.NewDiscard())
	token := issue(t, tokens, domain.Principal{Kind: domain.PrincipalAdmin, ID: 2, Role: domain.RoleSuperAdmin})

	var seen *domain.Principal
	handler := a.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = GetPrincipal(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, seen)
	assert.Equal(t, int64(2), seen.ID)
	assert.Equal(t, domain.RoleSuperAdmin, seen.Role)
}

type observation struct {
	method, route string
	status        int
}

type fakeCollector struct{ seen []observation }

func (f *fakeCollector) ObserveHTTPRequest(method, route string, status int, _ time.Duration) {
	f.seen = append(f.seen, observation{method, route, status})
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	collector := &fakeCollector{}
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(collector))
	r.HandleFunc("/bookings/{bookingId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/bookings/15", nil))

	require.Len(t, collector.seen, 1)
	assert.Equal(t, observation{http.MethodGet, "/bookings/{bookingId}", http.StatusTeapot}, collector.seen[0])
}

func TestRequestID(t *testing.T) {
	var inside string
	handler := RequestID(logger.NewDiscard())(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		inside = GetRequestID(r.Context())
	}))

	t.Run("keeps valid incoming id", func(t *testing.T) {
		id := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, id)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, id, rec.Header().Get(RequestIDHeader))
		assert.Equal(t, id, inside)
	})

	t.Run("replaces invalid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "<script>")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		got := rec.Header().Get(RequestIDHeader)
		_, err := uuid.Parse(got)
		require.NoError(t, err)
		assert.Equal(t, got, inside)
	})
}
