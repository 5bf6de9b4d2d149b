package api_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dom/tutoring-scheduler/internal/api"
	"github.com/dom/tutoring-scheduler/internal/cache"
	"github.com/dom/tutoring-scheduler/internal/repository"
	"github.com/dom/tutoring-scheduler/internal/service"
	"github.com/dom/tutoring-scheduler/internal/testutil"
	"github.com/stretchr/testify/assert"
)

// loginAttempts sends empty login bodies from one connection address, each
// with its own X-Forwarded-For, and returns the status codes.
func loginAttempts(t *testing.T, trustProxy bool, n int) []int {
	t.Helper()

	cfg := testutil.TestConfig()
	cfg.AuthRateLimit = 0.001
	cfg.AuthRateBurst = 1
	cfg.TrustProxyHeaders = trustProxy

	services := service.NewServices(&repository.Repositories{}, cache.Disabled(), cfg)
	router := api.NewRouter(t.Context(), services, cfg)

	codes := make([]int, 0, n)
	for i := range n {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = "192.0.2.10:40000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i+1))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	return codes
}

func TestAuthRateLimit_IgnoresForwardedHeaders(t *testing.T) {
	codes := loginAttempts(t, false, 5)

	assert.Equal(t, http.StatusBadRequest, codes[0])
	for _, code := range codes[1:] {
		assert.Equal(t, http.StatusTooManyRequests, code)
	}
}

func TestAuthRateLimit_TrustedProxy(t *testing.T) {
	codes := loginAttempts(t, true, 5)

	// Behind a trusted proxy each forwarded client gets its own bucket.
	for _, code := range codes {
		assert.Equal(t, http.StatusBadRequest, code)
	}
}

func TestHealth(t *testing.T) {
	cfg := testutil.TestConfig()
	services := service.NewServices(&repository.Repositories{}, cache.Disabled(), cfg)
	router := api.NewRouter(t.Context(), services, cfg)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}
