package routes

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"ringback/backend/config"
	"ringback/backend/consent"
)

type recordingSink struct {
	got []consent.Submission
}

func (s *recordingSink) RecordOptIn(_ context.Context, sub consent.Submission) error {
	s.got = append(s.got, sub)
	return nil
}

func newEngine(t *testing.T) *gin.Engine {
	t.Helper()
	return newEngineWith(t, Deps{})
}

func newEngineWith(t *testing.T, d Deps) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.Config{
		JWTSecret:        "test-secret",
		JWTTTL:           time.Hour,
		OptInRatePerMin:  2,
		CORSAllowOrigins: []string{"https://app.example.com"},
	}
	r := gin.New()
	require.NoError(t, Register(r, cfg, d))
	return r
}

func request(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPublicRoutes(t *testing.T) {
	r := newEngine(t)

	w := request(r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = request(r, http.MethodGet, "/api/industries", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"AUTO_REPAIR"`)

	w = request(r, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestZonesRejectAnonymous(t *testing.T) {
	r := newEngine(t)
	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/dashboard"},
		{http.MethodGet, "/api/onboarding/status"},
		{http.MethodPost, "/api/onboarding/business"},
		{http.MethodGet, "/api/admin/businesses"},
		{http.MethodGet, "/api/admin/sms-opt-ins/export"},
	} {
		w := request(r, tc.method, tc.path, "{}")
		require.Equal(t, http.StatusUnauthorized, w.Code, tc.path)
		assert.JSONEq(t, `{"error":"access denied","reason":"NOT_AUTHENTICATED","redirect":"sign-in"}`, w.Body.String(), tc.path)
	}
	assert.Equal(t, http.StatusUnauthorized, request(r, http.MethodGet, "/api/me", "").Code)
}

func TestSMSOptInRateLimited(t *testing.T) {
	r := newEngine(t)
	assert.Equal(t, http.StatusOK, request(r, http.MethodPost, "/api/sms-opt-in", `{"consent":true}`).Code)
	assert.Equal(t, http.StatusBadRequest, request(r, http.MethodPost, "/api/sms-opt-in", `{"consent":false}`).Code)
	assert.Equal(t, http.StatusTooManyRequests, request(r, http.MethodPost, "/api/sms-opt-in", `{"consent":true}`).Code)
}

func TestSMSOptInIgnoresForwardedFor(t *testing.T) {
	sink := &recordingSink{}
	r := newEngineWith(t, Deps{Sink: sink})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/sms-opt-in", strings.NewReader(`{"consent":true}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i))
		req.Header.Set("X-Real-IP", fmt.Sprintf("198.51.100.%d", i))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	require.Len(t, sink.got, 2)
	for _, sub := range sink.got {
		assert.Equal(t, "192.0.2.1", sub.SourceIP)
	}
}

func TestRegisterRejectsBadTrustedProxy(t *testing.T) {
	cfg := config.Config{JWTSecret: "x", OptInRatePerMin: 1, CORSAllowOrigins: []string{"*"}, TrustedProxies: []string{"not-an-ip"}}
	assert.Error(t, Register(gin.New(), cfg, Deps{}))
}
