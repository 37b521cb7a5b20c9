package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestRateLimit_AllowsWithinBurst(t *testing.T) {
	h := RateLimit(1, 3, quietLogger())(okHandler())

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("POST", "/admin/login", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, "request %d should pass", i)
	}
}

func TestRateLimit_RejectsOverBurst(t *testing.T) {
	h := RateLimit(1, 2, quietLogger())(okHandler())

	var last int
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("POST", "/admin/login", nil)
		req.RemoteAddr = "10.0.0.2:5000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		last = rec.Code
	}

	assert.Equal(t, http.StatusTooManyRequests, last)
}

func TestRateLimit_SeparateBucketsPerIP(t *testing.T) {
	h := RateLimit(1, 1, quietLogger())(okHandler())

	first := httptest.NewRequest("POST", "/admin/login", nil)
	first.RemoteAddr = "10.0.0.3:5000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, first)
	assert.Equal(t, http.StatusOK, rec.Code)

	other := httptest.NewRequest("POST", "/admin/login", nil)
	other.RemoteAddr = "10.0.0.4:5000"
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, other)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestVisitorStore_Cleanup(t *testing.T) {
	s := newVisitorStore(1, 1, time.Minute)
	now := time.Now()
	s.nowFunc = func() time.Time { return now }

	s.getVisitor("10.0.0.5")
	assert.Equal(t, 1, s.len())

	s.nowFunc = func() time.Time { return now.Add(2 * time.Minute) }
	s.cleanup()
	assert.Zero(t, s.len())
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "192.168.1.9:1234"
	assert.Equal(t, "192.168.1.9", clientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", clientIP(req))

	req.Header.Del("X-Forwarded-For")
	req.Header.Set("X-Real-IP", "198.51.100.4")
	assert.Equal(t, "198.51.100.4", clientIP(req))
}
