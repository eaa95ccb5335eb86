package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestRateLimit_BurstThenThrottle(t *testing.T) {
	e := echo.New()
	mw := RateLimit(NewRateLimiter(1, 2))
	handler := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	hit := func() error {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		return handler(e.NewContext(req, rec))
	}

	for i := 0; i < 2; i++ {
		if err := hit(); err != nil {
			t.Fatalf("request %d within burst rejected: %v", i+1, err)
		}
	}

	err := hit()
	if err == nil {
		t.Fatal("request beyond burst was allowed")
	}
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusTooManyRequests {
		t.Fatalf("error = %v, want 429", err)
	}
}

func TestRateLimit_PerIP(t *testing.T) {
	e := echo.New()
	mw := RateLimit(NewRateLimiter(1, 1))
	handler := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	hit := func(addr string) error {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		return handler(e.NewContext(req, rec))
	}

	if err := hit("10.0.0.1:1234"); err != nil {
		t.Fatalf("first client rejected: %v", err)
	}
	if err := hit("10.0.0.1:1234"); err == nil {
		t.Fatal("exhausted client was allowed")
	}
	// A different client has its own bucket.
	if err := hit("10.0.0.2:1234"); err != nil {
		t.Fatalf("second client rejected: %v", err)
	}
}
