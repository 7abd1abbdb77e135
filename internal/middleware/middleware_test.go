package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"image-calendar-generator/config"
	"image-calendar-generator/internal/middleware"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...any)  {}

func newRouter(mw middleware.Middleware, handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/ping", append(handlers, func(c *gin.Context) { c.String(http.StatusOK, "pong") })...)
	return r
}

func doPost(r *gin.Engine, remoteAddr string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/ping", nil)
	req.RemoteAddr = remoteAddr
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimit(t *testing.T) {
	mw := middleware.New(&mockLogger{}, config.CORSConfig{}, config.RateLimitConfig{
		PerMinute: 60,
		Burst:     2,
	})
	r := newRouter(mw, mw.RateLimit())

	for i := 0; i < 2; i++ {
		if w := doPost(r, "10.0.0.1:1234", nil); w.Code != http.StatusOK {
			t.Fatalf("request %d: status %d, want 200", i, w.Code)
		}
	}
	if w := doPost(r, "10.0.0.1:1234", nil); w.Code != http.StatusTooManyRequests {
		t.Errorf("burst exceeded: status %d, want 429", w.Code)
	}

	// A different client keeps its own bucket.
	if w := doPost(r, "10.0.0.2:1234", nil); w.Code != http.StatusOK {
		t.Errorf("independent client throttled: status %d", w.Code)
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	mw := middleware.New(&mockLogger{}, config.CORSConfig{}, config.RateLimitConfig{})
	r := newRouter(mw, mw.RateLimit())

	for i := 0; i < 10; i++ {
		if w := doPost(r, "10.0.0.1:1234", nil); w.Code != http.StatusOK {
			t.Fatalf("request %d throttled with limiting disabled: %d", i, w.Code)
		}
	}
}

func TestCORS(t *testing.T) {
	mw := middleware.New(&mockLogger{}, config.CORSConfig{
		AllowedOrigins: []string{"http://localhost:3000", "http://localhost:3001"},
	}, config.RateLimitConfig{})
	r := newRouter(mw, mw.CORS())

	t.Run("allowed origin", func(t *testing.T) {
		w := doPost(r, "10.0.0.1:1234", map[string]string{"Origin": "http://localhost:3000"})
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
			t.Errorf("Allow-Origin = %q", got)
		}
	})

	t.Run("unlisted origin", func(t *testing.T) {
		w := doPost(r, "10.0.0.1:1234", map[string]string{"Origin": "http://evil.example"})
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("unlisted origin got Allow-Origin %q", got)
		}
	})

	t.Run("preflight", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		engine := gin.New()
		engine.Use(mw.CORS())
		req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
		req.Header.Set("Origin", "http://localhost:3001")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		if w.Code != http.StatusNoContent {
			t.Errorf("preflight status = %d, want 204", w.Code)
		}
		if got := w.Header().Get("Access-Control-Allow-Methods"); got == "" {
			t.Errorf("preflight missing Allow-Methods")
		}
	})
}

func TestRequestID(t *testing.T) {
	mw := middleware.New(&mockLogger{}, config.CORSConfig{}, config.RateLimitConfig{})
	r := newRouter(mw, mw.RequestID())

	t.Run("generated", func(t *testing.T) {
		w := doPost(r, "10.0.0.1:1234", nil)
		if got := w.Header().Get(middleware.HeaderXRequestID); got == "" {
			t.Errorf("no request id generated")
		}
	})

	t.Run("propagated", func(t *testing.T) {
		w := doPost(r, "10.0.0.1:1234", map[string]string{middleware.HeaderXRequestID: "req-42"})
		if got := w.Header().Get(middleware.HeaderXRequestID); got != "req-42" {
			t.Errorf("request id = %q, want req-42", got)
		}
	})
}
