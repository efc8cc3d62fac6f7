package httpmiddleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
)

func init() { gin.SetMode(gin.TestMode) }

func TestTokenBucket(t *testing.T) {
	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	l := NewTokenBucket(3, 60)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if !l.Allow(ctx, "10.0.0.1") {
			t.Fatalf("request %d rejected within capacity", i)
		}
	}
	if l.Allow(ctx, "10.0.0.1") {
		t.Fatal("request beyond capacity allowed")
	}
	if !l.Allow(ctx, "10.0.0.2") {
		t.Fatal("other client throttled")
	}

	now = now.Add(2 * time.Second) // 60/min refills 2 tokens
	for i := 0; i < 2; i++ {
		if !l.Allow(ctx, "10.0.0.1") {
			t.Fatalf("refilled request %d rejected", i)
		}
	}
	if l.Allow(ctx, "10.0.0.1") {
		t.Fatal("refill exceeded elapsed time")
	}

	now = now.Add(time.Hour)
	for i := 0; i < 3; i++ {
		l.Allow(ctx, "10.0.0.1")
	}
	if l.Allow(ctx, "10.0.0.1") {
		t.Fatal("refill exceeded capacity")
	}
}

func TestRedisWindow(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	now := time.Date(2026, 10, 14, 9, 0, 5, 0, time.UTC)
	l := NewRedisWindow(client, 2)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	if !l.Allow(ctx, "ip") || !l.Allow(ctx, "ip") {
		t.Fatal("requests within limit rejected")
	}
	if l.Allow(ctx, "ip") {
		t.Fatal("third request in window allowed")
	}
	key := "academia:ratelimit:ip:" + "29866140"
	if !mr.Exists(key) {
		t.Fatalf("window key %s missing; keys %v", key, mr.Keys())
	}
	if ttl := mr.TTL(key); ttl <= 0 || ttl > 2*time.Minute {
		t.Fatalf("ttl = %s", ttl)
	}

	now = now.Add(time.Minute)
	if !l.Allow(ctx, "ip") {
		t.Fatal("new window still throttled")
	}

	mr.Close()
	if !l.Allow(ctx, "ip") {
		t.Fatal("redis outage should fail open")
	}
}

type denyAll struct{}

func (denyAll) Allow(context.Context, string) bool { return false }

func TestRateLimitHandler(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(denyAll{}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if body := rec.Body.String(); body != `{"message":"Rate limit exceeded"}` {
		t.Fatalf("body = %s", body)
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	generated := rec.Header().Get(RequestIDHeader)
	if len(generated) != 36 || rec.Body.String() != generated {
		t.Fatalf("generated id %q, body %q", generated, rec.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Fatalf("client id not kept: %q", got)
	}
}

func TestMetricsAndSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(Metrics(), SecurityHeaders(true))
	r.GET("/api/things/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	before := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/api/things/:id", "204"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/things/7", nil))
	after := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/api/things/:id", "204"))
	if after-before != 1 {
		t.Fatalf("request counter moved by %v", after-before)
	}
	if rec.Header().Get("X-Frame-Options") != "DENY" || rec.Header().Get("Strict-Transport-Security") == "" {
		t.Fatalf("security headers missing: %v", rec.Header())
	}
}
