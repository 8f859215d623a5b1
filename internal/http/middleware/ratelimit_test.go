package middleware

import (
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestKeyByUserOrIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = net.JoinHostPort("203.0.113.9", "12345")

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	key := KeyByUserOrIP()(c)
	if !strings.HasPrefix(key, "ip:") || !strings.Contains(key, "203.0.113.9") {
		t.Fatalf("expected ip-based key, got %q", key)
	}

	c.Set(userIDKey, "u123")
	if key2 := KeyByUserOrIP()(c); key2 != "user:u123" {
		t.Fatalf("expected user-based key, got %q", key2)
	}
}

func TestNewRateLimiter_BurstCoercion(t *testing.T) {
	rl := NewRateLimiter(2.0, 0, KeyByUserOrIP())
	if rl.burst != 1 {
		t.Fatalf("burst = %d, want coerced to 1", rl.burst)
	}
}

func TestGetVisitor_ReusesAndEvicts(t *testing.T) {
	rl := NewRateLimiter(1.0, 1, KeyByUserOrIP())
	lim := rl.getVisitor("k1")
	if lim == nil {
		t.Fatalf("expected limiter")
	}
	if lim2 := rl.getVisitor("k1"); lim2 != lim {
		t.Fatalf("expected same limiter instance on reuse")
	}

	// Force an idle entry past TTL, then trip the cleanup threshold.
	rl.mu.Lock()
	rl.visitors["k1"].lastSeen = time.Now().Add(-rl.ttl - time.Second)
	rl.cleanupN = 4999
	rl.mu.Unlock()

	rl.getVisitor("k2")

	rl.mu.Lock()
	_, alive := rl.visitors["k1"]
	rl.mu.Unlock()
	if alive {
		t.Fatalf("expected idle visitor to be evicted")
	}
}

func TestHandler_Returns429WhenExhausted(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := NewRateLimiter(0.0001, 1, KeyByUserOrIP())

	r := gin.New()
	r.Use(RequestID(), rl.Handler())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = net.JoinHostPort("198.51.100.4", "40000")

	w1 := httptest.NewRecorder()
	r.ServeHTTP(w1, req)
	if w1.Code != http.StatusOK {
		t.Fatalf("first request status = %d", w1.Code)
	}

	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)
	if w2.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", w2.Code)
	}
	if w2.Header().Get("Retry-After") != "1" {
		t.Fatalf("expected Retry-After header")
	}
	if !strings.Contains(w2.Body.String(), "rate_limited") {
		t.Fatalf("body = %q, want rate_limited code", w2.Body.String())
	}
}
