package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestIdentity_HeaderAndFallback(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Identity("office"))
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(userIDKey))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-User-ID", "  lawyer-7  ")
	r.ServeHTTP(w, req)
	if w.Body.String() != "lawyer-7" {
		t.Fatalf("resolved user = %q, want trimmed header value", w.Body.String())
	}

	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/", nil))
	if w2.Body.String() != "office" {
		t.Fatalf("resolved user = %q, want fallback", w2.Body.String())
	}
}
