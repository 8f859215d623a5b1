package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func TestMetrics_RecordsRequestSeries(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/billing/:id", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/billing/42", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	mw := httptest.NewRecorder()
	r.ServeHTTP(mw, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := mw.Body.String()

	// The route label must be the registered pattern, not the raw URL.
	if !strings.Contains(body, `http_requests_total{method="GET",path="/billing/:id",status="200"}`) {
		t.Fatalf("expected counter series with route pattern label")
	}
	if strings.Contains(body, `path="/billing/42"`) {
		t.Fatalf("raw URL leaked into metrics labels")
	}
	if !strings.Contains(body, "http_request_duration_seconds") {
		t.Fatalf("expected latency histogram")
	}
}
