// Package handlers provides HTTP handler implementations for the public API.
// This file defines the Handlers aggregate and shared request helpers.
package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/advokatia/go-finance-backend/internal/services"
)

// Handlers bundles the HTTP handlers with their service dependencies.
type Handlers struct {
	txSvc  *services.TransactionService
	recSvc *services.RecurrenceService
	rptSvc *services.ReportService
	refSvc *services.ReferenceService

	// notify, when set, pokes the scheduler after a processing request so a
	// ticker-based deployment converges immediately.
	notify func()
}

// New constructs the Handlers aggregate.
func New(txSvc *services.TransactionService, recSvc *services.RecurrenceService, rptSvc *services.ReportService, refSvc *services.ReferenceService) *Handlers {
	return &Handlers{txSvc: txSvc, recSvc: recSvc, rptSvc: rptSvc, refSvc: refSvc}
}

// WithNotifier registers a scheduler poke called after on-demand processing.
func (h *Handlers) WithNotifier(fn func()) *Handlers {
	h.notify = fn
	return h
}

// userID extracts the authenticated user id from Gin context (set by upstream
// middleware). If absent, it falls back to "X-User-ID" header (tests use it),
// and finally to "demo-user". It never touches c.Request if it's nil.
func userID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	if c != nil && c.Request != nil {
		if h := strings.TrimSpace(c.GetHeader("X-User-ID")); h != "" {
			return h
		}
	}
	return "demo-user"
}

// parseDate parses a YYYY-MM-DD query value. Empty input returns the zero
// time with ok=true so callers can apply defaults.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, true
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
