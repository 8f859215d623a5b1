package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/advokatia/go-finance-backend/internal/http/middleware"
)

// ProcessRecurrencesRequest optionally overrides the processing date.
type ProcessRecurrencesRequest struct {
	AsOf *string `json:"as_of,omitempty" example:"2024-01-15"`
}

// ProcessRecurrences godoc
// @ID          processRecurrences
// @Summary     Process due recurring transactions
// @Description Runs the recurrence engine once: every active recurring transaction whose
// @Description due date has arrived produces its next occurrence and its schedule advances.
// @Description Safe to call repeatedly; already-materialized periods are skipped.
// @Tags        Recurrence
// @Accept      json
// @Produce     json
// @Param       body body handlers.ProcessRecurrencesRequest false "Processing date override"
// @Success     200 {object} services.Report "All eligible records processed"
// @Success     207 {object} services.Report "Some records failed; report lists them"
// @Failure     400 {object} handlers.ErrorResponse "Invalid as_of date"
// @Failure     503 {object} handlers.ErrorResponse "Store unavailable"
// @Router      /recurrence/process [post]
func (h *Handlers) ProcessRecurrences(c *gin.Context) {
	var req ProcessRecurrencesRequest
	// Body is optional.
	_ = c.ShouldBindJSON(&req)

	asOf := time.Now()
	if req.AsOf != nil {
		d, okDate := parseDate(*req.AsOf)
		if !okDate || d.IsZero() {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "as_of must be YYYY-MM-DD")
			return
		}
		asOf = d
	}

	report, err := h.recSvc.Run(c.Request.Context(), asOf)
	if err != nil {
		fail(c, http.StatusServiceUnavailable, ErrCodeProcessFailed, "recurrence processing unavailable")
		return
	}

	lg := middleware.LoggerFrom(c)
	lg.Info().
		Int("processed", report.Processed).
		Int("generated", report.Generated).
		Int("terminated", report.Terminated).
		Int("skipped", report.Skipped).
		Int("failed", len(report.Failures)).
		Msg("recurrence run completed")

	if h.notify != nil {
		h.notify()
	}

	status := http.StatusOK
	if len(report.Failures) > 0 {
		status = http.StatusMultiStatus
	}
	ok(c, status, report)
}
