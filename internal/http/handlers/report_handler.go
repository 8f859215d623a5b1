package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SummaryReport godoc
// @ID          summaryReport
// @Summary     Financial summary
// @Description Aggregates income, expense and balance over an optional due-date window.
// @Tags        Reports
// @Produce     json
// @Param       X-User-ID header string false "User ID (demo header)"
// @Param       from query string false "Window start (YYYY-MM-DD)"
// @Param       to   query string false "Window end (YYYY-MM-DD)"
// @Success     200 {object} services.Summary
// @Failure     400 {object} handlers.ErrorResponse "Invalid window"
// @Failure     500 {object} handlers.ErrorResponse "Internal server error"
// @Router      /reports/summary [get]
func (h *Handlers) SummaryReport(c *gin.Context) {
	from, okFrom := parseDate(c.Query("from"))
	if !okFrom {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "from must be YYYY-MM-DD")
		return
	}
	to, okTo := parseDate(c.Query("to"))
	if !okTo {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "to must be YYYY-MM-DD")
		return
	}

	sum, err := h.rptSvc.Summary(c.Request.Context(), userID(c), from, to)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, sum)
}
