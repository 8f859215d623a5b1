// Transaction HTTP handlers.
//
// This file exposes the REST endpoints for receivables and payables:
//   - POST   /transactions           (create, optionally recurring)
//   - GET    /transactions           (list with filters and pagination)
//   - GET    /transactions/{id}      (fetch one)
//   - PUT    /transactions/{id}      (edit descriptive fields / stop series)
//   - POST   /transactions/{id}/pay  (mark paid)
//   - DELETE /transactions/{id}      (remove)
//
// Handlers are transport-thin: they validate input, delegate to
// TransactionService, and translate service errors into HTTP results.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/advokatia/go-finance-backend/internal/domain"
	"github.com/advokatia/go-finance-backend/internal/repo"
	"github.com/advokatia/go-finance-backend/internal/services"
	"github.com/advokatia/go-finance-backend/internal/utils"
)

// CreateTransactionRequest is the JSON payload for creating a transaction.
type CreateTransactionRequest struct {
	Kind                string  `json:"kind" binding:"required,oneof=income expense" example:"income"`
	Description         string  `json:"description" binding:"required" example:"monthly retainer"`
	Amount              string  `json:"amount" binding:"required" example:"1500.00"`
	DueDate             string  `json:"due_date" binding:"required" example:"2024-01-15"`
	IsRecurring         bool    `json:"is_recurring" example:"true"`
	RecurrenceFrequency *string `json:"recurrence_frequency,omitempty" example:"monthly"`
	RecurrenceEndDate   *string `json:"recurrence_end_date,omitempty" example:"2024-12-31"`
	RecurrenceCount     *int    `json:"recurrence_count,omitempty" example:"12"`
	AccountID           *string `json:"account_id,omitempty"`
	CaseID              *string `json:"case_id,omitempty"`
	CategoryID          *string `json:"category_id,omitempty"`
	Observations        *string `json:"observations,omitempty"`
}

// UpdateTransactionRequest is the JSON payload for editing a transaction.
type UpdateTransactionRequest struct {
	Description   *string `json:"description,omitempty"`
	Amount        *string `json:"amount,omitempty"`
	DueDate       *string `json:"due_date,omitempty"`
	CategoryID    *string `json:"category_id,omitempty"`
	Observations  *string `json:"observations,omitempty"`
	StopRecurring bool    `json:"stop_recurring,omitempty"`
}

// PayTransactionRequest optionally overrides the payment date.
type PayTransactionRequest struct {
	PaymentDate *string `json:"payment_date,omitempty" example:"2024-01-20"`
}

// TransactionListResponse is the paginated listing envelope.
type TransactionListResponse struct {
	Items    []domain.Transaction `json:"items"`
	Total    int64                `json:"total"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"page_size"`
}

// CreateTransaction godoc
// @ID          createTransaction
// @Summary     Create a transaction
// @Description Creates a receivable or payable, optionally flagged as a recurring generator.
// @Tags        Transactions
// @Accept      json
// @Produce     json
// @Param       X-User-ID header string false "User ID (demo header)" example(user123)
// @Param       body body handlers.CreateTransactionRequest true "Transaction payload"
// @Success     201 {object} domain.Transaction
// @Failure     400 {object} handlers.ErrorResponse "Invalid payload"
// @Failure     500 {object} handlers.ErrorResponse "Internal server error"
// @Router      /transactions [post]
func (h *Handlers) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid payload")
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "amount must be a decimal number")
		return
	}
	due, okDate := parseDate(req.DueDate)
	if !okDate || due.IsZero() {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "due_date must be YYYY-MM-DD")
		return
	}

	in := services.CreateTransactionInput{
		Kind:                req.Kind,
		Description:         req.Description,
		Amount:              amount,
		DueDate:             due,
		IsRecurring:         req.IsRecurring,
		RecurrenceFrequency: req.RecurrenceFrequency,
		RecurrenceCount:     req.RecurrenceCount,
		AccountID:           req.AccountID,
		CaseID:              req.CaseID,
		CategoryID:          req.CategoryID,
		Observations:        req.Observations,
	}
	if req.RecurrenceEndDate != nil {
		end, okEnd := parseDate(*req.RecurrenceEndDate)
		if !okEnd {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "recurrence_end_date must be YYYY-MM-DD")
			return
		}
		in.RecurrenceEndDate = &end
	}

	tx, err := h.txSvc.Create(c.Request.Context(), userID(c), in)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidKind),
			errors.Is(err, services.ErrInvalidAmount),
			errors.Is(err, services.ErrFrequencyRequired),
			errors.Is(err, services.ErrInvalidFrequency),
			errors.Is(err, services.ErrInvalidRecurrenceCount):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		}
		return
	}

	ok(c, http.StatusCreated, tx)
}

// ListTransactions godoc
// @ID          listTransactions
// @Summary     List transactions
// @Description Returns the user's transactions, filtered and paginated.
// @Tags        Transactions
// @Produce     json
// @Param       X-User-ID header string false "User ID (demo header)"
// @Param       kind      query  string false "income|expense"
// @Param       status    query  string false "pending|paid"
// @Param       case_id   query  string false "Legal case filter"
// @Param       from      query  string false "Due date window start (YYYY-MM-DD)"
// @Param       to        query  string false "Due date window end (YYYY-MM-DD)"
// @Param       page      query  int    false "Page (1-based)"
// @Param       page_size query  int    false "Page size"
// @Success     200 {object} handlers.TransactionListResponse
// @Failure     400 {object} handlers.ErrorResponse "Invalid filters"
// @Failure     500 {object} handlers.ErrorResponse "Internal server error"
// @Router      /transactions [get]
func (h *Handlers) ListTransactions(c *gin.Context) {
	f := repo.TransactionFilter{
		Kind:   c.Query("kind"),
		Status: c.Query("status"),
		CaseID: c.Query("case_id"),
	}
	if from, okFrom := parseDate(c.Query("from")); !okFrom {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "from must be YYYY-MM-DD")
		return
	} else if !from.IsZero() {
		f.From = &from
	}
	if to, okTo := parseDate(c.Query("to")); !okTo {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "to must be YYYY-MM-DD")
		return
	} else if !to.IsZero() {
		f.To = &to
	}

	page, pageSize := utils.ClampPage(
		utils.AtoiDefault(c.Query("page"), 1),
		utils.AtoiDefault(c.Query("page_size"), 20),
		20, 200,
	)

	items, total, err := h.txSvc.ListPage(c.Request.Context(), userID(c), f, page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, TransactionListResponse{Items: items, Total: total, Page: page, PageSize: pageSize})
}

// GetTransaction godoc
// @ID          getTransaction
// @Summary     Get a transaction
// @Tags        Transactions
// @Produce     json
// @Param       X-User-ID header string false "User ID (demo header)"
// @Param       id path string true "Transaction ID (UUID)" format(uuid)
// @Success     200 {object} domain.Transaction
// @Failure     404 {object} handlers.ErrorResponse "Transaction not found"
// @Failure     500 {object} handlers.ErrorResponse "Internal server error"
// @Router      /transactions/{id} [get]
func (h *Handlers) GetTransaction(c *gin.Context) {
	tx, err := h.txSvc.Get(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrTransactionNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "transaction not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, tx)
}

// UpdateTransaction godoc
// @ID          updateTransaction
// @Summary     Update a transaction
// @Description Edits descriptive fields; stop_recurring deactivates a generator.
// @Tags        Transactions
// @Accept      json
// @Produce     json
// @Param       X-User-ID header string false "User ID (demo header)"
// @Param       id   path string true "Transaction ID (UUID)" format(uuid)
// @Param       body body handlers.UpdateTransactionRequest true "Fields to update"
// @Success     204 {string} string "No Content"
// @Failure     400 {object} handlers.ErrorResponse "Invalid payload"
// @Failure     404 {object} handlers.ErrorResponse "Transaction not found"
// @Failure     500 {object} handlers.ErrorResponse "Internal server error"
// @Router      /transactions/{id} [put]
func (h *Handlers) UpdateTransaction(c *gin.Context) {
	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid payload")
		return
	}

	in := services.UpdateTransactionInput{
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		Observations:  req.Observations,
		StopRecurring: req.StopRecurring,
	}
	if req.Amount != nil {
		amount, err := decimal.NewFromString(*req.Amount)
		if err != nil {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "amount must be a decimal number")
			return
		}
		in.Amount = &amount
	}
	if req.DueDate != nil {
		due, okDue := parseDate(*req.DueDate)
		if !okDue || due.IsZero() {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "due_date must be YYYY-MM-DD")
			return
		}
		in.DueDate = &due
	}

	err := h.txSvc.Update(c.Request.Context(), userID(c), c.Param("id"), in)
	switch {
	case err == nil:
		noContent(c)
	case errors.Is(err, services.ErrTransactionNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "transaction not found")
	case errors.Is(err, services.ErrInvalidAmount):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}

// PayTransaction godoc
// @ID          payTransaction
// @Summary     Mark a transaction paid
// @Tags        Transactions
// @Accept      json
// @Produce     json
// @Param       X-User-ID header string false "User ID (demo header)"
// @Param       id   path string true "Transaction ID (UUID)" format(uuid)
// @Param       body body handlers.PayTransactionRequest false "Payment date override"
// @Success     204 {string} string "No Content"
// @Failure     404 {object} handlers.ErrorResponse "Transaction not found"
// @Failure     409 {object} handlers.ErrorResponse "Already paid"
// @Failure     500 {object} handlers.ErrorResponse "Internal server error"
// @Router      /transactions/{id}/pay [post]
func (h *Handlers) PayTransaction(c *gin.Context) {
	var req PayTransactionRequest
	// Body is optional.
	_ = c.ShouldBindJSON(&req)

	var paymentDate time.Time
	if req.PaymentDate != nil {
		d, okDate := parseDate(*req.PaymentDate)
		if !okDate || d.IsZero() {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "payment_date must be YYYY-MM-DD")
			return
		}
		paymentDate = d
	}

	err := h.txSvc.MarkPaid(c.Request.Context(), userID(c), c.Param("id"), paymentDate)
	switch {
	case err == nil:
		noContent(c)
	case errors.Is(err, services.ErrTransactionNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "transaction not found")
	case errors.Is(err, services.ErrAlreadyPaid):
		fail(c, http.StatusConflict, ErrCodeAlreadyPaid, "transaction already paid")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}

// DeleteTransaction godoc
// @ID          deleteTransaction
// @Summary     Delete a transaction
// @Tags        Transactions
// @Param       X-User-ID header string false "User ID (demo header)"
// @Param       id path string true "Transaction ID (UUID)" format(uuid)
// @Success     204 {string} string "No Content"
// @Failure     404 {object} handlers.ErrorResponse "Transaction not found"
// @Failure     500 {object} handlers.ErrorResponse "Internal server error"
// @Router      /transactions/{id} [delete]
func (h *Handlers) DeleteTransaction(c *gin.Context) {
	err := h.txSvc.Delete(c.Request.Context(), userID(c), c.Param("id"))
	switch {
	case err == nil:
		noContent(c)
	case errors.Is(err, services.ErrTransactionNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "transaction not found")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}
