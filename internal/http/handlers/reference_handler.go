// Reference-data HTTP handlers: accounts, categories and legal cases.
// These are thin CRUD surfaces; transactions reference them by id.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/advokatia/go-finance-backend/internal/services"
)

// CreateAccountRequest is the JSON payload for creating an account.
type CreateAccountRequest struct {
	Name string `json:"name" binding:"required" example:"office checking"`
}

// CreateCategoryRequest is the JSON payload for creating a category.
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required" example:"rent"`
	Kind string `json:"kind" binding:"required,oneof=income expense" example:"expense"`
}

// CreateLegalCaseRequest is the JSON payload for creating a legal case.
type CreateLegalCaseRequest struct {
	Title      string `json:"title" binding:"required" example:"Doe v. Acme"`
	ClientName string `json:"client_name,omitempty" example:"Jane Doe"`
	DocketNo   string `json:"docket_no,omitempty" example:"2024-CV-0123"`
}

// CreateAccount godoc
// @ID          createAccount
// @Summary     Create an account
// @Tags        Reference
// @Accept      json
// @Produce     json
// @Param       X-User-ID header string false "User ID (demo header)"
// @Param       body body handlers.CreateAccountRequest true "Account payload"
// @Success     201 {object} domain.Account
// @Failure     400 {object} handlers.ErrorResponse "Invalid payload"
// @Failure     500 {object} handlers.ErrorResponse "Internal server error"
// @Router      /accounts [post]
func (h *Handlers) CreateAccount(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid payload")
		return
	}
	acc, err := h.refSvc.CreateAccount(c.Request.Context(), userID(c), req.Name)
	if err != nil {
		if errors.Is(err, services.ErrNameRequired) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		return
	}
	ok(c, http.StatusCreated, acc)
}

// ListAccounts godoc
// @ID          listAccounts
// @Summary     List accounts
// @Tags        Reference
// @Produce     json
// @Param       X-User-ID header string false "User ID (demo header)"
// @Success     200 {array} domain.Account
// @Failure     500 {object} handlers.ErrorResponse "Internal server error"
// @Router      /accounts [get]
func (h *Handlers) ListAccounts(c *gin.Context) {
	items, err := h.refSvc.ListAccounts(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// DeleteAccount godoc
// @ID          deleteAccount
// @Summary     Delete an account
// @Tags        Reference
// @Param       X-User-ID header string false "User ID (demo header)"
// @Param       id path string true "Account ID (UUID)" format(uuid)
// @Success     204 {string} string "No Content"
// @Failure     404 {object} handlers.ErrorResponse "Account not found"
// @Failure     500 {object} handlers.ErrorResponse "Internal server error"
// @Router      /accounts/{id} [delete]
func (h *Handlers) DeleteAccount(c *gin.Context) {
	h.deleteReference(c, h.refSvc.DeleteAccount)
}

// CreateCategory godoc
// @ID          createCategory
// @Summary     Create a category
// @Tags        Reference
// @Accept      json
// @Produce     json
// @Param       X-User-ID header string false "User ID (demo header)"
// @Param       body body handlers.CreateCategoryRequest true "Category payload"
// @Success     201 {object} domain.Category
// @Failure     400 {object} handlers.ErrorResponse "Invalid payload"
// @Failure     500 {object} handlers.ErrorResponse "Internal server error"
// @Router      /categories [post]
func (h *Handlers) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid payload")
		return
	}
	cat, err := h.refSvc.CreateCategory(c.Request.Context(), userID(c), req.Name, req.Kind)
	if err != nil {
		if errors.Is(err, services.ErrNameRequired) || errors.Is(err, services.ErrInvalidKind) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		return
	}
	ok(c, http.StatusCreated, cat)
}

// ListCategories godoc
// @ID          listCategories
// @Summary     List categories
// @Tags        Reference
// @Produce     json
// @Param       X-User-ID header string false "User ID (demo header)"
// @Success     200 {array} domain.Category
// @Failure     500 {object} handlers.ErrorResponse "Internal server error"
// @Router      /categories [get]
func (h *Handlers) ListCategories(c *gin.Context) {
	items, err := h.refSvc.ListCategories(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// DeleteCategory godoc
// @ID          deleteCategory
// @Summary     Delete a category
// @Tags        Reference
// @Param       X-User-ID header string false "User ID (demo header)"
// @Param       id path string true "Category ID (UUID)" format(uuid)
// @Success     204 {string} string "No Content"
// @Failure     404 {object} handlers.ErrorResponse "Category not found"
// @Failure     500 {object} handlers.ErrorResponse "Internal server error"
// @Router      /categories/{id} [delete]
func (h *Handlers) DeleteCategory(c *gin.Context) {
	h.deleteReference(c, h.refSvc.DeleteCategory)
}

// CreateLegalCase godoc
// @ID          createLegalCase
// @Summary     Create a legal case
// @Tags        Reference
// @Accept      json
// @Produce     json
// @Param       X-User-ID header string false "User ID (demo header)"
// @Param       body body handlers.CreateLegalCaseRequest true "Legal case payload"
// @Success     201 {object} domain.LegalCase
// @Failure     400 {object} handlers.ErrorResponse "Invalid payload"
// @Failure     500 {object} handlers.ErrorResponse "Internal server error"
// @Router      /cases [post]
func (h *Handlers) CreateLegalCase(c *gin.Context) {
	var req CreateLegalCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid payload")
		return
	}
	lc, err := h.refSvc.CreateLegalCase(c.Request.Context(), userID(c), req.Title, req.ClientName, req.DocketNo)
	if err != nil {
		if errors.Is(err, services.ErrNameRequired) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		return
	}
	ok(c, http.StatusCreated, lc)
}

// ListLegalCases godoc
// @ID          listLegalCases
// @Summary     List legal cases
// @Tags        Reference
// @Produce     json
// @Param       X-User-ID header string false "User ID (demo header)"
// @Success     200 {array} domain.LegalCase
// @Failure     500 {object} handlers.ErrorResponse "Internal server error"
// @Router      /cases [get]
func (h *Handlers) ListLegalCases(c *gin.Context) {
	items, err := h.refSvc.ListLegalCases(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// DeleteLegalCase godoc
// @ID          deleteLegalCase
// @Summary     Delete a legal case
// @Tags        Reference
// @Param       X-User-ID header string false "User ID (demo header)"
// @Param       id path string true "Legal case ID (UUID)" format(uuid)
// @Success     204 {string} string "No Content"
// @Failure     404 {object} handlers.ErrorResponse "Legal case not found"
// @Failure     500 {object} handlers.ErrorResponse "Internal server error"
// @Router      /cases/{id} [delete]
func (h *Handlers) DeleteLegalCase(c *gin.Context) {
	h.deleteReference(c, h.refSvc.DeleteLegalCase)
}

func (h *Handlers) deleteReference(c *gin.Context, del func(ctx context.Context, userID, id string) error) {
	err := del(c.Request.Context(), userID(c), c.Param("id"))
	switch {
	case err == nil:
		noContent(c)
	case errors.Is(err, services.ErrReferenceNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "not found")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}
