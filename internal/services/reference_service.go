// Package services – ReferenceService
//
// Accounts, categories, and legal cases are simple owner-scoped reference
// entities; the service validates names and delegates to the repo layer.
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/advokatia/go-finance-backend/internal/domain"
	"github.com/advokatia/go-finance-backend/internal/repo"
)

// ErrNameRequired is returned when a reference entity is created without a
// usable name or title.
var ErrNameRequired = errors.New("name is required")

// ErrReferenceNotFound indicates the referenced entity does not exist or is
// not accessible to the current user.
var ErrReferenceNotFound = errors.New("not found")

// ReferenceService manages accounts, categories, and legal cases.
type ReferenceService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// NewReferenceService constructs a ReferenceService.
func NewReferenceService(db *gorm.DB) *ReferenceService {
	return &ReferenceService{DB: db}
}

// CreateAccount inserts a new account for the user.
func (s *ReferenceService) CreateAccount(ctx context.Context, userID, name string) (*domain.Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	a := &domain.Account{ID: uuid.NewString(), UserID: userID, Name: name}
	if err := repo.CreateAccount(ctx, s.DB, a); err != nil {
		return nil, err
	}
	return a, nil
}

// ListAccounts returns the user's accounts.
func (s *ReferenceService) ListAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	return repo.ListAccounts(ctx, s.DB, userID)
}

// DeleteAccount removes an account owned by the user.
func (s *ReferenceService) DeleteAccount(ctx context.Context, userID, id string) error {
	err := repo.DeleteAccount(ctx, s.DB, id, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrReferenceNotFound
	}
	return err
}

// CreateCategory inserts a new category for the user. Kind must be a valid
// transaction kind since categories partition reports by it.
func (s *ReferenceService) CreateCategory(ctx context.Context, userID, name, kind string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	kind = strings.ToLower(strings.TrimSpace(kind))
	if kind != domain.KindIncome && kind != domain.KindExpense {
		return nil, ErrInvalidKind
	}
	c := &domain.Category{ID: uuid.NewString(), UserID: userID, Name: name, Kind: kind}
	if err := repo.CreateCategory(ctx, s.DB, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ListCategories returns the user's categories.
func (s *ReferenceService) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	return repo.ListCategories(ctx, s.DB, userID)
}

// DeleteCategory removes a category owned by the user.
func (s *ReferenceService) DeleteCategory(ctx context.Context, userID, id string) error {
	err := repo.DeleteCategory(ctx, s.DB, id, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrReferenceNotFound
	}
	return err
}

// CreateLegalCase inserts a new legal case for the user.
func (s *ReferenceService) CreateLegalCase(ctx context.Context, userID, title, clientName, docketNo string) (*domain.LegalCase, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrNameRequired
	}
	lc := &domain.LegalCase{
		ID:         uuid.NewString(),
		UserID:     userID,
		Title:      title,
		ClientName: strings.TrimSpace(clientName),
		DocketNo:   strings.TrimSpace(docketNo),
	}
	if err := repo.CreateLegalCase(ctx, s.DB, lc); err != nil {
		return nil, err
	}
	return lc, nil
}

// ListLegalCases returns the user's legal cases.
func (s *ReferenceService) ListLegalCases(ctx context.Context, userID string) ([]domain.LegalCase, error) {
	return repo.ListLegalCases(ctx, s.DB, userID)
}

// DeleteLegalCase removes a legal case owned by the user.
func (s *ReferenceService) DeleteLegalCase(ctx context.Context, userID, id string) error {
	err := repo.DeleteLegalCase(ctx, s.DB, id, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrReferenceNotFound
	}
	return err
}
