// Package domain defines the persistence models for transactions, accounts,
// categories, and legal cases. These types are mapped with GORM and form the
// core data layer of the finance backend.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction kinds.
const (
	KindIncome  = "income"
	KindExpense = "expense"
)

// Transaction statuses.
const (
	StatusPending = "pending"
	StatusPaid    = "paid"
)

// Transaction represents a single receivable or payable owned by a user.
// A transaction may additionally act as a recurring generator: when
// IsRecurring is true, its DueDate is the cursor for the next occurrence not
// yet generated, and the recurrence_* fields describe the series.
//
// Generated occurrences are independent rows that point back to the series
// root via RecurrenceOriginalID. The unique index on
// (recurrence_original_id, due_date) is the store-level guard that makes
// occurrence materialization safe to retry: inserting the same period twice
// fails as a duplicate instead of producing a second row.
type Transaction struct {
	ID          string          `json:"id"          gorm:"type:char(36);primaryKey"`
	UserID      string          `json:"user_id"     gorm:"type:varchar(64);not null;index:idx_user_tx"`
	Kind        string          `json:"kind"        gorm:"type:varchar(16);not null;check:kind IN ('income','expense')"`
	Description string          `json:"description" gorm:"type:varchar(255);not null"`
	Amount      decimal.Decimal `json:"amount"      gorm:"type:decimal(20,4);not null"`
	DueDate     time.Time       `json:"due_date"    gorm:"type:date;not null;index:idx_due_date;uniqueIndex:ux_series_due,priority:2"`
	Status      string          `json:"status"      gorm:"type:varchar(16);not null;default:'pending';check:status IN ('pending','paid')"`
	PaymentDate *time.Time      `json:"payment_date,omitempty" gorm:"type:date"`

	// Recurrence definition. Frequency must be set whenever IsRecurring is
	// true; rows with IsRecurring false are never advanced.
	IsRecurring          bool       `json:"is_recurring"                     gorm:"not null;default:false;index:idx_recurring"`
	RecurrenceFrequency  *string    `json:"recurrence_frequency,omitempty"   gorm:"type:varchar(16)"`
	RecurrenceEndDate    *time.Time `json:"recurrence_end_date,omitempty"    gorm:"type:date"`
	RecurrenceCount      *int       `json:"recurrence_count,omitempty"`
	RecurrenceOriginalID *string    `json:"recurrence_original_id,omitempty" gorm:"type:char(36);uniqueIndex:ux_series_due,priority:1"`

	// Optional references carried through unchanged to generated occurrences.
	AccountID    *string `json:"account_id,omitempty"  gorm:"type:char(36);index"`
	CaseID       *string `json:"case_id,omitempty"     gorm:"type:char(36);index"`
	CategoryID   *string `json:"category_id,omitempty" gorm:"type:char(36);index"`
	Observations *string `json:"observations,omitempty" gorm:"type:text"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName returns the database table name for Transaction.
func (Transaction) TableName() string { return "transactions" }

// SeriesRootID returns the id of the first row in this transaction's series:
// the back-reference when this row is a generated occurrence, the row's own
// id otherwise.
func (t Transaction) SeriesRootID() string {
	if t.RecurrenceOriginalID != nil && *t.RecurrenceOriginalID != "" {
		return *t.RecurrenceOriginalID
	}
	return t.ID
}

// Account represents a bank or cash account transactions can be booked
// against.
type Account struct {
	ID        string         `json:"id"      gorm:"type:char(36);primaryKey"`
	UserID    string         `json:"user_id" gorm:"type:varchar(64);not null;index:idx_user_accounts"`
	Name      string         `json:"name"    gorm:"type:varchar(120);not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName returns the database table name for Account.
func (Account) TableName() string { return "accounts" }

// Category labels transactions for reporting.
type Category struct {
	ID        string         `json:"id"      gorm:"type:char(36);primaryKey"`
	UserID    string         `json:"user_id" gorm:"type:varchar(64);not null;index:idx_user_categories"`
	Name      string         `json:"name"    gorm:"type:varchar(120);not null"`
	Kind      string         `json:"kind"    gorm:"type:varchar(16);not null;check:kind IN ('income','expense')"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName returns the database table name for Category.
func (Category) TableName() string { return "categories" }

// LegalCase represents a client matter that receivables and payables can be
// attached to.
type LegalCase struct {
	ID         string         `json:"id"          gorm:"type:char(36);primaryKey"`
	UserID     string         `json:"user_id"     gorm:"type:varchar(64);not null;index:idx_user_cases"`
	Title      string         `json:"title"       gorm:"type:varchar(255);not null"`
	ClientName string         `json:"client_name" gorm:"type:varchar(120);not null"`
	DocketNo   string         `json:"docket_no"   gorm:"type:varchar(64)"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName returns the database table name for LegalCase.
func (LegalCase) TableName() string { return "legal_cases" }
