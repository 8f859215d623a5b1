package domain

import (
	"strings"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newDomainDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Exec("PRAGMA foreign_keys=ON;")
	return db
}

func TestTableNames(t *testing.T) {
	if (Transaction{}).TableName() != "transactions" {
		t.Fatalf("Transaction.TableName() = %q; want %q", (Transaction{}).TableName(), "transactions")
	}
	if (Account{}).TableName() != "accounts" {
		t.Fatalf("Account.TableName() = %q; want %q", (Account{}).TableName(), "accounts")
	}
	if (Category{}).TableName() != "categories" {
		t.Fatalf("Category.TableName() = %q; want %q", (Category{}).TableName(), "categories")
	}
	if (LegalCase{}).TableName() != "legal_cases" {
		t.Fatalf("LegalCase.TableName() = %q; want %q", (LegalCase{}).TableName(), "legal_cases")
	}
}

func TestSeriesRootID(t *testing.T) {
	root := Transaction{ID: "tx-root"}
	if got := root.SeriesRootID(); got != "tx-root" {
		t.Fatalf("root SeriesRootID() = %q; want its own id", got)
	}

	orig := "tx-root"
	child := Transaction{ID: "tx-child", RecurrenceOriginalID: &orig}
	if got := child.SeriesRootID(); got != "tx-root" {
		t.Fatalf("child SeriesRootID() = %q; want %q", got, "tx-root")
	}
}

func TestMigrations_Indexes_AndDedup(t *testing.T) {
	db := newDomainDB(t)

	if err := db.AutoMigrate(&Transaction{}, &Account{}, &Category{}, &LegalCase{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	m := db.Migrator()

	for _, tbl := range []any{&Transaction{}, &Account{}, &Category{}, &LegalCase{}} {
		if !m.HasTable(tbl) {
			t.Fatalf("expected table for %T to exist", tbl)
		}
	}

	if !m.HasIndex(&Transaction{}, "idx_user_tx") {
		t.Fatalf("expected index idx_user_tx on transactions")
	}
	if !m.HasIndex(&Transaction{}, "ux_series_due") {
		t.Fatalf("expected unique index ux_series_due on transactions")
	}

	now := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	orig := "root-1"

	seed := func(id string, due time.Time) error {
		return db.Create(&Transaction{
			ID:                   id,
			UserID:               "u1",
			Kind:                 KindExpense,
			Description:          "office rent",
			Amount:               decimal.RequireFromString("1200.00"),
			DueDate:              due,
			Status:               StatusPending,
			RecurrenceOriginalID: &orig,
		}).Error
	}

	if err := seed("occ-1", now); err != nil {
		t.Fatalf("insert first occurrence: %v", err)
	}
	// Same series, same period: the unique index must reject it.
	err := seed("occ-2", now)
	if err == nil {
		t.Fatalf("expected duplicate (recurrence_original_id, due_date) insert to fail")
	}
	if !strings.Contains(strings.ToLower(err.Error()), "unique") {
		t.Fatalf("expected a UNIQUE violation, got: %v", err)
	}
	// Same series, next period: fine.
	if err := seed("occ-3", now.AddDate(0, 1, 0)); err != nil {
		t.Fatalf("insert next-period occurrence: %v", err)
	}
}
