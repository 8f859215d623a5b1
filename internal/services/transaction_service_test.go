package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/advokatia/go-finance-backend/internal/domain"
	"github.com/advokatia/go-finance-backend/internal/repo"
)

func validInput() CreateTransactionInput {
	return CreateTransactionInput{
		Kind:        domain.KindIncome,
		Description: "consultation fee",
		Amount:      decimal.RequireFromString("350.00"),
		DueDate:     day(2024, time.April, 10),
	}
}

func TestTransactionCreate_Validation(t *testing.T) {
	db := newTestDB(t)
	svc := NewTransactionService(db)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*CreateTransactionInput)
		want   error
	}{
		{"bad kind", func(in *CreateTransactionInput) { in.Kind = "transfer" }, ErrInvalidKind},
		{"zero amount", func(in *CreateTransactionInput) { in.Amount = decimal.Zero }, ErrInvalidAmount},
		{"negative amount", func(in *CreateTransactionInput) { in.Amount = decimal.RequireFromString("-5") }, ErrInvalidAmount},
		{"recurring without frequency", func(in *CreateTransactionInput) { in.IsRecurring = true }, ErrFrequencyRequired},
		{"recurring with bad frequency", func(in *CreateTransactionInput) {
			in.IsRecurring = true
			f := "weekly"
			in.RecurrenceFrequency = &f
		}, ErrInvalidFrequency},
		{"recurring with zero count", func(in *CreateTransactionInput) {
			in.IsRecurring = true
			f := "monthly"
			n := 0
			in.RecurrenceFrequency = &f
			in.RecurrenceCount = &n
		}, ErrInvalidRecurrenceCount},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			if _, err := svc.Create(ctx, "u1", in); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestTransactionCreate_RecurringFieldsOnlyWhenRecurring(t *testing.T) {
	db := newTestDB(t)
	svc := NewTransactionService(db)
	ctx := context.Background()

	// A one-shot create with stray recurrence fields must not store them.
	in := validInput()
	f := "monthly"
	n := 5
	in.RecurrenceFrequency = &f
	in.RecurrenceCount = &n

	tx, err := svc.Create(ctx, "u1", in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if tx.RecurrenceFrequency != nil || tx.RecurrenceCount != nil {
		t.Fatalf("one-shot transaction carries recurrence fields: %+v", tx)
	}
	if tx.Status != domain.StatusPending {
		t.Fatalf("new transaction must start pending, got %q", tx.Status)
	}
}

func TestTransactionMarkPaid(t *testing.T) {
	db := newTestDB(t)
	svc := NewTransactionService(db)
	ctx := context.Background()

	tx, err := svc.Create(ctx, "u1", validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	paidOn := day(2024, time.April, 12)
	if err := svc.MarkPaid(ctx, "u1", tx.ID, paidOn); err != nil {
		t.Fatalf("mark paid: %v", err)
	}

	got, err := svc.Get(ctx, "u1", tx.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != domain.StatusPaid || got.PaymentDate == nil || !got.PaymentDate.Equal(paidOn) {
		t.Fatalf("paid state not persisted: %+v", got)
	}

	// Second payment attempt is rejected.
	if err := svc.MarkPaid(ctx, "u1", tx.ID, paidOn); !errors.Is(err, ErrAlreadyPaid) {
		t.Fatalf("expected ErrAlreadyPaid, got %v", err)
	}
	// Other users cannot pay it either.
	if err := svc.MarkPaid(ctx, "u2", tx.ID, paidOn); !errors.Is(err, ErrTransactionNotFound) {
		t.Fatalf("expected ErrTransactionNotFound for non-owner, got %v", err)
	}
}

func TestTransactionUpdate_StopRecurring(t *testing.T) {
	db := newTestDB(t)
	svc := NewTransactionService(db)
	ctx := context.Background()

	in := validInput()
	in.IsRecurring = true
	f := "monthly"
	in.RecurrenceFrequency = &f

	tx, err := svc.Create(ctx, "u1", in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Update(ctx, "u1", tx.ID, UpdateTransactionInput{StopRecurring: true}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := svc.Get(ctx, "u1", tx.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.IsRecurring {
		t.Fatalf("generator must be deactivated")
	}

	// Deactivated generators are no longer advanced.
	rec := NewRecurrenceService(db)
	rep, err := rec.Run(ctx, day(2030, time.January, 1))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if rep.Processed != 0 {
		t.Fatalf("deactivated generator was selected: %s", rep.Describe())
	}
}

func TestTransactionListPage_Defaults(t *testing.T) {
	db := newTestDB(t)
	svc := NewTransactionService(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		in := validInput()
		in.DueDate = day(2024, time.April, 10+i)
		if _, err := svc.Create(ctx, "u1", in); err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}

	items, total, err := svc.ListPage(ctx, "u1", repo.TransactionFilter{}, 0, -1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 || len(items) != 3 {
		t.Fatalf("total=%d len=%d; want 3/3", total, len(items))
	}
}
