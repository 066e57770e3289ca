package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"duit/internal/core"
	"duit/internal/store"
)

func TestCategoryCRUD(t *testing.T) {
	ctx := context.Background()
	s := New()

	created, err := s.CreateCategory(ctx, store.CategoryFields{
		Name: "Makan & Minum", Kind: core.Expense, Icon: "🍔", Color: "#f97316",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" || created.CreatedAt.IsZero() {
		t.Fatalf("store must assign id and createdAt: %+v", created)
	}

	got, err := s.GetCategory(ctx, created.ID)
	if err != nil || got.Name != "Makan & Minum" {
		t.Fatalf("get: (%+v, %v)", got, err)
	}

	name := "Jajan"
	if err := s.UpdateCategory(ctx, created.ID, store.CategoryUpdate{Name: &name}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ = s.GetCategory(ctx, created.ID)
	if got.Name != "Jajan" || got.Kind != core.Expense {
		t.Fatalf("partial update must keep untouched fields: %+v", got)
	}

	if err := s.DeleteCategory(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.GetCategory(ctx, created.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateCategoryValidates(t *testing.T) {
	s := New()
	if _, err := s.CreateCategory(context.Background(), store.CategoryFields{Name: "", Kind: core.Income}); !errors.Is(err, core.ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if _, err := s.CreateCategory(context.Background(), store.CategoryFields{Name: "x", Kind: "other"}); !errors.Is(err, core.ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestListTransactionsSortedByDateDesc(t *testing.T) {
	ctx := context.Background()
	s := New()

	dates := []time.Time{
		time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, d := range dates {
		if _, err := s.CreateTransaction(ctx, store.TransactionFields{
			CategoryID: "c1", Amount: 100, Kind: core.Expense, Date: d,
		}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	list, err := s.ListTransactions(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3, got %d", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i].Date.After(list[i-1].Date) {
			t.Fatalf("not sorted by date desc: %v then %v", list[i-1].Date, list[i].Date)
		}
	}
}

func TestTransactionPartialUpdate(t *testing.T) {
	ctx := context.Background()
	s := New()

	created, err := s.CreateTransaction(ctx, store.TransactionFields{
		CategoryID: "c1", Amount: 100, Kind: core.Expense,
		Description: "kopi", Date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	amount := int64(250)
	if err := s.UpdateTransaction(ctx, created.ID, store.TransactionUpdate{Amount: &amount}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ := s.GetTransaction(ctx, created.ID)
	if got.Amount != 250 || got.Description != "kopi" || got.CategoryID != "c1" {
		t.Fatalf("partial update wrong: %+v", got)
	}

	bad := int64(-1)
	if err := s.UpdateTransaction(ctx, created.ID, store.TransactionUpdate{Amount: &bad}); !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestDeleteCategoryDoesNotCascade(t *testing.T) {
	ctx := context.Background()
	s := New()

	cat, _ := s.CreateCategory(ctx, store.CategoryFields{Name: "Belanja", Kind: core.Expense})
	tx, _ := s.CreateTransaction(ctx, store.TransactionFields{
		CategoryID: cat.ID, Amount: 50000, Kind: core.Expense,
		Date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
	})

	if err := s.DeleteCategory(ctx, cat.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	got, err := s.GetTransaction(ctx, tx.ID)
	if err != nil {
		t.Fatalf("transaction must survive category deletion: %v", err)
	}
	if got.CategoryID != cat.ID {
		t.Fatalf("dangling category id must be retained, got %q", got.CategoryID)
	}
}
