package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"duit/internal/core"
	"duit/internal/store"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "duit_test.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestCategoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	created, err := s.CreateCategory(ctx, store.CategoryFields{
		Name: "Transportasi", Kind: core.Expense, Icon: "🚗", Color: "#3b82f6",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := s.GetCategory(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Transportasi" || got.Kind != core.Expense || got.Icon != "🚗" {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	color := "#000000"
	if err := s.UpdateCategory(ctx, created.ID, store.CategoryUpdate{Color: &color}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ = s.GetCategory(ctx, created.ID)
	if got.Color != "#000000" || got.Name != "Transportasi" {
		t.Fatalf("partial update wrong: %+v", got)
	}

	if err := s.DeleteCategory(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.GetCategory(ctx, created.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTransactionRoundTripAndOrder(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	for _, d := range []time.Time{
		time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	} {
		if _, err := s.CreateTransaction(ctx, store.TransactionFields{
			CategoryID: "c1", Amount: 100, Kind: core.Expense, Description: "x", Date: d,
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
			t.Fatalf("not ordered by date desc")
		}
	}
}

func TestUpdateMissingTransaction(t *testing.T) {
	s := openTestStore(t)
	amount := int64(1)
	err := s.UpdateTransaction(context.Background(), "missing", store.TransactionUpdate{Amount: &amount})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
