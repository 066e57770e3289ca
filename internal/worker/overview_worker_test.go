package worker

import (
	"context"
	"testing"
	"time"

	"duit/internal/amqp"
	"duit/internal/core"
	"duit/internal/services"
	"duit/internal/store"
	"duit/internal/store/memory"
)

func TestHandleChange_RecomputesFromFreshCollections(t *testing.T) {
	st := memory.New()
	finance := services.NewFinance(st, nil)
	w := NewOverviewWorker(finance, core.NewFormatter("id", "IDR"))

	ctx := context.Background()
	cat, err := st.CreateCategory(ctx, store.CategoryFields{Name: "Makan", Kind: core.Expense})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	_, err = st.CreateTransaction(ctx, store.TransactionFields{
		CategoryID: cat.ID,
		Amount:     2500,
		Kind:       core.Expense,
		Date:       time.Now(),
	})
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}

	msg := amqp.NewChangeMessage(amqp.EntityTransaction, amqp.OpCreate, "abc")
	if err := w.HandleChange(ctx, msg); err != nil {
		t.Fatalf("HandleChange: %v", err)
	}
}

func TestRecomputeOverview_EmptyStore(t *testing.T) {
	finance := services.NewFinance(memory.New(), nil)
	w := NewOverviewWorker(finance, core.NewFormatter("id", "IDR"))

	if err := w.RecomputeOverview(context.Background()); err != nil {
		t.Fatalf("RecomputeOverview on empty store: %v", err)
	}
}
