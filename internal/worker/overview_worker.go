// Package worker recomputes derived finance views in response to change
// events. Every mutation triggers a fresh fetch and a full recompute; the
// worker never patches aggregates incrementally.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"duit/internal/amqp"
	"duit/internal/core"
	applog "duit/internal/log"
	"duit/internal/services"
)

// OverviewWorker consumes change events and logs the recomputed
// current-month overview.
type OverviewWorker struct {
	finance   *services.Finance
	formatter *core.Formatter
}

func NewOverviewWorker(finance *services.Finance, formatter *core.Formatter) *OverviewWorker {
	return &OverviewWorker{
		finance:   finance,
		formatter: formatter,
	}
}

// HandleChange processes one change event by recomputing the month overview
// from fresh collections.
func (w *OverviewWorker) HandleChange(ctx context.Context, msg *amqp.ChangeMessage) error {
	fields := applog.NewFields().
		WithComponent(applog.ComponentWorker).
		WithOperation(msg.Op)
	fields["entity"] = msg.Entity
	fields["id"] = msg.ID
	slog.InfoContext(ctx, "Processing change event", fields.ToSlice()...)

	return w.RecomputeOverview(ctx)
}

// RecomputeOverview derives the current-month summary and top expense
// categories and logs them.
func (w *OverviewWorker) RecomputeOverview(ctx context.Context) error {
	now := time.Now()

	snapshot, err := w.finance.ComputeSnapshot(ctx, core.PeriodMonth, now, core.FilterAll)
	if err != nil {
		return fmt.Errorf("compute month snapshot: %w", err)
	}

	top, err := w.finance.TopExpenses(ctx, core.PeriodMonth, now, 5)
	if err != nil {
		return fmt.Errorf("compute top expenses: %w", err)
	}

	slog.InfoContext(ctx, "Month overview recomputed",
		"month", now.Format("2006-01"),
		"income", w.formatter.Currency(snapshot.Summary.TotalIncome),
		"expense", w.formatter.Currency(snapshot.Summary.TotalExpense),
		"balance", w.formatter.Currency(snapshot.Summary.Balance),
		"transactions", snapshot.Summary.TransactionCount)

	for i, entry := range top {
		slog.InfoContext(ctx, "Top expense category",
			"rank", i+1,
			"name", entry.Name,
			"total", w.formatter.Currency(entry.Total))
	}

	return nil
}

// Run consumes change events until ctx is cancelled.
func (w *OverviewWorker) Run(ctx context.Context, events *amqp.Client) error {
	// Compute once at startup so the log carries a baseline before the
	// first event arrives.
	if err := w.RecomputeOverview(ctx); err != nil {
		slog.ErrorContext(ctx, "Startup overview failed", "error", err)
	}

	return events.ConsumeChanges(ctx, func(msg *amqp.ChangeMessage) error {
		return w.HandleChange(ctx, msg)
	})
}
