// Package services orchestrates store access, change-event publishing and
// the aggregation core. All aggregate views are computed on freshly fetched
// collections; nothing is cached here.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"duit/internal/amqp"
	"duit/internal/core"
	"duit/internal/store"
)

// DefaultCategories is the starter set seeded when the category store is
// empty, matching the dashboard's stock icons and palette.
var DefaultCategories = []store.CategoryFields{
	{Name: "Makan & Minum", Kind: core.Expense, Icon: "🍔", Color: "#f97316"},
	{Name: "Transportasi", Kind: core.Expense, Icon: "🚗", Color: "#3b82f6"},
	{Name: "Belanja", Kind: core.Expense, Icon: "🛍️", Color: "#ec4899"},
	{Name: "Hiburan", Kind: core.Expense, Icon: "🎬", Color: "#8b5cf6"},
	{Name: "Kesehatan", Kind: core.Expense, Icon: "💊", Color: "#10b981"},
	{Name: "Tagihan", Kind: core.Expense, Icon: "📄", Color: "#64748b"},
	{Name: "Gaji", Kind: core.Income, Icon: "💰", Color: "#22c55e"},
	{Name: "Investasi", Kind: core.Income, Icon: "📈", Color: "#0ea5e9"},
	{Name: "Bonus", Kind: core.Income, Icon: "🎁", Color: "#f43f5e"},
	{Name: "Lainnya", Kind: core.Expense, Icon: "📦", Color: "#6b7280"},
}

// Snapshot is one fully derived view: the visible transactions after period
// and kind filtering, their summary, and the category set used for the join.
type Snapshot struct {
	Summary      core.FinanceSummary `json:"summary"`
	Transactions []core.Transaction  `json:"transactions"`
	Categories   []core.Category     `json:"categories"`
}

// Finance coordinates the store, the change-event publisher and the core.
type Finance struct {
	store  store.Store
	events *amqp.Client
}

func NewFinance(st store.Store, events *amqp.Client) *Finance {
	return &Finance{store: st, events: events}
}

// EnsureDefaultCategories seeds the starter set when the store has no
// categories yet. Idempotent: a non-empty store is left alone.
func (f *Finance) EnsureDefaultCategories(ctx context.Context) error {
	existing, err := f.store.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("list categories: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	for _, fields := range DefaultCategories {
		if _, err := f.store.CreateCategory(ctx, fields); err != nil {
			return fmt.Errorf("seed category %q: %w", fields.Name, err)
		}
	}

	slog.InfoContext(ctx, "Seeded default categories", "count", len(DefaultCategories))
	return nil
}

func (f *Finance) ListCategories(ctx context.Context) ([]core.Category, error) {
	return f.store.ListCategories(ctx)
}

func (f *Finance) GetCategory(ctx context.Context, id string) (*core.Category, error) {
	return f.store.GetCategory(ctx, id)
}

func (f *Finance) CreateCategory(ctx context.Context, fields store.CategoryFields) (*core.Category, error) {
	c, err := f.store.CreateCategory(ctx, fields)
	if err != nil {
		return nil, err
	}
	f.publish(ctx, amqp.EntityCategory, amqp.OpCreate, c.ID)
	return c, nil
}

func (f *Finance) UpdateCategory(ctx context.Context, id string, update store.CategoryUpdate) error {
	if err := f.store.UpdateCategory(ctx, id, update); err != nil {
		return err
	}
	f.publish(ctx, amqp.EntityCategory, amqp.OpUpdate, id)
	return nil
}

// DeleteCategory removes the category only. Transactions that reference it
// keep a dangling id and stay fully countable in every aggregate.
func (f *Finance) DeleteCategory(ctx context.Context, id string) error {
	if err := f.store.DeleteCategory(ctx, id); err != nil {
		return err
	}
	f.publish(ctx, amqp.EntityCategory, amqp.OpDelete, id)
	return nil
}

func (f *Finance) GetTransaction(ctx context.Context, id string) (*core.Transaction, error) {
	return f.store.GetTransaction(ctx, id)
}

func (f *Finance) CreateTransaction(ctx context.Context, fields store.TransactionFields) (*core.Transaction, error) {
	t, err := f.store.CreateTransaction(ctx, fields)
	if err != nil {
		return nil, err
	}
	f.publish(ctx, amqp.EntityTransaction, amqp.OpCreate, t.ID)
	return t, nil
}

func (f *Finance) UpdateTransaction(ctx context.Context, id string, update store.TransactionUpdate) error {
	if err := f.store.UpdateTransaction(ctx, id, update); err != nil {
		return err
	}
	f.publish(ctx, amqp.EntityTransaction, amqp.OpUpdate, id)
	return nil
}

func (f *Finance) DeleteTransaction(ctx context.Context, id string) error {
	if err := f.store.DeleteTransaction(ctx, id); err != nil {
		return err
	}
	f.publish(ctx, amqp.EntityTransaction, amqp.OpDelete, id)
	return nil
}

// fetch loads both collections concurrently and joins categories onto
// transactions.
func (f *Finance) fetch(ctx context.Context) ([]core.Transaction, []core.Category, error) {
	var (
		categories   []core.Category
		transactions []core.Transaction
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		categories, err = f.store.ListCategories(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		transactions, err = f.store.ListTransactions(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("fetch collections: %w", err)
	}

	return core.AttachCategories(transactions, categories), categories, nil
}

// ComputeSnapshot fetches fresh collections and derives the filtered view:
// period filter first, then kind filter, then the summary.
func (f *Finance) ComputeSnapshot(ctx context.Context, period core.Period, ref time.Time, filter core.KindFilter) (*Snapshot, error) {
	transactions, categories, err := f.fetch(ctx)
	if err != nil {
		return nil, err
	}

	visible := core.FilterByKind(core.FilterByPeriod(transactions, period, ref), filter)

	return &Snapshot{
		Summary:      core.Summarize(visible),
		Transactions: visible,
		Categories:   categories,
	}, nil
}

// TopExpenses returns the chart-legend feed: the limit largest expense
// categories by name within the period.
func (f *Finance) TopExpenses(ctx context.Context, period core.Period, ref time.Time, limit int) ([]core.CategoryTotal, error) {
	transactions, _, err := f.fetch(ctx)
	if err != nil {
		return nil, err
	}
	visible := core.FilterByPeriod(transactions, period, ref)
	return core.TopExpenseCategories(visible, limit), nil
}

// DailyGroups returns transactions bucketed by calendar day within the
// period, for the daily chart.
func (f *Finance) DailyGroups(ctx context.Context, period core.Period, ref time.Time) (map[string][]core.Transaction, error) {
	transactions, _, err := f.fetch(ctx)
	if err != nil {
		return nil, err
	}
	visible := core.FilterByPeriod(transactions, period, ref)
	return core.GroupByDate(visible), nil
}

// CategoryGroups returns per-category totals and counts within the period.
func (f *Finance) CategoryGroups(ctx context.Context, period core.Period, ref time.Time) (map[string]core.CategoryGroup, error) {
	transactions, _, err := f.fetch(ctx)
	if err != nil {
		return nil, err
	}
	visible := core.FilterByPeriod(transactions, period, ref)
	return core.GroupByCategory(visible), nil
}

// publish emits a change event. Publish failures are logged but never fail
// the request: the store write already succeeded.
func (f *Finance) publish(ctx context.Context, entity, op, id string) {
	if f.events == nil {
		return
	}
	if err := f.events.PublishChange(ctx, entity, op, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish change event",
			"error", err,
			"entity", entity,
			"op", op,
			"id", id)
	}
}

// Close releases the store and the event publisher.
func (f *Finance) Close() error {
	var errs []error

	if f.store != nil {
		if err := f.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("store: %w", err))
		}
	}
	if f.events != nil {
		if err := f.events.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close finance service: %v", errs)
	}
	return nil
}
