// Package sqlite implements the store ports on an embedded SQLite database
// with migrations applied at open time.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"duit/internal/core"
	"duit/internal/store"
)

type Store struct {
	db *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) ListCategories(ctx context.Context) ([]core.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, kind, icon, color, created_at
		 FROM categories ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []core.Category
	for rows.Next() {
		var c core.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Kind, &c.Icon, &c.Color, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) GetCategory(ctx context.Context, id string) (*core.Category, error) {
	var c core.Category
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, kind, icon, color, created_at FROM categories WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.Kind, &c.Icon, &c.Color, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

func (s *Store) CreateCategory(ctx context.Context, fields store.CategoryFields) (*core.Category, error) {
	c := core.Category{
		ID:        store.NewID(),
		Name:      fields.Name,
		Kind:      fields.Kind,
		Icon:      fields.Icon,
		Color:     fields.Color,
		CreatedAt: time.Now(),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO categories (id, name, kind, icon, color, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, string(c.Kind), c.Icon, c.Color, c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}
	return &c, nil
}

func (s *Store) UpdateCategory(ctx context.Context, id string, update store.CategoryUpdate) error {
	var (
		sets []string
		args []any
	)
	if update.Name != nil {
		sets, args = append(sets, "name = ?"), append(args, *update.Name)
	}
	if update.Kind != nil {
		sets, args = append(sets, "kind = ?"), append(args, string(*update.Kind))
	}
	if update.Icon != nil {
		sets, args = append(sets, "icon = ?"), append(args, *update.Icon)
	}
	if update.Color != nil {
		sets, args = append(sets, "color = ?"), append(args, *update.Color)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)

	res, err := s.db.ExecContext(ctx,
		`UPDATE categories SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return requireRow(res)
}

func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	// No cascade: transactions keep their dangling category id.
	res, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return requireRow(res)
}

func (s *Store) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, category_id, amount, kind, description, date, created_at
		 FROM transactions ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var t core.Transaction
		if err := rows.Scan(&t.ID, &t.CategoryID, &t.Amount, &t.Kind, &t.Description, &t.Date, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) GetTransaction(ctx context.Context, id string) (*core.Transaction, error) {
	var t core.Transaction
	err := s.db.QueryRowContext(ctx,
		`SELECT id, category_id, amount, kind, description, date, created_at
		 FROM transactions WHERE id = ?`, id).
		Scan(&t.ID, &t.CategoryID, &t.Amount, &t.Kind, &t.Description, &t.Date, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return &t, nil
}

func (s *Store) CreateTransaction(ctx context.Context, fields store.TransactionFields) (*core.Transaction, error) {
	t := core.Transaction{
		ID:          store.NewID(),
		CategoryID:  fields.CategoryID,
		Amount:      fields.Amount,
		Kind:        fields.Kind,
		Description: fields.Description,
		Date:        fields.Date,
		CreatedAt:   time.Now(),
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (id, category_id, amount, kind, description, date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.CategoryID, t.Amount, string(t.Kind), t.Description, t.Date, t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}
	return &t, nil
}

func (s *Store) UpdateTransaction(ctx context.Context, id string, update store.TransactionUpdate) error {
	var (
		sets []string
		args []any
	)
	if update.CategoryID != nil {
		sets, args = append(sets, "category_id = ?"), append(args, *update.CategoryID)
	}
	if update.Amount != nil {
		sets, args = append(sets, "amount = ?"), append(args, *update.Amount)
	}
	if update.Kind != nil {
		sets, args = append(sets, "kind = ?"), append(args, string(*update.Kind))
	}
	if update.Description != nil {
		sets, args = append(sets, "description = ?"), append(args, *update.Description)
	}
	if update.Date != nil {
		sets, args = append(sets, "date = ?"), append(args, *update.Date)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)

	res, err := s.db.ExecContext(ctx,
		`UPDATE transactions SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	return requireRow(res)
}

func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
