// Package store defines the persistence ports for categories and
// transactions. Backends assign server-side ids and creation timestamps;
// the derived Category association is never persisted.
package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"duit/internal/core"
)

// ErrNotFound marks a requested id that does not exist in the store.
var ErrNotFound = errors.New("not found")

type (
	// CategoryFields carries the caller-supplied fields for a create.
	CategoryFields struct {
		Name  string    `json:"name"`
		Kind  core.Kind `json:"kind"`
		Icon  string    `json:"icon"`
		Color string    `json:"color"`
	}

	// CategoryUpdate is a partial update; nil fields are left untouched.
	CategoryUpdate struct {
		Name  *string    `json:"name,omitempty"`
		Kind  *core.Kind `json:"kind,omitempty"`
		Icon  *string    `json:"icon,omitempty"`
		Color *string    `json:"color,omitempty"`
	}

	TransactionFields struct {
		CategoryID  string    `json:"categoryId"`
		Amount      int64     `json:"amount"`
		Kind        core.Kind `json:"kind"`
		Description string    `json:"description"`
		Date        time.Time `json:"date"`
	}

	TransactionUpdate struct {
		CategoryID  *string    `json:"categoryId,omitempty"`
		Amount      *int64     `json:"amount,omitempty"`
		Kind        *core.Kind `json:"kind,omitempty"`
		Description *string    `json:"description,omitempty"`
		Date        *time.Time `json:"date,omitempty"`
	}
)

// Ports for the persistence adapters.
type (
	CategoryStore interface {
		// ListCategories returns all categories, newest first.
		ListCategories(ctx context.Context) ([]core.Category, error)
		GetCategory(ctx context.Context, id string) (*core.Category, error)
		CreateCategory(ctx context.Context, fields CategoryFields) (*core.Category, error)
		UpdateCategory(ctx context.Context, id string, update CategoryUpdate) error
		// DeleteCategory removes the category. Referencing transactions keep
		// their dangling id; there is no cascade.
		DeleteCategory(ctx context.Context, id string) error
	}

	TransactionStore interface {
		// ListTransactions returns all transactions, most recent date first.
		ListTransactions(ctx context.Context) ([]core.Transaction, error)
		GetTransaction(ctx context.Context, id string) (*core.Transaction, error)
		CreateTransaction(ctx context.Context, fields TransactionFields) (*core.Transaction, error)
		UpdateTransaction(ctx context.Context, id string, update TransactionUpdate) error
		DeleteTransaction(ctx context.Context, id string) error
	}

	// Store is the unified persistence interface the service layer consumes.
	Store interface {
		CategoryStore
		TransactionStore
		Close() error
	}
)

// NewID generates an opaque 24-hex-char identifier for backends without a
// native id scheme, matching the shape of document-store object ids.
func NewID() string {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing means the process is in a bad state; fall back
		// to a timestamp so ids stay unique enough for a single store.
		return hex.EncodeToString([]byte(time.Now().Format("060102150405.000")))[:24]
	}
	return hex.EncodeToString(b)
}
