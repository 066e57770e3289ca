package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

const (
	FilterAll     KindFilter = "all"
	FilterIncome  KindFilter = "income"
	FilterExpense KindFilter = "expense"
)

type (
	// Kind is the income/expense polarity of a category or transaction.
	Kind string

	// KindFilter widens Kind with "all" for list filtering.
	KindFilter string

	Category struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		Kind      Kind      `json:"kind"`
		Icon      string    `json:"icon"`
		Color     string    `json:"color"`
		CreatedAt time.Time `json:"createdAt"`
	}

	Transaction struct {
		ID          string    `json:"id"`
		CategoryID  string    `json:"categoryId"`
		Category    *Category `json:"category,omitempty"` // derived, never persisted
		Amount      int64     `json:"amount"`
		Kind        Kind      `json:"kind"`
		Description string    `json:"description"`
		Date        time.Time `json:"date"`
		CreatedAt   time.Time `json:"createdAt"`
	}

	// FinanceSummary is the derived view over a transaction set.
	FinanceSummary struct {
		TotalIncome      int64 `json:"totalIncome"`
		TotalExpense     int64 `json:"totalExpense"`
		Balance          int64 `json:"balance"`
		TransactionCount int   `json:"transactionCount"`
	}
)

var (
	ErrInvalidAmount = errors.New("amount must be positive")
	ErrEmptyName     = errors.New("empty category name")
	ErrEmptyCategory = errors.New("empty category id")
	ErrZeroDate      = errors.New("date cannot be zero")
	ErrUnknownKind   = errors.New("unknown kind")
	ErrUnknownPeriod = errors.New("unknown period")
)

// ParseKind validates an income/expense string at the boundary.
// Unknown values are rejected rather than silently defaulted.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case Income, Expense:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// ParseKindFilter accepts all/income/expense. The empty string means all.
func ParseKindFilter(s string) (KindFilter, error) {
	if s == "" {
		return FilterAll, nil
	}
	switch KindFilter(s) {
	case FilterAll, FilterIncome, FilterExpense:
		return KindFilter(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

func (k Kind) Valid() bool {
	return k == Income || k == Expense
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if !c.Kind.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownKind, string(c.Kind))
	}
	return nil
}

func (t Transaction) Validate() error {
	if t.Amount <= 0 {
		return ErrInvalidAmount
	}
	if !t.Kind.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownKind, string(t.Kind))
	}
	if t.Date.IsZero() {
		return ErrZeroDate
	}
	if strings.TrimSpace(t.CategoryID) == "" {
		return ErrEmptyCategory
	}
	return nil
}

// AttachCategories resolves each transaction's CategoryID against the given
// category set and returns a fresh slice with the Category pointer filled in.
// A transaction whose category was deleted keeps a nil Category; that is not
// an error. Neither input is mutated.
func AttachCategories(transactions []Transaction, categories []Category) []Transaction {
	byID := make(map[string]*Category, len(categories))
	for i := range categories {
		byID[categories[i].ID] = &categories[i]
	}

	out := make([]Transaction, len(transactions))
	for i, t := range transactions {
		t.Category = byID[t.CategoryID]
		out[i] = t
	}
	return out
}
