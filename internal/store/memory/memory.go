// Package memory provides an in-memory Store used as the default backend
// and by tests. All reads return copies; list order matches the persistent
// backends (categories newest first, transactions by date descending).
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"duit/internal/core"
	"duit/internal/store"
)

type Store struct {
	mu           sync.Mutex
	categories   map[string]core.Category
	transactions map[string]core.Transaction
	seq          int // breaks createdAt ties in list ordering
	order        map[string]int
}

func New() *Store {
	return &Store{
		categories:   make(map[string]core.Category),
		transactions: make(map[string]core.Transaction),
		order:        make(map[string]int),
	}
}

func (s *Store) ListCategories(_ context.Context) ([]core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]core.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return s.order[out[i].ID] > s.order[out[j].ID]
	})
	return out, nil
}

func (s *Store) GetCategory(_ context.Context, id string) (*core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.categories[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &c, nil
}

func (s *Store) CreateCategory(_ context.Context, fields store.CategoryFields) (*core.Category, error) {
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

	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.order[c.ID] = s.seq
	s.categories[c.ID] = c
	return &c, nil
}

func (s *Store) UpdateCategory(_ context.Context, id string, update store.CategoryUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.categories[id]
	if !ok {
		return store.ErrNotFound
	}
	if update.Name != nil {
		c.Name = *update.Name
	}
	if update.Kind != nil {
		c.Kind = *update.Kind
	}
	if update.Icon != nil {
		c.Icon = *update.Icon
	}
	if update.Color != nil {
		c.Color = *update.Color
	}
	if err := c.Validate(); err != nil {
		return err
	}
	s.categories[id] = c
	return nil
}

func (s *Store) DeleteCategory(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[id]; !ok {
		return store.ErrNotFound
	}
	// No cascade: transactions keep their dangling category id.
	delete(s.categories, id)
	return nil
}

func (s *Store) ListTransactions(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]core.Transaction, 0, len(s.transactions))
	for _, t := range s.transactions {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return s.order[out[i].ID] > s.order[out[j].ID]
	})
	return out, nil
}

func (s *Store) GetTransaction(_ context.Context, id string) (*core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.transactions[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &t, nil
}

func (s *Store) CreateTransaction(_ context.Context, fields store.TransactionFields) (*core.Transaction, error) {
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

	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.order[t.ID] = s.seq
	s.transactions[t.ID] = t
	return &t, nil
}

func (s *Store) UpdateTransaction(_ context.Context, id string, update store.TransactionUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.transactions[id]
	if !ok {
		return store.ErrNotFound
	}
	if update.CategoryID != nil {
		t.CategoryID = *update.CategoryID
	}
	if update.Amount != nil {
		t.Amount = *update.Amount
	}
	if update.Kind != nil {
		t.Kind = *update.Kind
	}
	if update.Description != nil {
		t.Description = *update.Description
	}
	if update.Date != nil {
		t.Date = *update.Date
	}
	if err := t.Validate(); err != nil {
		return err
	}
	s.transactions[id] = t
	return nil
}

func (s *Store) DeleteTransaction(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.transactions[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.transactions, id)
	return nil
}

func (s *Store) Close() error { return nil }
