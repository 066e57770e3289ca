package core

import (
	"errors"
	"testing"
	"time"
)

func TestParseKind(t *testing.T) {
	cases := []struct {
		in   string
		want Kind
		ok   bool
	}{
		{"income", Income, true},
		{"expense", Expense, true},
		{"", "", false},
		{"transfer", "", false},
		{"Income", "", false},
	}
	for i, tc := range cases {
		got, err := ParseKind(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("case %d: got (%q, %v), want %q", i, got, err, tc.want)
		}
		if !tc.ok && !errors.Is(err, ErrUnknownKind) {
			t.Fatalf("case %d: expected ErrUnknownKind, got %v", i, err)
		}
	}
}

func TestParseKindFilter(t *testing.T) {
	if f, err := ParseKindFilter(""); err != nil || f != FilterAll {
		t.Fatalf("empty string should default to all, got (%q, %v)", f, err)
	}
	if _, err := ParseKindFilter("bogus"); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestCategoryValidate(t *testing.T) {
	good := Category{Name: "Gaji", Kind: Income}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		c    Category
		want error
	}{
		{Category{Name: "", Kind: Income}, ErrEmptyName},
		{Category{Name: "   ", Kind: Expense}, ErrEmptyName},
		{Category{Name: "x", Kind: "other"}, ErrUnknownKind},
	}
	for i, tc := range cases {
		if err := tc.c.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("case %d: got %v, want %v", i, err, tc.want)
		}
	}
}

func TestTransactionValidate(t *testing.T) {
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	good := Transaction{CategoryID: "c1", Amount: 5000, Kind: Expense, Date: date}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		tx   Transaction
		want error
	}{
		{Transaction{CategoryID: "c1", Amount: 0, Kind: Expense, Date: date}, ErrInvalidAmount},
		{Transaction{CategoryID: "c1", Amount: -5, Kind: Expense, Date: date}, ErrInvalidAmount},
		{Transaction{CategoryID: "c1", Amount: 5, Kind: "x", Date: date}, ErrUnknownKind},
		{Transaction{CategoryID: "c1", Amount: 5, Kind: Income}, ErrZeroDate},
		{Transaction{CategoryID: "", Amount: 5, Kind: Income, Date: date}, ErrEmptyCategory},
	}
	for i, tc := range cases {
		if err := tc.tx.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("case %d: got %v, want %v", i, err, tc.want)
		}
	}
}

func TestAttachCategories(t *testing.T) {
	cats := []Category{
		{ID: "c1", Name: "Makan & Minum", Kind: Expense},
		{ID: "c2", Name: "Gaji", Kind: Income},
	}
	txs := []Transaction{
		{ID: "t1", CategoryID: "c2", Amount: 100, Kind: Income},
		{ID: "t2", CategoryID: "gone", Amount: 50, Kind: Expense},
	}

	got := AttachCategories(txs, cats)

	if got[0].Category == nil || got[0].Category.Name != "Gaji" {
		t.Fatalf("expected resolved category, got %+v", got[0].Category)
	}
	if got[1].Category != nil {
		t.Fatalf("dangling reference should stay nil, got %+v", got[1].Category)
	}
	// Join must not touch the input slice.
	if txs[0].Category != nil {
		t.Fatal("input slice was mutated")
	}
}
