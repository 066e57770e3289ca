package core

import (
	"testing"
	"time"
)

func sampleTransactions() []Transaction {
	return []Transaction{
		{ID: "t1", CategoryID: "c1", Amount: 5000000, Kind: Income, Date: date(2024, 3, 1)},
		{ID: "t2", CategoryID: "c2", Amount: 1500000, Kind: Expense, Date: date(2024, 3, 5)},
		{ID: "t3", CategoryID: "c2", Amount: 200000, Kind: Expense, Date: date(2024, 2, 28)},
		{ID: "t4", CategoryID: "c3", Amount: 75000, Kind: Expense, Date: date(2024, 3, 31)},
	}
}

func TestFilterByPeriodMonth(t *testing.T) {
	ts := sampleTransactions()
	got := FilterByPeriod(ts, PeriodMonth, date(2024, 3, 15))

	if len(got) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(got))
	}
	for _, tx := range got {
		if tx.ID == "t3" {
			t.Fatal("2024-02-28 must be excluded from March")
		}
	}
	// Relative order preserved.
	if got[0].ID != "t1" || got[1].ID != "t2" || got[2].ID != "t4" {
		t.Fatalf("order not preserved: %v", ids(got))
	}
}

func TestFilterByPeriodAllIsIdentity(t *testing.T) {
	ts := sampleTransactions()
	got := FilterByPeriod(ts, PeriodAll, time.Now())
	if len(got) != len(ts) {
		t.Fatalf("expected identity, got %d of %d", len(got), len(ts))
	}
	for i := range ts {
		if got[i].ID != ts[i].ID {
			t.Fatalf("order changed at %d", i)
		}
	}
}

func TestFilterByPeriodBoundaryInclusion(t *testing.T) {
	midnight := Transaction{ID: "t", CategoryID: "c", Amount: 1, Kind: Expense, Date: date(2024, 3, 5)}
	got := FilterByPeriod([]Transaction{midnight}, PeriodDay, date(2024, 3, 5))
	if len(got) != 1 {
		t.Fatal("transaction at 00:00:00 of the day must be included")
	}
}

func TestFilterByKind(t *testing.T) {
	ts := sampleTransactions()

	if got := FilterByKind(ts, FilterAll); len(got) != len(ts) {
		t.Fatalf("all should be identity, got %d", len(got))
	}
	if got := FilterByKind(ts, FilterIncome); len(got) != 1 || got[0].ID != "t1" {
		t.Fatalf("income filter wrong: %v", ids(got))
	}
	if got := FilterByKind(ts, FilterExpense); len(got) != 3 {
		t.Fatalf("expense filter wrong: %v", ids(got))
	}
}

func TestFilterComposition(t *testing.T) {
	ts := sampleTransactions()
	ref := date(2024, 3, 15)

	got := FilterByKind(FilterByPeriod(ts, PeriodMonth, ref), FilterExpense)

	iv := PeriodMonth.Range(ref)
	for _, tx := range got {
		if !iv.Contains(tx.Date) {
			t.Fatalf("%s outside period interval", tx.ID)
		}
		if tx.Kind != Expense {
			t.Fatalf("%s has wrong kind %s", tx.ID, tx.Kind)
		}
	}
	if len(got) != 2 {
		t.Fatalf("expected t2 and t4, got %v", ids(got))
	}
}

func TestFiltersDoNotMutateInput(t *testing.T) {
	ts := sampleTransactions()
	want := ids(ts)

	_ = FilterByPeriod(ts, PeriodMonth, date(2024, 3, 15))
	_ = FilterByKind(ts, FilterExpense)

	for i, id := range ids(ts) {
		if id != want[i] {
			t.Fatal("input slice was mutated")
		}
	}
}

func ids(ts []Transaction) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.ID
	}
	return out
}
