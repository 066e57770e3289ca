package core

import "testing"

func TestSummarize(t *testing.T) {
	ts := []Transaction{
		{Amount: 5000000, Kind: Income, Date: date(2024, 3, 1)},
		{Amount: 1500000, Kind: Expense, Date: date(2024, 3, 5)},
	}

	got := Summarize(ts)

	want := FinanceSummary{
		TotalIncome:      5000000,
		TotalExpense:     1500000,
		Balance:          3500000,
		TransactionCount: 2,
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if got := Summarize(nil); got != (FinanceSummary{}) {
		t.Fatalf("empty input must yield zero summary, got %+v", got)
	}
}

func TestSummarizeBalanceIdentity(t *testing.T) {
	ts := sampleTransactions()
	s := Summarize(ts)
	if s.Balance != s.TotalIncome-s.TotalExpense {
		t.Fatalf("balance identity violated: %+v", s)
	}
}

func TestSummarizeIsPure(t *testing.T) {
	ts := sampleTransactions()
	first := Summarize(ts)
	second := Summarize(ts)
	if first != second {
		t.Fatalf("repeat call differs: %+v vs %+v", first, second)
	}
	if ts[0].Amount != 5000000 {
		t.Fatal("input was mutated")
	}
}

func TestSummarizeOrderIndependent(t *testing.T) {
	ts := sampleTransactions()
	reversed := make([]Transaction, len(ts))
	for i, tx := range ts {
		reversed[len(ts)-1-i] = tx
	}
	if Summarize(ts) != Summarize(reversed) {
		t.Fatal("summary depends on input order")
	}
}
