package core

import "time"

// FilterByPeriod returns the transactions whose Date falls inside the
// interval resolved for (period, ref). Both interval endpoints are included.
// PeriodAll is the identity: the input slice is returned unchanged.
// Relative order is always preserved and the input is never mutated.
func FilterByPeriod(transactions []Transaction, period Period, ref time.Time) []Transaction {
	if period == PeriodAll {
		return transactions
	}

	iv := period.Range(ref)
	out := make([]Transaction, 0, len(transactions))
	for _, t := range transactions {
		if iv.Contains(t.Date) {
			out = append(out, t)
		}
	}
	return out
}

// FilterByKind keeps only transactions of the given kind. FilterAll is the
// identity. Relative order is preserved.
func FilterByKind(transactions []Transaction, filter KindFilter) []Transaction {
	if filter == FilterAll {
		return transactions
	}

	out := make([]Transaction, 0, len(transactions))
	for _, t := range transactions {
		if string(t.Kind) == string(filter) {
			out = append(out, t)
		}
	}
	return out
}
