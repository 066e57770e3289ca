package core

// Summarize reduces a transaction set to its totals in a single pass.
// Amounts are whole currency units, so the accumulators are exact.
// An empty input yields the zero summary, never an error.
func Summarize(transactions []Transaction) FinanceSummary {
	var s FinanceSummary
	for _, t := range transactions {
		switch t.Kind {
		case Income:
			s.TotalIncome += t.Amount
		case Expense:
			s.TotalExpense += t.Amount
		}
	}
	s.Balance = s.TotalIncome - s.TotalExpense
	s.TransactionCount = len(transactions)
	return s
}
