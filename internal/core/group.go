package core

import "sort"

// FallbackCategoryName labels transactions whose category no longer resolves.
const FallbackCategoryName = "Unknown"

// DateKey is the calendar-day grouping key format (sortable).
const DateKey = "2006-01-02"

type (
	// CategoryGroup accumulates amount and count for one category id.
	// Category is a best-effort snapshot from the first transaction seen for
	// the id; it stays nil when the reference is dangling.
	CategoryGroup struct {
		Category *Category `json:"category,omitempty"`
		Total    int64     `json:"total"`
		Count    int       `json:"count"`
	}

	// CategoryTotal is one chart-legend entry: a display name and its total.
	CategoryTotal struct {
		Name  string `json:"name"`
		Total int64  `json:"total"`
	}
)

// GroupByDate buckets transactions by calendar day of their Date field.
// Within a bucket the input order is preserved; grouping itself never sorts.
func GroupByDate(transactions []Transaction) map[string][]Transaction {
	groups := make(map[string][]Transaction)
	for _, t := range transactions {
		key := t.Date.Format(DateKey)
		groups[key] = append(groups[key], t)
	}
	return groups
}

// GroupByCategory accumulates per-category totals and counts, keyed by
// CategoryID. Transactions with a dangling category id are still counted
// under their id with a nil Category snapshot.
func GroupByCategory(transactions []Transaction) map[string]CategoryGroup {
	groups := make(map[string]CategoryGroup)
	for _, t := range transactions {
		g, ok := groups[t.CategoryID]
		if !ok {
			g = CategoryGroup{Category: t.Category}
		}
		g.Total += t.Amount
		g.Count++
		groups[t.CategoryID] = g
	}
	return groups
}

// TopExpenseCategories aggregates expense transactions by category display
// name (categories sharing a name are merged, matching the chart-legend
// contract), sorts descending by total and truncates to limit. Ties keep the
// order names were first encountered in the input.
func TopExpenseCategories(transactions []Transaction, limit int) []CategoryTotal {
	totals := make(map[string]int64)
	var order []string

	for _, t := range transactions {
		if t.Kind != Expense {
			continue
		}
		name := FallbackCategoryName
		if t.Category != nil {
			name = t.Category.Name
		}
		if _, seen := totals[name]; !seen {
			order = append(order, name)
		}
		totals[name] += t.Amount
	}

	out := make([]CategoryTotal, 0, len(order))
	for _, name := range order {
		out = append(out, CategoryTotal{Name: name, Total: totals[name]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total > out[j].Total
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
