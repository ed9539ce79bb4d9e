package model

// Stats holds the aggregate view over a transaction collection.
type Stats struct {
	TotalIncome  float64
	TotalExpense float64
	Balance      float64
}

// ComputeStats recomputes income/expense totals and balance from scratch.
// No state survives a collection replacement — callers rerun this whenever
// the underlying slice changes.
func ComputeStats(txs []Transaction) Stats {
	var s Stats
	for _, t := range txs {
		switch t.Type {
		case TypeIncome:
			s.TotalIncome += t.Amount
		case TypeExpense:
			s.TotalExpense += t.Amount
		}
	}
	s.Balance = s.TotalIncome - s.TotalExpense
	return s
}

// BudgetProgress is the derived view of one budget's consumption.
type BudgetProgress struct {
	Percent   float64 // clamped to [0, 100]
	Overspend bool
	Remaining float64 // never negative
}

// Progress derives spent-vs-limit metrics for a budget. A zero or negative
// limit yields Percent 0, never a division error.
func Progress(b Budget) BudgetProgress {
	p := BudgetProgress{
		Overspend: b.Spent > b.Limit,
	}

	if b.Limit > 0 {
		p.Percent = b.Spent / b.Limit * 100
	}
	if p.Percent > 100 {
		p.Percent = 100
	}
	if p.Percent < 0 {
		p.Percent = 0
	}

	if remaining := b.Limit - b.Spent; remaining > 0 {
		p.Remaining = remaining
	}

	return p
}
