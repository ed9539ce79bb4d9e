package model

import (
	"math"
	"testing"
)

func tx(amount float64, typ TransactionType) Transaction {
	return Transaction{Amount: amount, Type: typ}
}

func TestComputeStats(t *testing.T) {
	txs := []Transaction{
		tx(100, TypeIncome),
		tx(40, TypeExpense),
		tx(10, TypeExpense),
	}

	s := ComputeStats(txs)
	if s.TotalIncome != 100 {
		t.Errorf("TotalIncome = %.2f, want 100", s.TotalIncome)
	}
	if s.TotalExpense != 50 {
		t.Errorf("TotalExpense = %.2f, want 50", s.TotalExpense)
	}
	if s.Balance != 50 {
		t.Errorf("Balance = %.2f, want 50", s.Balance)
	}
}

func TestComputeStats_Empty(t *testing.T) {
	s := ComputeStats(nil)
	if s.TotalIncome != 0 || s.TotalExpense != 0 || s.Balance != 0 {
		t.Errorf("empty collection yielded %+v, want all zero", s)
	}
}

func TestComputeStats_BalanceIdentity(t *testing.T) {
	txs := []Transaction{
		tx(1200, TypeIncome),
		tx(3.5, TypeIncome),
		tx(899.99, TypeExpense),
		tx(0.01, TypeExpense),
		tx(42, TypeExpense),
	}

	s := ComputeStats(txs)
	if s.TotalIncome < 0 || s.TotalExpense < 0 {
		t.Fatalf("totals must be non-negative, got income %.2f expense %.2f", s.TotalIncome, s.TotalExpense)
	}
	if math.Abs(s.Balance-(s.TotalIncome-s.TotalExpense)) > 1e-9 {
		t.Fatalf("Balance = %.4f, want TotalIncome-TotalExpense = %.4f", s.Balance, s.TotalIncome-s.TotalExpense)
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name          string
		limit, spent  float64
		wantPercent   float64
		wantOverspend bool
		wantRemaining float64
	}{
		{"under budget", 200, 50, 25, false, 150},
		{"at limit", 200, 200, 100, false, 0},
		{"overspent clamps to 100", 200, 250, 100, true, 0},
		{"zero limit", 0, 50, 0, true, 0},
		{"zero limit zero spent", 0, 0, 0, false, 0},
		{"nothing spent", 300, 0, 0, false, 300},
		{"negative limit treated as zero", -10, 5, 0, true, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := Progress(Budget{Limit: tc.limit, Spent: tc.spent})
			if p.Percent != tc.wantPercent {
				t.Errorf("Percent = %.2f, want %.2f", p.Percent, tc.wantPercent)
			}
			if p.Overspend != tc.wantOverspend {
				t.Errorf("Overspend = %v, want %v", p.Overspend, tc.wantOverspend)
			}
			if p.Remaining != tc.wantRemaining {
				t.Errorf("Remaining = %.2f, want %.2f", p.Remaining, tc.wantRemaining)
			}
		})
	}
}

func TestProgress_PercentAlwaysInRange(t *testing.T) {
	for _, limit := range []float64{0, 0.01, 1, 100, 1e9} {
		for _, spent := range []float64{0, 0.5, 100, 250, 1e12} {
			p := Progress(Budget{Limit: limit, Spent: spent})
			if p.Percent < 0 || p.Percent > 100 {
				t.Fatalf("Percent out of range for limit=%.2f spent=%.2f: %.2f", limit, spent, p.Percent)
			}
			if math.IsNaN(p.Percent) || math.IsInf(p.Percent, 0) {
				t.Fatalf("Percent not finite for limit=%.2f spent=%.2f", limit, spent)
			}
			if p.Overspend != (spent > limit) {
				t.Fatalf("Overspend mismatch for limit=%.2f spent=%.2f", limit, spent)
			}
		}
	}
}
