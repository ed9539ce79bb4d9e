package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestLayoutRowSumsToTotal(t *testing.T) {
	for _, tc := range []struct {
		total, n int
	}{
		{90, 3},
		{91, 3},
		{92, 3},
		{100, 4},
		{7, 2},
	} {
		widths := LayoutRow(tc.total, tc.n)
		if len(widths) != tc.n {
			t.Fatalf("LayoutRow(%d, %d) returned %d widths", tc.total, tc.n, len(widths))
		}
		sum := 0
		for _, w := range widths {
			sum += w
		}
		if sum != tc.total {
			t.Errorf("LayoutRow(%d, %d) sums to %d", tc.total, tc.n, sum)
		}
	}
}

func TestLayoutRowZeroItems(t *testing.T) {
	if got := LayoutRow(100, 0); got != nil {
		t.Errorf("expected nil for n=0, got %v", got)
	}
}

func TestTabIdxByKey(t *testing.T) {
	for i, tab := range Tabs {
		if got := TabIdxByKey(tab.Key); got != i {
			t.Errorf("TabIdxByKey(%q) = %d, want %d", tab.Key, got, i)
		}
	}
	if got := TabIdxByKey('z'); got != -1 {
		t.Errorf("TabIdxByKey('z') = %d, want -1", got)
	}
}

func TestBudgetBarOverspendMarker(t *testing.T) {
	with := BudgetBar("Food", 1.0, true, 10, 20)
	without := BudgetBar("Food", 0.4, false, 10, 20)

	if !strings.Contains(with, "over") {
		t.Error("overspend bar should carry the over marker")
	}
	if strings.Contains(without, "over") {
		t.Error("in-budget bar should not carry the over marker")
	}
}

func TestMetricCardRowWidth(t *testing.T) {
	row := MetricCardRow([]struct{ Label, Value, Subtext string }{
		{Label: "Balance", Value: "$50.00"},
		{Label: "Income", Value: "$100.00"},
		{Label: "Expenses", Value: "$50.00"},
	}, 90)

	for _, line := range strings.Split(row, "\n") {
		if w := lipgloss.Width(line); w > 90 {
			t.Errorf("card row line wider than layout: %d > 90", w)
		}
	}
}
