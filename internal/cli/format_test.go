package cli

import (
	"testing"
	"time"

	"github.com/moneta-cli/moneta/internal/model"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount   float64
		currency string
		want     string
	}{
		{0, "USD", "$0.00"},
		{1234.5, "USD", "$1,234.50"},
		{99.999, "USD", "$100.00"},
		{-42.25, "EUR", "-€42.25"},
		{10, "CHF", "CHF 10.00"},
		{7.5, "", "7.50"},
	}

	for _, tc := range tests {
		if got := FormatMoney(tc.amount, tc.currency); got != tc.want {
			t.Errorf("FormatMoney(%v, %q) = %q, want %q", tc.amount, tc.currency, got, tc.want)
		}
	}
}

func TestFormatSignedMoney(t *testing.T) {
	if got := FormatSignedMoney(50, model.TypeIncome, "USD"); got != "+$50.00" {
		t.Errorf("income = %q, want +$50.00", got)
	}
	if got := FormatSignedMoney(50, model.TypeExpense, "USD"); got != "-$50.00" {
		t.Errorf("expense = %q, want -$50.00", got)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-1234, "-1,234"},
	}

	for _, tc := range tests {
		if got := FormatNumber(tc.n); got != tc.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}

func TestFormatDate_Zero(t *testing.T) {
	if got := FormatDate(time.Time{}); got != "—" {
		t.Errorf("zero date = %q, want dash", got)
	}
}

func TestFormatRelativeDate(t *testing.T) {
	now := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		t    time.Time
		want string
	}{
		{now.Add(-2 * time.Hour), "today"},
		{now.AddDate(0, 0, -1), "yesterday"},
		{now.AddDate(0, 0, -3), "3d ago"},
		{now.AddDate(0, 0, -30), "Jul 21, 2025"},
	}

	for _, tc := range tests {
		if got := FormatRelativeDate(tc.t, now); got != tc.want {
			t.Errorf("FormatRelativeDate(%v) = %q, want %q", tc.t, got, tc.want)
		}
	}
}
