// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/moneta-cli/moneta/internal/model"
)

// currencySymbols maps the ISO codes the backend actually serves. Anything
// else falls back to "CODE amount".
var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"INR": "₹",
}

// FormatMoney formats an amount with its currency symbol and two decimals.
// e.g., 1234.5 -> "$1,234.50"
func FormatMoney(amount float64, currency string) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	whole := int64(amount)
	cents := int64((amount-float64(whole))*100 + 0.5)
	if cents >= 100 {
		whole++
		cents -= 100
	}
	value := fmt.Sprintf("%s.%02d", FormatNumber(whole), cents)

	if sym, ok := currencySymbols[currency]; ok {
		return sign + sym + value
	}
	if currency == "" {
		return sign + value
	}
	return fmt.Sprintf("%s%s %s", sign, currency, value)
}

// FormatSignedMoney renders an amount with an explicit +/- derived from the
// transaction type.
func FormatSignedMoney(amount float64, typ model.TransactionType, currency string) string {
	if typ == model.TypeExpense {
		return "-" + FormatMoney(amount, currency)
	}
	return "+" + FormatMoney(amount, currency)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-100 percentage with no decimals.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.0f%%", pct)
}

// FormatDate renders a transaction date. Zero dates (unparseable server
// timestamps) render as a dash rather than the epoch.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format("Jan 2, 2006")
}

// FormatRelativeDate renders short ages for recent dates, falling back to
// FormatDate beyond a week.
func FormatRelativeDate(t time.Time, now time.Time) string {
	if t.IsZero() {
		return "—"
	}

	days := int(now.Sub(t).Hours() / 24)
	switch {
	case days <= 0:
		return "today"
	case days == 1:
		return "yesterday"
	case days < 7:
		return fmt.Sprintf("%dd ago", days)
	default:
		return FormatDate(t)
	}
}
