package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/moneta-cli/moneta/internal/cli"
	"github.com/moneta-cli/moneta/internal/model"
	"github.com/moneta-cli/moneta/internal/tui/components"
	"github.com/moneta-cli/moneta/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const (
	tabOverview = iota
	tabTransactions
	tabBudgets
	tabAlerts
)

const budgetBarWidth = 30

func (a App) currency() string {
	if a.cfg.General.Currency != "" {
		return a.cfg.General.Currency
	}
	return "USD"
}

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	cur := a.currency()
	stats := a.txs.Stats()

	cards := components.MetricCardRow([]struct{ Label, Value, Subtext string }{
		{Label: "Balance", Value: cli.FormatMoney(stats.Balance, cur)},
		{Label: "Income", Value: cli.FormatMoney(stats.TotalIncome, cur)},
		{Label: "Expenses", Value: cli.FormatMoney(stats.TotalExpense, cur)},
	}, cw)

	var b strings.Builder
	b.WriteString(cards + "\n")

	if alerts := a.alerts.Alerts(); len(alerts) > 0 {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange)
		var lines []string
		for _, al := range alerts {
			lines = append(lines, warnStyle.Render("! "+al.Message))
		}
		b.WriteString(components.ContentCard("Alerts", strings.Join(lines, "\n"), cw) + "\n")
	}

	if budgets := a.budgets.Budgets(); len(budgets) > 0 {
		b.WriteString(components.ContentCard("Budgets", a.budgetBars(budgets, cw), cw) + "\n")
	}

	txs := a.txs.Transactions()
	limit := a.cfg.General.RecentLimit
	if limit <= 0 {
		limit = 10
	}
	if len(txs) > limit {
		txs = txs[:limit]
	}
	if len(txs) > 0 {
		b.WriteString(components.ContentCard("Recent transactions", a.transactionLines(txs, cw-6), cw))
	}

	b.WriteString(a.storeErrors())
	return b.String()
}

func (a App) renderTransactionsTab(cw int) string {
	t := theme.Active
	txs := a.txs.Transactions()
	if len(txs) == 0 {
		return a.emptyState("No transactions yet.") + a.storeErrors()
	}

	rows := a.visibleTxRows()
	end := a.txOffset + rows
	if end > len(txs) {
		end = len(txs)
	}
	start := a.txOffset
	if start > end {
		start = end
	}

	body := a.transactionLines(txs[start:end], cw-6)
	if len(txs) > rows {
		body += "\n" + lipgloss.NewStyle().Foreground(t.TextDim).
			Render(fmt.Sprintf("%d-%d of %d  (j/k to scroll)", start+1, end, len(txs)))
	}

	stats := a.txs.Stats()
	cur := a.currency()
	footer := lipgloss.NewStyle().Foreground(t.TextMuted).Render(
		"Income " + cli.FormatMoney(stats.TotalIncome, cur) +
			"   Expenses " + cli.FormatMoney(stats.TotalExpense, cur) +
			"   Balance " + cli.FormatMoney(stats.Balance, cur))

	return components.ContentCard("Transactions", body+"\n\n"+footer, cw) + a.storeErrors()
}

func (a App) renderBudgetsTab(cw int) string {
	budgets := a.budgets.Budgets()
	if len(budgets) == 0 {
		return a.emptyState("No budgets yet.") + a.storeErrors()
	}

	t := theme.Active
	cur := a.currency()
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	var lines []string
	for _, bg := range budgets {
		p := model.Progress(bg)
		lines = append(lines,
			components.BudgetBar(bg.Category, p.Percent/100, p.Overspend, 16, budgetBarWidth),
			mutedStyle.Render(fmt.Sprintf("%16s %s of %s, %s left",
				"", cli.FormatMoney(bg.Spent, cur), cli.FormatMoney(bg.Limit, cur),
				cli.FormatMoney(p.Remaining, cur))),
			"")
	}

	return components.ContentCard("Budgets", strings.Join(lines, "\n"), cw) + a.storeErrors()
}

func (a App) renderAlertsTab(cw int) string {
	alerts := a.alerts.Alerts()
	if len(alerts) == 0 {
		return a.emptyState("No spending alerts. Nice.") + a.storeErrors()
	}

	t := theme.Active
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange)

	var lines []string
	for _, al := range alerts {
		lines = append(lines, warnStyle.Render("! "+al.Message))
	}
	return components.ContentCard("Spending alerts", strings.Join(lines, "\n"), cw) + a.storeErrors()
}

// budgetBars renders a compact bar per budget for the overview card.
func (a App) budgetBars(budgets []model.Budget, cw int) string {
	var lines []string
	for _, bg := range budgets {
		p := model.Progress(bg)
		lines = append(lines, components.BudgetBar(bg.Category, p.Percent/100, p.Overspend, 16, budgetBarWidth))
	}
	return strings.Join(lines, "\n")
}

// transactionLines renders one line per transaction: date, description,
// category, signed amount.
func (a App) transactionLines(txs []model.Transaction, width int) string {
	t := theme.Active
	cur := a.currency()
	now := time.Now()

	dateStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	descStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	catStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	incomeStyle := lipgloss.NewStyle().Foreground(t.Green)
	expenseStyle := lipgloss.NewStyle().Foreground(t.Red)

	var lines []string
	for _, tx := range txs {
		amount := cli.FormatSignedMoney(tx.Amount, tx.Type, cur)
		amountStyled := expenseStyle.Render(amount)
		if tx.Type == model.TypeIncome {
			amountStyled = incomeStyle.Render(amount)
		}

		left := dateStyle.Render(fmt.Sprintf("%-10s", cli.FormatRelativeDate(tx.Date, now))) +
			" " + descStyle.Render(tx.Description)
		if tx.Category != "" {
			left += " " + catStyle.Render("("+tx.Category+")")
		}

		pad := width - lipgloss.Width(left) - lipgloss.Width(amountStyled)
		if pad < 1 {
			pad = 1
		}
		lines = append(lines, left+strings.Repeat(" ", pad)+amountStyled)
	}
	return strings.Join(lines, "\n")
}

// visibleTxRows is how many transaction lines fit in the transactions tab.
func (a App) visibleTxRows() int {
	// header + tabbar + card chrome + footer + status bar
	rows := a.height - 12
	if rows < 5 {
		rows = 5
	}
	return rows
}

func (a App) emptyState(text string) string {
	return "  " + lipgloss.NewStyle().Foreground(theme.Active.TextDim).Render(text)
}

// storeErrors surfaces captured fetch errors without tearing down the view.
func (a App) storeErrors() string {
	t := theme.Active
	errStyle := lipgloss.NewStyle().Foreground(t.Red)

	var lines []string
	for _, e := range []struct {
		name string
		err  error
	}{
		{"budgets", a.budgets.Err()},
		{"transactions", a.txs.Err()},
		{"alerts", a.alerts.Err()},
	} {
		if e.err != nil {
			lines = append(lines, errStyle.Render("  "+e.name+": "+e.err.Error()))
		}
	}
	if len(lines) == 0 {
		return ""
	}
	return "\n" + strings.Join(lines, "\n")
}
