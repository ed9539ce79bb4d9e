package cmd

import (
	"fmt"
	"sync"
	"time"

	"github.com/moneta-cli/moneta/internal/cli"
	"github.com/moneta-cli/moneta/internal/model"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Dashboard overview: balance, budgets, recent activity",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	defer e.close()

	if err := e.restore(cmd.Context()); err != nil {
		return err
	}

	// The three collections fetch in parallel with no ordering guarantee;
	// each store captures its own failure independently.
	ctx := cmd.Context()
	var wg sync.WaitGroup
	wg.Add(3)
	go func() { defer wg.Done(); e.txs.Fetch(ctx) }()
	go func() { defer wg.Done(); e.budgets.Fetch(ctx) }()
	go func() { defer wg.Done(); e.alerts.Fetch(ctx) }()
	wg.Wait()

	user, _ := e.session.User()
	cur := currency(e.cfg)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("moneta — %s", user.Name)))
	fmt.Println()

	if err := e.txs.Err(); err != nil {
		printErr("  transactions unavailable: %v", err)
	} else {
		stats := e.txs.Stats()
		fmt.Printf("  Balance  %s\n", cli.FormatMoney(stats.Balance, cur))
		fmt.Printf("  Income   %s\n", cli.IncomeStyle.Render(cli.FormatMoney(stats.TotalIncome, cur)))
		fmt.Printf("  Expenses %s\n", cli.ExpenseStyle.Render(cli.FormatMoney(stats.TotalExpense, cur)))
		fmt.Println()
	}

	if err := e.alerts.Err(); err != nil {
		printErr("  alerts unavailable: %v", err)
	} else {
		for _, a := range e.alerts.Alerts() {
			fmt.Printf("  %s %s\n", cli.WarnStyle.Render("!"), a.Message)
		}
		if len(e.alerts.Alerts()) > 0 {
			fmt.Println()
		}
	}

	if err := e.budgets.Err(); err != nil {
		printErr("  budgets unavailable: %v", err)
	} else if budgets := e.budgets.Budgets(); len(budgets) > 0 {
		fmt.Println(cli.MutedStyle.Render("  Budgets"))
		for _, b := range budgets {
			p := model.Progress(b)
			line := fmt.Sprintf("  %-14s %s %4s  %s of %s",
				b.Category,
				cli.RenderBudgetBar(p.Percent, 16),
				cli.FormatPercent(p.Percent),
				cli.FormatMoney(b.Spent, cur),
				cli.FormatMoney(b.Limit, cur),
			)
			if p.Overspend {
				line += cli.WarnStyle.Render("  over budget")
			}
			fmt.Println(line)
		}
		fmt.Println()
	}

	if err := e.txs.Err(); err == nil {
		if txs := e.txs.Transactions(); len(txs) > 0 {
			limit := e.cfg.General.RecentLimit
			if limit <= 0 {
				limit = 10
			}
			if len(txs) > limit {
				txs = txs[:limit]
			}
			now := time.Now()
			fmt.Println(cli.MutedStyle.Render("  Recent"))
			for _, x := range txs {
				amount := cli.FormatSignedMoney(x.Amount, x.Type, cur)
				if x.Type == model.TypeIncome {
					amount = cli.IncomeStyle.Render(amount)
				} else {
					amount = cli.ExpenseStyle.Render(amount)
				}
				fmt.Printf("  %-10s %-24s %s\n", cli.FormatRelativeDate(x.Date, now), x.Description, amount)
			}
			fmt.Println()
		}
	}

	return nil
}
