package cmd

import (
	"fmt"

	"github.com/moneta-cli/moneta/internal/api"
	"github.com/moneta-cli/moneta/internal/cli"
	"github.com/moneta-cli/moneta/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagBudgetCategory string
	flagBudgetLimit    float64
	flagBudgetPeriod   string
)

var budgetsCmd = &cobra.Command{
	Use:   "budgets",
	Short: "List budgets and their progress",
	RunE:  runBudgetsList,
}

var budgetsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a budget",
	RunE:  runBudgetsAdd,
}

var budgetsEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Update a budget",
	Args:  cobra.ExactArgs(1),
	RunE:  runBudgetsEdit,
}

var budgetsRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a budget",
	Args:  cobra.ExactArgs(1),
	RunE:  runBudgetsRm,
}

func init() {
	for _, c := range []*cobra.Command{budgetsAddCmd, budgetsEditCmd} {
		c.Flags().StringVar(&flagBudgetCategory, "category", "", "Budget category")
		c.Flags().Float64Var(&flagBudgetLimit, "limit", 0, "Spending limit")
		c.Flags().StringVar(&flagBudgetPeriod, "period", "monthly", "Budget period")
	}
	_ = budgetsAddCmd.MarkFlagRequired("category")
	_ = budgetsAddCmd.MarkFlagRequired("limit")

	budgetsCmd.AddCommand(budgetsAddCmd, budgetsEditCmd, budgetsRmCmd)
	rootCmd.AddCommand(budgetsCmd)
}

func runBudgetsList(cmd *cobra.Command, _ []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	defer e.close()

	if err := e.restore(cmd.Context()); err != nil {
		return err
	}

	e.budgets.Fetch(cmd.Context())
	if err := e.budgets.Err(); err != nil {
		return err
	}

	printBudgets(e)
	return nil
}

func runBudgetsAdd(cmd *cobra.Command, _ []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	defer e.close()

	if err := e.restore(cmd.Context()); err != nil {
		return err
	}

	in := api.BudgetInput{
		Category: flagBudgetCategory,
		Limit:    flagBudgetLimit,
		Period:   flagBudgetPeriod,
	}
	created, err := e.budgets.Create(cmd.Context(), in)
	if err != nil {
		return err
	}
	fmt.Printf("  Created budget %s (%s)\n", created.Category, created.ID)

	// The store never patches locally — refetch for the authoritative list.
	e.budgets.Refetch(cmd.Context())
	printBudgets(e)
	return nil
}

func runBudgetsEdit(cmd *cobra.Command, args []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	defer e.close()

	if err := e.restore(cmd.Context()); err != nil {
		return err
	}

	in := api.BudgetInput{
		Category: flagBudgetCategory,
		Limit:    flagBudgetLimit,
		Period:   flagBudgetPeriod,
	}
	updated, err := e.budgets.Update(cmd.Context(), args[0], in)
	if err != nil {
		return err
	}
	fmt.Printf("  Updated budget %s\n", updated.ID)

	e.budgets.Refetch(cmd.Context())
	printBudgets(e)
	return nil
}

func runBudgetsRm(cmd *cobra.Command, args []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	defer e.close()

	if err := e.restore(cmd.Context()); err != nil {
		return err
	}

	if err := e.budgets.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Println("  Deleted.")

	e.budgets.Refetch(cmd.Context())
	printBudgets(e)
	return nil
}

func printBudgets(e *env) {
	budgets := e.budgets.Budgets()
	if len(budgets) == 0 {
		fmt.Println("  No budgets yet. Create one with `moneta budgets add`.")
		return
	}

	cur := currency(e.cfg)
	t := cli.Table{
		Headers: []string{"Category", "Period", "Spent", "Limit", "Left", "Progress"},
	}
	for _, b := range budgets {
		p := model.Progress(b)
		progress := cli.RenderBudgetBar(p.Percent, 12) + " " + cli.FormatPercent(p.Percent)
		if p.Overspend {
			progress += " " + cli.WarnStyle.Render("over")
		}
		t.Rows = append(t.Rows, []string{
			b.Category,
			b.Period,
			cli.FormatMoney(b.Spent, cur),
			cli.FormatMoney(b.Limit, cur),
			cli.FormatMoney(p.Remaining, cur),
			progress,
		})
	}
	fmt.Print(cli.RenderTable(t))
}
