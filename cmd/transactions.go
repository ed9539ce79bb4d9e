package cmd

import (
	"fmt"
	"time"

	"github.com/moneta-cli/moneta/internal/api"
	"github.com/moneta-cli/moneta/internal/cli"
	"github.com/moneta-cli/moneta/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagTxDescription string
	flagTxAmount      float64
	flagTxType        string
	flagTxCategory    string
	flagTxDate        string
	flagTxNotes       string
	flagTxLimit       int
)

var txCmd = &cobra.Command{
	Use:     "tx",
	Aliases: []string{"transactions"},
	Short:   "List transactions, newest first",
	RunE:    runTxList,
}

var txAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a transaction",
	RunE:  runTxAdd,
}

var txEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Update a transaction",
	Args:  cobra.ExactArgs(1),
	RunE:  runTxEdit,
}

var txRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a transaction",
	Args:  cobra.ExactArgs(1),
	RunE:  runTxRm,
}

func init() {
	txCmd.Flags().IntVarP(&flagTxLimit, "limit", "n", 0, "Show at most N transactions (0 = all)")

	for _, c := range []*cobra.Command{txAddCmd, txEditCmd} {
		c.Flags().StringVar(&flagTxDescription, "desc", "", "Description")
		c.Flags().Float64Var(&flagTxAmount, "amount", 0, "Amount (positive)")
		c.Flags().StringVar(&flagTxType, "type", "expense", "income or expense")
		c.Flags().StringVar(&flagTxCategory, "category", "", "Category")
		c.Flags().StringVar(&flagTxDate, "date", "", "Date (YYYY-MM-DD, default today)")
		c.Flags().StringVar(&flagTxNotes, "notes", "", "Free-form notes")
	}
	_ = txAddCmd.MarkFlagRequired("desc")
	_ = txAddCmd.MarkFlagRequired("amount")
	_ = txAddCmd.MarkFlagRequired("category")

	txCmd.AddCommand(txAddCmd, txEditCmd, txRmCmd)
	rootCmd.AddCommand(txCmd)
}

func txInput() (api.TransactionInput, error) {
	if flagTxType != string(model.TypeIncome) && flagTxType != string(model.TypeExpense) {
		return api.TransactionInput{}, fmt.Errorf("invalid type %q: want income or expense", flagTxType)
	}

	date := time.Now()
	if flagTxDate != "" {
		parsed, err := time.Parse("2006-01-02", flagTxDate)
		if err != nil {
			return api.TransactionInput{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", flagTxDate)
		}
		date = parsed
	}

	return api.TransactionInput{
		Description: flagTxDescription,
		Amount:      flagTxAmount,
		Type:        flagTxType,
		Category:    flagTxCategory,
		Date:        date,
		Notes:       flagTxNotes,
	}, nil
}

func runTxList(cmd *cobra.Command, _ []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	defer e.close()

	if err := e.restore(cmd.Context()); err != nil {
		return err
	}

	e.txs.Fetch(cmd.Context())
	if err := e.txs.Err(); err != nil {
		return err
	}

	printTransactions(e, flagTxLimit)
	return nil
}

func runTxAdd(cmd *cobra.Command, _ []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	defer e.close()

	if err := e.restore(cmd.Context()); err != nil {
		return err
	}

	in, err := txInput()
	if err != nil {
		return err
	}
	created, err := e.txs.Create(cmd.Context(), in)
	if err != nil {
		return err
	}
	fmt.Printf("  Recorded %s (%s)\n", created.Description, created.ID)

	e.txs.Refetch(cmd.Context())
	printTransactions(e, flagTxLimit)
	return nil
}

func runTxEdit(cmd *cobra.Command, args []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	defer e.close()

	if err := e.restore(cmd.Context()); err != nil {
		return err
	}

	in, err := txInput()
	if err != nil {
		return err
	}
	updated, err := e.txs.Update(cmd.Context(), args[0], in)
	if err != nil {
		return err
	}
	fmt.Printf("  Updated %s\n", updated.ID)

	e.txs.Refetch(cmd.Context())
	printTransactions(e, flagTxLimit)
	return nil
}

func runTxRm(cmd *cobra.Command, args []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	defer e.close()

	if err := e.restore(cmd.Context()); err != nil {
		return err
	}

	if err := e.txs.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Println("  Deleted.")

	e.txs.Refetch(cmd.Context())
	printTransactions(e, flagTxLimit)
	return nil
}

func printTransactions(e *env, limit int) {
	txs := e.txs.Transactions()
	if len(txs) == 0 {
		fmt.Println("  No transactions yet. Record one with `moneta tx add`.")
		return
	}
	if limit > 0 && len(txs) > limit {
		txs = txs[:limit]
	}

	cur := currency(e.cfg)
	now := time.Now()
	t := cli.Table{
		Headers: []string{"Date", "Description", "Category", "Amount"},
	}
	for _, x := range txs {
		amount := cli.FormatSignedMoney(x.Amount, x.Type, cur)
		if x.Type == model.TypeIncome {
			amount = cli.IncomeStyle.Render(amount)
		} else {
			amount = cli.ExpenseStyle.Render(amount)
		}
		t.Rows = append(t.Rows, []string{
			cli.FormatRelativeDate(x.Date, now),
			x.Description,
			x.Category,
			amount,
		})
	}
	fmt.Print(cli.RenderTable(t))

	stats := e.txs.Stats()
	fmt.Printf("  Income %s   Expenses %s   Balance %s\n",
		cli.IncomeStyle.Render(cli.FormatMoney(stats.TotalIncome, cur)),
		cli.ExpenseStyle.Render(cli.FormatMoney(stats.TotalExpense, cur)),
		cli.FormatMoney(stats.Balance, cur),
	)
}
