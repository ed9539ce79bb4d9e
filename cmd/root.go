// Package cmd implements the moneta CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/moneta-cli/moneta/internal/api"
	"github.com/moneta-cli/moneta/internal/config"
	"github.com/moneta-cli/moneta/internal/credstore"
	"github.com/moneta-cli/moneta/internal/session"
	"github.com/moneta-cli/moneta/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagBaseURL string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "moneta",
	Short: "Personal finance from the terminal",
	Long:  "Track budgets, transactions, and spending alerts against your moneta account.",
	RunE:  runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "Backend API address (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")
}

// env bundles the wiring every command needs: config, HTTP client,
// credential store, and session manager.
type env struct {
	cfg     config.Config
	client  *api.Client
	creds   *credstore.Store
	session *session.Manager

	budgets *store.BudgetStore
	txs     *store.TransactionStore
	alerts  *store.AlertStore
}

// newEnv loads config and wires the data layer. The credential store lives
// next to the config file.
func newEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log := newLogger()

	baseURL := flagBaseURL
	if baseURL == "" {
		baseURL = config.BaseURL(cfg)
	}
	client := api.New(baseURL, log)

	creds, err := credstore.Open(config.CredentialsPath())
	if err != nil {
		return nil, err
	}

	return &env{
		cfg:     cfg,
		client:  client,
		creds:   creds,
		session: session.NewManager(client, creds, log),
		budgets: store.NewBudgetStore(client),
		txs:     store.NewTransactionStore(client),
		alerts:  store.NewAlertStore(client),
	}, nil
}

func (e *env) close() {
	_ = e.creds.Close()
}

// restore brings the persisted session up and fails the command if no one
// is signed in.
func (e *env) restore(ctx context.Context) error {
	e.session.Restore(ctx)
	if !e.session.IsAuthenticated() {
		return errors.New("not signed in — run `moneta login` first")
	}
	return nil
}

// newLogger builds the process logger. Commands talk to the user on stdout;
// diagnostics go to stderr, warnings and up unless --verbose.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)
	return log
}

func currency(cfg config.Config) string {
	if cfg.General.Currency == "" {
		return "USD"
	}
	return cfg.General.Currency
}

func printErr(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
