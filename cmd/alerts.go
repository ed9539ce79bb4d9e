package cmd

import (
	"fmt"

	"github.com/moneta-cli/moneta/internal/cli"

	"github.com/spf13/cobra"
)

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Show server-computed spending alerts",
	RunE:  runAlerts,
}

func init() {
	rootCmd.AddCommand(alertsCmd)
}

func runAlerts(cmd *cobra.Command, _ []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	defer e.close()

	if err := e.restore(cmd.Context()); err != nil {
		return err
	}

	e.alerts.Fetch(cmd.Context())
	if err := e.alerts.Err(); err != nil {
		return err
	}

	alerts := e.alerts.Alerts()
	if len(alerts) == 0 {
		fmt.Println("  No spending alerts. Nice.")
		return nil
	}

	for _, a := range alerts {
		fmt.Printf("  %s %s\n", cli.WarnStyle.Render("!"), a.Message)
	}
	return nil
}
