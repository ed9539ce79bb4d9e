package cmd

import (
	"github.com/moneta-cli/moneta/internal/tui"
	"github.com/moneta-cli/moneta/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:     "dash",
	Aliases: []string{"tui", "dashboard"},
	Short:   "Open the interactive dashboard",
	RunE:    runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	defer e.close()

	theme.SetActive(e.cfg.Appearance.Theme)

	// Force truecolor so themed hex colors survive limited TERM settings.
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(e.cfg, e.session, e.budgets, e.txs, e.alerts)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
