// Package tui provides the interactive Bubble Tea dashboard for moneta.
package tui

import (
	"context"
	"time"

	"github.com/moneta-cli/moneta/internal/config"
	"github.com/moneta-cli/moneta/internal/session"
	"github.com/moneta-cli/moneta/internal/store"
	"github.com/moneta-cli/moneta/internal/tui/components"
	"github.com/moneta-cli/moneta/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// restoredMsg is sent when the startup session restore finishes.
type restoredMsg struct{}

// fetchedMsg is sent when one store's fetch completes. The store already
// holds the result (or its captured error) — this just triggers a redraw.
type fetchedMsg struct{}

// authDoneMsg is sent when a login or register attempt finishes.
type authDoneMsg struct{ err error }

const (
	minTerminalWidth = 70
	maxContentWidth  = 120
	fetchTimeout     = 30 * time.Second
)

// App is the root Bubble Tea model.
type App struct {
	cfg     config.Config
	session *session.Manager
	budgets *store.BudgetStore
	txs     *store.TransactionStore
	alerts  *store.AlertStore

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	txOffset  int // transactions tab scroll position

	// Lifecycle state
	restoring   bool
	fetching    int // outstanding store fetches
	lastRefresh time.Time

	// Auth form (shown while unauthenticated)
	auth *authState

	spinner spinner.Model
}

// NewApp creates the dashboard model. Restore and the initial fetches run
// from Init.
func NewApp(cfg config.Config, sess *session.Manager, budgets *store.BudgetStore, txs *store.TransactionStore, alerts *store.AlertStore) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	return App{
		cfg:       cfg,
		session:   sess,
		budgets:   budgets,
		txs:       txs,
		alerts:    alerts,
		restoring: true,
		spinner:   sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.restoreCmd())
}

func (a App) restoreCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		a.session.Restore(ctx)
		return restoredMsg{}
	}
}

// fetchAllCmd kicks off the three collection fetches in parallel. Each
// resolves independently — there is no ordering guarantee between them.
func (a *App) fetchAllCmd() tea.Cmd {
	a.fetching = 3
	fetch := func(f func(context.Context)) tea.Cmd {
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
			defer cancel()
			f(ctx)
			return fetchedMsg{}
		}
	}
	return tea.Batch(
		fetch(a.budgets.Fetch),
		fetch(a.txs.Fetch),
		fetch(a.alerts.Fetch),
	)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case spinner.TickMsg:
		if !a.restoring && a.fetching == 0 && (a.auth == nil || !a.auth.submitting) {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case restoredMsg:
		a.restoring = false
		if a.session.IsAuthenticated() {
			return a, a.fetchAllCmd()
		}
		a.auth = newAuthState(false)
		return a, a.auth.form.Init()

	case fetchedMsg:
		if a.fetching > 0 {
			a.fetching--
		}
		if a.fetching == 0 {
			a.lastRefresh = time.Now()
		}
		return a, nil

	case authDoneMsg:
		return a.handleAuthDone(msg)

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	if a.auth != nil {
		return a.updateAuthForm(msg)
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The auth form owns the keyboard while visible, except for quit.
	if a.auth != nil {
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "ctrl+r":
			a.auth = newAuthState(!a.auth.register)
			return a, a.auth.form.Init()
		}
		return a.updateAuthForm(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit

	case "?":
		a.showHelp = !a.showHelp
		return a, nil

	case "r":
		if a.fetching > 0 {
			return a, nil // refresh already running
		}
		return a, tea.Batch(a.spinner.Tick, a.fetchAllCmd())

	case "left", "h":
		a.activeTab = (a.activeTab + len(components.Tabs) - 1) % len(components.Tabs)
		a.txOffset = 0
		return a, nil

	case "right", "l":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		a.txOffset = 0
		return a, nil

	case "j", "down":
		if a.activeTab == tabTransactions {
			a.txOffset++
			a.clampTxOffset()
		}
		return a, nil

	case "k", "up":
		if a.activeTab == tabTransactions && a.txOffset > 0 {
			a.txOffset--
		}
		return a, nil
	}

	if len(msg.Runes) == 1 {
		if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
			a.activeTab = idx
			a.txOffset = 0
		}
	}
	return a, nil
}

func (a *App) clampTxOffset() {
	max := len(a.txs.Transactions()) - a.visibleTxRows()
	if max < 0 {
		max = 0
	}
	if a.txOffset > max {
		a.txOffset = max
	}
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return "\n  Terminal too narrow — need at least 70 columns.\n"
	}
	if a.restoring {
		return "\n  " + a.spinner.View() + " Restoring session...\n"
	}
	if a.auth != nil {
		return a.viewAuth()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewMain() string {
	t := theme.Active
	cw := a.contentWidth()

	var header string
	if user, ok := a.session.User(); ok {
		header = lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true).Render(" moneta") +
			lipgloss.NewStyle().Foreground(t.TextMuted).Render("  "+user.Email)
	}

	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverviewTab(cw)
	case tabTransactions:
		content = a.renderTransactionsTab(cw)
	case tabBudgets:
		content = a.renderBudgetsTab(cw)
	case tabAlerts:
		content = a.renderAlertsTab(cw)
	}

	right := ""
	switch {
	case a.fetching > 0:
		right = a.spinner.View() + " refreshing "
	case !a.lastRefresh.IsZero():
		right = "updated " + a.lastRefresh.Format("15:04:05") + " "
	}
	status := components.RenderStatusBar(cw, " [r]efresh  [?]help  [q]uit", right)

	return header + "\n" +
		components.RenderTabBar(a.activeTab) + "\n\n" +
		content + "\n" +
		status
}

func (a App) viewHelp() string {
	t := theme.Active
	key := lipgloss.NewStyle().Foreground(t.Accent).Render
	text := lipgloss.NewStyle().Foreground(t.TextMuted).Render

	return "\n" +
		"  " + key("o/t/b/a") + text("   switch tab") + "\n" +
		"  " + key("←/→") + text("       previous/next tab") + "\n" +
		"  " + key("j/k") + text("       scroll transactions") + "\n" +
		"  " + key("r") + text("         refetch all collections") + "\n" +
		"  " + key("?") + text("         toggle this help") + "\n" +
		"  " + key("q") + text("         quit") + "\n"
}
