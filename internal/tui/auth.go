package tui

import (
	"context"
	"strings"

	"github.com/moneta-cli/moneta/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// authState holds the sign-in/register form. It lives behind a pointer so
// the form's value bindings survive Bubble Tea's model copies.
type authState struct {
	register   bool
	submitting bool
	errMsg     string
	form       *huh.Form

	name     string
	email    string
	password string
	confirm  string
}

func newAuthState(register bool) *authState {
	s := &authState{register: register}

	var fields []huh.Field
	if register {
		fields = append(fields,
			huh.NewInput().
				Title("Name").
				Value(&s.name).
				Validate(notBlank("name")),
		)
	}
	fields = append(fields,
		huh.NewInput().
			Title("Email").
			Value(&s.email).
			Validate(notBlank("email")),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&s.password).
			Validate(notBlank("password")),
	)
	if register {
		fields = append(fields,
			huh.NewInput().
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				Value(&s.confirm),
		)
	}

	s.form = huh.NewForm(huh.NewGroup(fields...)).
		WithShowHelp(false).
		WithTheme(huh.ThemeBase())
	return s
}

func notBlank(field string) func(string) error {
	return func(v string) error {
		if strings.TrimSpace(v) == "" {
			return &blankFieldError{field}
		}
		return nil
	}
}

type blankFieldError struct{ field string }

func (e *blankFieldError) Error() string { return e.field + " is required" }

func (a App) updateAuthForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.auth.submitting {
		return a, nil
	}

	model, cmd := a.auth.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		a.auth.form = f
	}

	switch a.auth.form.State {
	case huh.StateAborted:
		return a, tea.Quit

	case huh.StateCompleted:
		if a.auth.register && a.auth.password != a.auth.confirm {
			a.auth = newAuthState(true)
			a.auth.errMsg = "passwords do not match"
			return a, a.auth.form.Init()
		}
		a.auth.submitting = true
		a.auth.errMsg = ""
		return a, tea.Batch(a.spinner.Tick, a.submitAuthCmd())
	}

	return a, cmd
}

func (a App) submitAuthCmd() tea.Cmd {
	s := a.auth
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		var err error
		if s.register {
			err = a.session.Register(ctx, s.name, s.email, s.password)
		} else {
			err = a.session.Login(ctx, s.email, s.password)
		}
		return authDoneMsg{err: err}
	}
}

func (a App) handleAuthDone(msg authDoneMsg) (tea.Model, tea.Cmd) {
	if a.auth == nil {
		return a, nil
	}
	if msg.err != nil {
		wasRegister := a.auth.register
		a.auth = newAuthState(wasRegister)
		a.auth.errMsg = msg.err.Error()
		return a, a.auth.form.Init()
	}

	a.auth = nil
	return a, tea.Batch(a.spinner.Tick, a.fetchAllCmd())
}

func (a App) viewAuth() string {
	t := theme.Active

	title := "Sign in to moneta"
	hint := "ctrl+r: create an account instead"
	if a.auth.register {
		title = "Create a moneta account"
		hint = "ctrl+r: back to sign in"
	}

	titleStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	errStyle := lipgloss.NewStyle().Foreground(t.Red)

	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render(title) + "\n\n")

	if a.auth.submitting {
		b.WriteString("  " + a.spinner.View() + " Signing in...\n")
		return b.String()
	}

	b.WriteString(a.auth.form.View() + "\n")
	if a.auth.errMsg != "" {
		b.WriteString("  " + errStyle.Render(a.auth.errMsg) + "\n")
	}
	b.WriteString("  " + hintStyle.Render(hint) + "\n")
	return b.String()
}
