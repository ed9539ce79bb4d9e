package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var flagLoginEmail string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to your account",
	RunE:  runLogin,
}

func init() {
	loginCmd.Flags().StringVarP(&flagLoginEmail, "email", "e", "", "Account email")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	defer e.close()

	email := strings.TrimSpace(flagLoginEmail)
	var password string

	var fields []huh.Field
	if email == "" {
		fields = append(fields, huh.NewInput().Title("Email").Value(&email))
	}
	fields = append(fields, huh.NewInput().
		Title("Password").
		EchoMode(huh.EchoModePassword).
		Value(&password))

	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		return err
	}

	if err := e.session.Login(cmd.Context(), email, password); err != nil {
		return err
	}

	user, _ := e.session.User()
	fmt.Printf("  Signed in as %s <%s>\n", user.Name, user.Email)
	return nil
}
