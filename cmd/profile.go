package cmd

import (
	"fmt"

	"github.com/moneta-cli/moneta/internal/api"

	"github.com/spf13/cobra"
)

var (
	flagProfileName  string
	flagProfileEmail string
)

var profileCmd = &cobra.Command{
	Use:     "profile",
	Aliases: []string{"whoami"},
	Short:   "Show or update your profile",
	Long:    "Without flags, shows the signed-in account. With --name or --email, applies a partial update.",
	RunE:    runProfile,
}

func init() {
	profileCmd.Flags().StringVar(&flagProfileName, "name", "", "New display name")
	profileCmd.Flags().StringVar(&flagProfileEmail, "email", "", "New email address")
	rootCmd.AddCommand(profileCmd)
}

func runProfile(cmd *cobra.Command, _ []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	defer e.close()

	if err := e.restore(cmd.Context()); err != nil {
		return err
	}

	if flagProfileName != "" || flagProfileEmail != "" {
		var patch api.ProfilePatch
		if flagProfileName != "" {
			patch.Name = &flagProfileName
		}
		if flagProfileEmail != "" {
			patch.Email = &flagProfileEmail
		}
		if err := e.session.UpdateProfile(cmd.Context(), patch); err != nil {
			return err
		}
		fmt.Println("  Profile updated.")
	}

	user, _ := e.session.User()
	fmt.Printf("  %s <%s>\n", user.Name, user.Email)
	return nil
}
