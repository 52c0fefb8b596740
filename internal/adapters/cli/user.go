package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	authCommands "github.com/andrescamacho/starfleet-go/internal/application/auth/commands"
	"github.com/andrescamacho/starfleet-go/internal/application/common"
	"github.com/andrescamacho/starfleet-go/internal/infrastructure/database"
)

// NewUserCommand creates the user command with subcommands
func NewUserCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts",
		Long: `Manage accounts directly in the database.

Examples:
  starfleet user create --email pilot@example.com --password hunter22`,
	}

	cmd.AddCommand(newUserCreateCommand())

	return cmd
}

func newUserCreateCommand() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account",
		Long: `Create an account with an email and a password of at least 8 characters.

Example:
  starfleet user create --email pilot@example.com --password hunter22`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if userEmail == "" {
				return fmt.Errorf("--email is required")
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer database.Close(db)

			app, err := newLocalApplication(db, cfg)
			if err != nil {
				return err
			}

			resp, err := common.SendTyped[*authCommands.AuthResponse](cmd.Context(), app.mediator, &authCommands.RegisterUserCommand{
				Email:    userEmail,
				Password: password,
			})
			if err != nil {
				return fmt.Errorf("failed to create user: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "✓ User created")
			fmt.Fprintf(cmd.OutOrStdout(), "  ID:     %s\n", resp.User.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "  Email:  %s\n", resp.User.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Account password (at least 8 characters)")
	cmd.MarkFlagRequired("password")

	return cmd
}
