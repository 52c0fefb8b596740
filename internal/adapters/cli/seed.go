package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/starfleet-go/internal/application/setup"
	"github.com/andrescamacho/starfleet-go/internal/infrastructure/database"
)

// NewSeedCommand creates the seed command
func NewSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Reset the demo account and its ships",
		Long: fmt.Sprintf(`Delete the demo account with all of its ships and sessions, then
create it again with a fresh fleet.

  Email:    %s
  Password: %s

Example:
  starfleet seed`, setup.SeedEmail, setup.SeedPassword),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			result, err := setup.NewSeeder(app.mediator, app.userRepo).Seed(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to seed database: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "✓ Database has been seeded 🌱")
			fmt.Fprintf(out, "  User:  %s\n", result.User.Email)
			for _, s := range result.Ships {
				fmt.Fprintf(out, "  Ship:  %s (%s)\n", s.Name(), s.ID())
			}
			return nil
		},
	}
}
