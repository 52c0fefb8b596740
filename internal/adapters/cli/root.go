package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	socketPath string
	userEmail  string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "starfleet",
		Short: "Starfleet - ships, owners and a starfield to cruise",
		Long: `Starfleet runs the ships web application and lets you manage your fleet
from the terminal. Ship commands talk to a running server over its Unix socket.

Examples:
  starfleet serve
  starfleet migrate
  starfleet seed
  starfleet user create --email pilot@example.com --password hunter22
  starfleet config set-user --email pilot@example.com
  starfleet ship list
  starfleet ship create "Banjo Fett"
  starfleet ship watch <ship-id>
  starfleet health`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: search ./config.yaml, ./configs, /etc/starfleet)")
	rootCmd.PersistentFlags().StringVar(&socketPath, "socket", "",
		"Path to daemon Unix socket (default: daemon.socket_path from config)")
	rootCmd.PersistentFlags().StringVar(&userEmail, "email", "",
		"Account email to act as (default: set with 'starfleet config set-user')")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")

	// Add command groups
	rootCmd.AddCommand(NewServeCommand())
	rootCmd.AddCommand(NewMigrateCommand())
	rootCmd.AddCommand(NewSeedCommand())
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewUserCommand())
	rootCmd.AddCommand(NewShipCommand())
	rootCmd.AddCommand(NewHealthCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
