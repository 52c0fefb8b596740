package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/starfleet-go/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage Starfleet configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (SF_* prefix, plus DATABASE_URL)
2. Config file (config.yaml)
3. Default values

User preferences (default account) are stored in ~/.starfleet/config.json

Examples:
  starfleet config show
  starfleet config set-user --email pilot@example.com
  starfleet config clear-user`,
	}

	// Add subcommands
	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetUserCommand())
	cmd.AddCommand(newConfigClearUserCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long: `Display the current configuration settings.

Shows both system configuration and user preferences.

Example:
  starfleet config show`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			// Load system config
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load config: %v\n", err)
				fmt.Fprintln(out, "Using default configuration.")
				cfg = config.LoadConfigOrDefault(configPath)
			}

			// Load user config
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			userCfg, err := userConfigHandler.Load()
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load user config: %v\n\n", err)
				userCfg = &config.UserConfig{}
			}

			fmt.Fprintln(out, "Starfleet Configuration")
			fmt.Fprintln(out, "=======================")

			fmt.Fprintln(out, "User Preferences:")
			fmt.Fprintf(out, "  Config file:      %s\n", userConfigHandler.GetConfigPath())
			if userCfg.DefaultEmail != "" {
				fmt.Fprintf(out, "  Default User:     %s\n", userCfg.DefaultEmail)
			} else {
				fmt.Fprintf(out, "  Default User:     (not set)\n")
			}

			fmt.Fprintln(out, "\nDatabase:")
			fmt.Fprintf(out, "  Type:             %s\n", cfg.Database.Type)
			switch {
			case cfg.Database.URL != "":
				fmt.Fprintf(out, "  URL:              %s\n", maskPassword(cfg.Database.URL))
			case cfg.Database.Type == "sqlite":
				fmt.Fprintf(out, "  Path:             %s\n", cfg.Database.Path)
			default:
				fmt.Fprintf(out, "  Host:             %s\n", cfg.Database.Host)
				fmt.Fprintf(out, "  Port:             %d\n", cfg.Database.Port)
				fmt.Fprintf(out, "  Database:         %s\n", cfg.Database.Name)
				fmt.Fprintf(out, "  User:             %s\n", cfg.Database.User)
			}
			fmt.Fprintf(out, "  Max Connections:  %d\n", cfg.Database.Pool.MaxOpen)

			fmt.Fprintln(out, "\nHTTP Server:")
			fmt.Fprintf(out, "  Address:          %s\n", cfg.Server.Address)
			fmt.Fprintf(out, "  Secure Cookie:    %t\n", cfg.Server.CookieSecure)
			fmt.Fprintf(out, "  Login Rate Limit: %d/min (burst: %d)\n",
				cfg.Server.RateLimit.PerMinute, cfg.Server.RateLimit.Burst)

			fmt.Fprintln(out, "\nSessions:")
			fmt.Fprintf(out, "  TTL:              %s\n", cfg.Auth.SessionTTL)
			fmt.Fprintf(out, "  Cache Size:       %d\n", cfg.Auth.SessionCacheSize)
			fmt.Fprintf(out, "  Sweep Interval:   %s\n", cfg.Auth.SweepInterval)

			fmt.Fprintln(out, "\nStarfield:")
			fmt.Fprintf(out, "  Visible Width:    %d\n", cfg.Starfield.VisibleWidth)
			fmt.Fprintf(out, "  Tick Interval:    %s\n", cfg.Starfield.TickInterval)
			fmt.Fprintf(out, "  Dwell:            %s\n", cfg.Starfield.Dwell)
			if cfg.Starfield.CatalogPath != "" {
				fmt.Fprintf(out, "  Catalog:          %s\n", cfg.Starfield.CatalogPath)
			} else {
				fmt.Fprintf(out, "  Catalog:          (built-in)\n")
			}

			fmt.Fprintln(out, "\nDaemon:")
			fmt.Fprintf(out, "  Socket Path:      %s\n", cfg.Daemon.SocketPath)
			fmt.Fprintf(out, "  PID File:         %s\n", cfg.Daemon.PIDFile)

			fmt.Fprintln(out, "\nLogging:")
			fmt.Fprintf(out, "  Level:            %s\n", cfg.Logging.Level)
			fmt.Fprintf(out, "  Format:           %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "  Output:           %s\n", cfg.Logging.Output)

			fmt.Fprintln(out, "\nMetrics:")
			fmt.Fprintf(out, "  Enabled:          %t\n", cfg.Metrics.Enabled)
			fmt.Fprintf(out, "  Path:             %s\n", cfg.Metrics.Path)

			return nil
		},
	}
}

// newConfigSetUserCommand creates the config set-user subcommand
func newConfigSetUserCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-user",
		Short: "Set the default account",
		Long: `Set the account ship commands act as when --email is not given.

Example:
  starfleet config set-user --email pilot@example.com`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if userEmail == "" {
				return fmt.Errorf("--email is required")
			}

			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			if err := userConfigHandler.SetDefaultEmail(userEmail); err != nil {
				return fmt.Errorf("failed to set default user: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "✓ Default user set successfully")
			fmt.Fprintf(cmd.OutOrStdout(), "  Email: %s\n", userEmail)
			return nil
		},
	}
}

// newConfigClearUserCommand creates the config clear-user subcommand
func newConfigClearUserCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-user",
		Short: "Clear the default account",
		Long: `Remove the default account setting.

Example:
  starfleet config clear-user`,
		RunE: func(cmd *cobra.Command, args []string) error {
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			if err := userConfigHandler.ClearDefaultEmail(); err != nil {
				return fmt.Errorf("failed to clear default user: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "✓ Default user cleared")
			return nil
		},
	}
}

// maskPassword hides the password of a connection URL
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, hasPassword := u.User.Password(); hasPassword {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}
