package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	daemongrpc "github.com/andrescamacho/starfleet-go/internal/adapters/grpc"
)

// NewHealthCommand creates the health command
func NewHealthCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check daemon health status",
		Long:  `Verify that the server is running and its daemon socket is responsive.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			path := socketPath
			if path == "" {
				path = cfg.Daemon.SocketPath
			}

			client, err := daemongrpc.NewDaemonClient(path)
			if err != nil {
				return fmt.Errorf("failed to connect to daemon: %w", err)
			}
			defer client.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			defer cancel()

			status, err := client.HealthCheck(ctx)
			if err != nil {
				return fmt.Errorf("health check failed: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "✓ Daemon is healthy")
			fmt.Fprintf(cmd.OutOrStdout(), "  Status:  %s\n", status)
			fmt.Fprintf(cmd.OutOrStdout(), "  Socket:  %s\n", path)

			return nil
		},
	}

	return cmd
}
