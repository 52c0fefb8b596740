package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	daemongrpc "github.com/andrescamacho/starfleet-go/internal/adapters/grpc"
	"github.com/andrescamacho/starfleet-go/internal/adapters/terminal"
	"github.com/andrescamacho/starfleet-go/internal/domain/starfield"
)

// NewShipCommand creates the ship command with subcommands
func NewShipCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ship",
		Short: "Manage ships",
		Long: `Manage your ships through a running server.

Ship commands act as the account given by --email, or the default set
with 'starfleet config set-user'.

Examples:
  starfleet ship list
  starfleet ship create "Banjo Fett"
  starfleet ship delete <ship-id>
  starfleet ship watch <ship-id>`,
	}

	// Add subcommands
	cmd.AddCommand(newShipListCommand())
	cmd.AddCommand(newShipCreateCommand())
	cmd.AddCommand(newShipDeleteCommand())
	cmd.AddCommand(newShipWatchCommand())

	return cmd
}

// newShipListCommand creates the ship list subcommand
func newShipListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your ships",
		Long: `List your ships, most recently updated first.

Example:
  starfleet ship list --email pilot@example.com`,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := openDaemonSession()
			if err != nil {
				return err
			}
			defer session.Close()

			ctx, cancel := session.requestContext(cmd.Context())
			defer cancel()

			ships, err := session.client.ListShips(ctx, session.email)
			if err != nil {
				return fmt.Errorf("failed to list ships: %w", err)
			}

			printShips(cmd.OutOrStdout(), ships)
			return nil
		},
	}
}

func printShips(out io.Writer, ships []*daemongrpc.ShipInfo) {
	if len(ships) == 0 {
		fmt.Fprintln(out, "No ships yet")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tUPDATED")
	fmt.Fprintln(w, "--\t----\t-------")
	for _, s := range ships {
		fmt.Fprintf(w, "%s\t%s\t%s\n", s.ID, s.Name, s.UpdatedAt.Local().Format(time.DateTime))
	}
	w.Flush()
}

// newShipCreateCommand creates the ship create subcommand
func newShipCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create a ship",
		Args:  cobra.ExactArgs(1),
		Long: `Create a ship. Names are trimmed and must be 1 to 100 characters.

Example:
  starfleet ship create "Banjo Fett"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := openDaemonSession()
			if err != nil {
				return err
			}
			defer session.Close()

			ctx, cancel := session.requestContext(cmd.Context())
			defer cancel()

			s, err := session.client.CreateShip(ctx, session.email, args[0])
			if err != nil {
				return fmt.Errorf("failed to create ship: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "✓ Ship created")
			fmt.Fprintf(cmd.OutOrStdout(), "  ID:    %s\n", s.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "  Name:  %s\n", s.Name)
			return nil
		},
	}
}

// newShipDeleteCommand creates the ship delete subcommand
func newShipDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <ship-id>",
		Short: "Delete a ship",
		Args:  cobra.ExactArgs(1),
		Long: `Delete one of your ships. Deleting a ship that does not exist, or
that belongs to someone else, changes nothing.

Example:
  starfleet ship delete 6f1c2a4e-...`,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := openDaemonSession()
			if err != nil {
				return err
			}
			defer session.Close()

			ctx, cancel := session.requestContext(cmd.Context())
			defer cancel()

			deleted, err := session.client.DeleteShip(ctx, session.email, args[0])
			if err != nil {
				return fmt.Errorf("failed to delete ship: %w", err)
			}

			if deleted == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No ship deleted")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✓ Ship deleted")
			return nil
		},
	}
}

// newShipWatchCommand creates the ship watch subcommand
func newShipWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <ship-id>",
		Short: "Cruise the starfield with a ship",
		Args:  cobra.ExactArgs(1),
		Long: `Open a voyage for one of your ships and draw the starfield in the terminal.

The ship stops at each destination for a moment and then moves on.
Press space to stop or start, q to quit.

Example:
  starfleet ship watch 6f1c2a4e-...`,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := openDaemonSession()
			if err != nil {
				return err
			}
			defer session.Close()

			lookupCtx, cancelLookup := session.requestContext(cmd.Context())
			info, err := session.client.GetShip(lookupCtx, session.email, args[0])
			cancelLookup()
			if err != nil {
				return fmt.Errorf("failed to find ship: %w", err)
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			watch, err := session.client.WatchStarfield(ctx, session.email, info.ID)
			if err != nil {
				return fmt.Errorf("failed to open voyage: %w", err)
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("failed to open terminal: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("failed to initialize terminal: %w", err)
			}
			defer screen.Fini()

			control := func(ctx context.Context, event starfield.Event) error {
				ctx, cancel := session.requestContext(ctx)
				defer cancel()
				return session.client.ControlVoyage(ctx, session.email, watch.VoyageID, event)
			}

			return terminal.NewViewer(screen, info.Name).Run(ctx, watch, control)
		},
	}
}
