package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [assets...]",
		Short: "Show fingerprint and staleness without rebuilding",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			statuses, err := c.app.Status(args)
			if err != nil {
				return err
			}

			for _, status := range statuses {
				freshness := "fresh"
				if status.Stale {
					freshness = "stale"
				}
				fingerprint := status.Fingerprint
				if fingerprint == "" {
					fingerprint = "(not built)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", status.Name, fingerprint, freshness)
			}
			return nil
		},
	}
}
