package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newInvalidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "invalidate [assets...]",
		Short: "Force the next request to re-check assets",
		Args:  cobra.ArbitraryArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			return c.app.Invalidate(args)
		},
	}
}
