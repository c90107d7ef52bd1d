package commands

import (
	"github.com/spf13/cobra"

	"sodiumbridge/internal/bridge"
)

func scalarmultCmd() *cobra.Command {
	var point string
	cmd := &cobra.Command{
		Use:   "scalarmult <scalar>",
		Short: "X25519 scalar multiplication (base point unless --point)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var p any
			if point != "" {
				p = point
			}
			res, err := run(cmd, func(c *bridge.Client, done bridge.Completion) { c.ScalarMult(args[0], p, done) })
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), res)
			return nil
		},
	}
	cmd.Flags().StringVar(&point, "point", "", "32-byte point to multiply")
	return cmd
}
