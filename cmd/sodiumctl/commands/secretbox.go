package commands

import (
	"github.com/spf13/cobra"

	"sodiumbridge/internal/bridge"
)

func secretboxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secretbox",
		Short: "XSalsa20-Poly1305 authenticated encryption",
	}
	cmd.AddCommand(secretboxSealCmd(), secretboxOpenCmd())
	return cmd
}

func secretboxSealCmd() *cobra.Command {
	var text bool
	cmd := &cobra.Command{
		Use:   "seal <nonce> <key> [message]",
		Short: "Encrypt and authenticate a message",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := message(args, 2, text)
			if err != nil {
				return err
			}
			res, err := run(cmd, func(c *bridge.Client, done bridge.Completion) {
				c.SecretboxEasy(msg, args[0], args[1], done)
			})
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), res)
			return nil
		},
	}
	cmd.Flags().BoolVar(&text, "text", false, "message is UTF-8 text, not hex")
	return cmd
}

func secretboxOpenCmd() *cobra.Command {
	var text bool
	cmd := &cobra.Command{
		Use:   "open <ciphertext> <nonce> <key>",
		Short: "Verify and decrypt a ciphertext",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := run(cmd, func(c *bridge.Client, done bridge.Completion) {
				c.SecretboxOpenEasy(args[0], args[1], args[2], done)
			})
			if err != nil {
				return err
			}
			return printBuffer(cmd.OutOrStdout(), res.Buffer, text)
		},
	}
	cmd.Flags().BoolVar(&text, "text", false, "print the plaintext as UTF-8")
	return cmd
}
