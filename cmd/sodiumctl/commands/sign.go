package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"sodiumbridge/internal/bridge"
	"sodiumbridge/internal/catalog"
	"sodiumbridge/internal/crypto"
	"sodiumbridge/internal/domain"
)

func signCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Ed25519 signatures and key conversion",
	}
	cmd.AddCommand(
		signKeypairCmd(),
		signSeedKeypairCmd(),
		signSignCmd(),
		signOpenCmd(),
		signDetachedCmd(),
		signVerifyCmd(),
		signSkToSeedCmd(),
		signSkToPkCmd(),
		signToCurveCmd(),
	)
	return cmd
}

// printKeypair prints the keypair and, when save is set, stores it under
// that name.
func printKeypair(cmd *cobra.Command, res domain.Result, save string) error {
	if save != "" {
		if err := saveKeypair(save, res); err != nil {
			return err
		}
	}
	printResult(cmd.OutOrStdout(), res)
	fmt.Fprintf(cmd.OutOrStdout(), "fingerprint: %s\n", crypto.Fingerprint(res.Field(catalog.FieldPublicKey)))
	return nil
}

func signKeypairCmd() *cobra.Command {
	var save string
	cmd := &cobra.Command{
		Use:   "keypair",
		Short: "Generate a random signing keypair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := run(cmd, func(c *bridge.Client, done bridge.Completion) { c.SignKeypair(done) })
			if err != nil {
				return err
			}
			return printKeypair(cmd, res, save)
		},
	}
	cmd.Flags().StringVar(&save, "save", "", "store the keypair under this name")
	return cmd
}

func signSeedKeypairCmd() *cobra.Command {
	var save string
	cmd := &cobra.Command{
		Use:   "seed-keypair <seed>",
		Short: "Derive a signing keypair from a 32-byte seed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := run(cmd, func(c *bridge.Client, done bridge.Completion) { c.SignSeedKeypair(args[0], done) })
			if err != nil {
				return err
			}
			return printKeypair(cmd, res, save)
		},
	}
	cmd.Flags().StringVar(&save, "save", "", "store the keypair under this name")
	return cmd
}

func signSignCmd() *cobra.Command {
	var text bool
	cmd := &cobra.Command{
		Use:   "sign <secret-key> [message]",
		Short: "Produce a signed message",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := message(args, 1, text)
			if err != nil {
				return err
			}
			res, err := run(cmd, func(c *bridge.Client, done bridge.Completion) { c.Sign(msg, args[0], done) })
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

func signOpenCmd() *cobra.Command {
	var text bool
	cmd := &cobra.Command{
		Use:   "open <signed-message> <public-key>",
		Short: "Verify a signed message and print its content",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := run(cmd, func(c *bridge.Client, done bridge.Completion) { c.SignOpen(args[0], args[1], done) })
			if err != nil {
				return err
			}
			return printBuffer(cmd.OutOrStdout(), res.Buffer, text)
		},
	}
	cmd.Flags().BoolVar(&text, "text", false, "print the message as UTF-8")
	return cmd
}

func signDetachedCmd() *cobra.Command {
	var text bool
	cmd := &cobra.Command{
		Use:   "detached <secret-key> [message]",
		Short: "Produce a detached signature",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := message(args, 1, text)
			if err != nil {
				return err
			}
			res, err := run(cmd, func(c *bridge.Client, done bridge.Completion) { c.SignDetached(msg, args[0], done) })
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

func signVerifyCmd() *cobra.Command {
	var text bool
	cmd := &cobra.Command{
		Use:   "verify <signature> <public-key> [message]",
		Short: "Check a detached signature",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := message(args, 2, text)
			if err != nil {
				return err
			}
			res, err := run(cmd, func(c *bridge.Client, done bridge.Completion) {
				c.SignVerifyDetached(args[0], msg, args[1], done)
			})
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), res)
			if ok, _ := res.Value.AsBool(); !ok {
				return fmt.Errorf("signature does not verify")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&text, "text", false, "message is UTF-8 text, not hex")
	return cmd
}

func signSkToSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sk-to-seed <secret-key>",
		Short: "Extract the seed of a secret key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := run(cmd, func(c *bridge.Client, done bridge.Completion) { c.SignEd25519SkToSeed(args[0], done) })
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), res)
			return nil
		},
	}
}

func signSkToPkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sk-to-pk <secret-key>",
		Short: "Extract the public key of a secret key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := run(cmd, func(c *bridge.Client, done bridge.Completion) { c.SignEd25519SkToPk(args[0], done) })
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), res)
			return nil
		},
	}
}

func signToCurveCmd() *cobra.Command {
	var public bool
	cmd := &cobra.Command{
		Use:   "to-curve25519 <key>",
		Short: "Convert an Ed25519 secret key (or public key with --public) to X25519",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := run(cmd, func(c *bridge.Client, done bridge.Completion) {
				if public {
					c.SignEd25519PkToCurve25519(args[0], done)
					return
				}
				c.SignEd25519SkToCurve25519(args[0], done)
			})
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), res)
			return nil
		},
	}
	cmd.Flags().BoolVar(&public, "public", false, "key is a 32-byte public key")
	return cmd
}
