package commands

import (
	"github.com/spf13/cobra"

	"sodiumbridge/internal/bridge"
	"sodiumbridge/internal/catalog"
)

func pwhashCmd() *cobra.Command {
	var (
		text   bool
		ll     bool
		opsLim uint64
		memLim uint64
		r, p   uint64
		keyLen uint64
	)
	cmd := &cobra.Command{
		Use:   "pwhash <password> <salt>",
		Short: "Derive a key from a password with scrypt",
		Long: "Derive a key from a password with scrypt.\n\n" +
			"By default --ops and --mem are turned into scrypt parameters the way\n" +
			"libsodium does. With --ll, --ops is N and --r and --p are passed as is.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := message(args, 0, text)
			if err != nil {
				return err
			}
			res, err := run(cmd, func(c *bridge.Client, done bridge.Completion) {
				if ll {
					c.PwhashScryptSalsa208SHA256LL(password, args[1], opsLim, r, p, keyLen, done)
					return
				}
				c.PwhashScryptSalsa208SHA256(keyLen, password, args[1], opsLim, memLim, done)
			})
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), res)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.BoolVar(&text, "text", false, "password is UTF-8 text, not hex")
	flags.BoolVar(&ll, "ll", false, "use explicit N, r and p")
	flags.Uint64Var(&keyLen, "key-length", 32, "derived key length in bytes")
	flags.Uint64Var(&opsLim, "ops", catalog.PwhashOpsLimitInteractive, "ops limit, or N with --ll")
	flags.Uint64Var(&memLim, "mem", catalog.PwhashMemLimitInteractive, "memory limit in bytes")
	flags.Uint64Var(&r, "r", 8, "block size (with --ll)")
	flags.Uint64Var(&p, "p", 1, "parallelism (with --ll)")
	return cmd
}
