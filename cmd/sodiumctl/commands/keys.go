package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sodiumbridge/internal/app"
	"sodiumbridge/internal/catalog"
	"sodiumbridge/internal/codec"
	"sodiumbridge/internal/domain"
)

// EnvPassphrase supplies --passphrase when the flag is not given.
const EnvPassphrase = "SODIUMBRIDGE_PASSPHRASE"

func requirePassphrase() (string, error) {
	if passphrase != "" {
		return passphrase, nil
	}
	if p := os.Getenv(EnvPassphrase); p != "" {
		return p, nil
	}
	return "", errors.New("passphrase required (-p or " + EnvPassphrase + ")")
}

// saveKeypair stores a keypair result under name.
func saveKeypair(name string, res domain.Result) error {
	pass, err := requirePassphrase()
	if err != nil {
		return err
	}
	kr, err := app.NewKeyring(cfg)
	if err != nil {
		return err
	}
	return kr.Save(name, res.Field(catalog.FieldPublicKey), res.Field(catalog.FieldSecretKey), pass)
}

func keysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage saved signing keypairs",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List saved keypairs",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				kr, err := app.NewKeyring(cfg)
				if err != nil {
					return err
				}
				entries, err := kr.List()
				if err != nil {
					return err
				}
				for _, e := range entries {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", e.Name, e.Fingerprint)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "show <name>",
			Short: "Print the public key and fingerprint of a keypair",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				kr, err := app.NewKeyring(cfg)
				if err != nil {
					return err
				}
				e, err := kr.Get(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "pk: %s\nfingerprint: %s\n", codec.Encode(e.PublicKey), e.Fingerprint)
				return nil
			},
		},
		&cobra.Command{
			Use:   "export <name>",
			Short: "Print the secret key of a keypair as hex",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				pass, err := requirePassphrase()
				if err != nil {
					return err
				}
				kr, err := app.NewKeyring(cfg)
				if err != nil {
					return err
				}
				sk, err := kr.SecretKey(args[0], pass)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), codec.Encode(sk))
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete <name>",
			Short: "Remove a saved keypair",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				kr, err := app.NewKeyring(cfg)
				if err != nil {
					return err
				}
				return kr.Delete(args[0])
			},
		},
	)
	return cmd
}
