package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"sodiumbridge/internal/codec"
)

// input returns the first argument, or stdin when there is none.
func input(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) > 0 {
		return []byte(args[0]), nil
	}
	return io.ReadAll(cmd.InOrStdin())
}

func hexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hex",
		Short: "Hex codec",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "encode [data]",
			Short: "Hex-encode raw bytes (stdin when no argument)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				b, err := input(cmd, args)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), codec.Encode(b))
				return nil
			},
		},
		&cobra.Command{
			Use:   "decode <hex>",
			Short: "Write the raw bytes of a hex string",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				b, err := codec.Decode(args[0])
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(b)
				return err
			},
		},
	)
	return cmd
}

func textCmd() *cobra.Command {
	var t codec.Transcoder
	cmd := &cobra.Command{
		Use:   "text",
		Short: "Strict UTF-8 transcoding",
	}
	cmd.PersistentFlags().BoolVar(&t.Manual, "manual", false, "use the chunked decoder")
	cmd.PersistentFlags().IntVar(&t.ChunkSize, "chunk-size", codec.ChunkSize, "chunk size of the manual decoder")
	cmd.AddCommand(
		&cobra.Command{
			Use:   "encode [text]",
			Short: "Print the hex of UTF-8 text (stdin when no argument)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				in, err := input(cmd, args)
				if err != nil {
					return err
				}
				b, err := t.ToBytes(string(in))
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), codec.Encode(b))
				return nil
			},
		},
		&cobra.Command{
			Use:   "decode <hex>",
			Short: "Decode hex bytes as UTF-8 text",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				b, err := codec.Decode(args[0])
				if err != nil {
					return err
				}
				s, err := t.ToText(b)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), s)
				return nil
			},
		},
	)
	return cmd
}
