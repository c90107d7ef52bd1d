package commands

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"sodiumbridge/internal/bridge"
	"sodiumbridge/internal/codec"
	"sodiumbridge/internal/domain"
)

// run dispatches one call and waits for it, bounded by the configured timeout.
func run(cmd *cobra.Command, call func(c *bridge.Client, done bridge.Completion)) (domain.Result, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}
	c, err := client(ctx)
	if err != nil {
		return domain.Result{}, err
	}
	return bridge.Await(ctx, func(done bridge.Completion) { call(c, done) })
}

// printResult writes a buffer as hex, a scalar as text and a record as
// sorted "name: value" lines.
func printResult(w io.Writer, res domain.Result) {
	switch {
	case res.Buffers != nil || res.Values != nil:
		names := make([]string, 0, len(res.Buffers)+len(res.Values))
		for name := range res.Buffers {
			names = append(names, name)
		}
		for name := range res.Values {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if b, ok := res.Buffers[name]; ok {
				fmt.Fprintf(w, "%s: %s\n", name, codec.Encode(b))
				continue
			}
			fmt.Fprintf(w, "%s: %s\n", name, res.Values[name])
		}
	case res.Buffer != nil:
		fmt.Fprintln(w, codec.Encode(res.Buffer))
	default:
		fmt.Fprintln(w, res.Value)
	}
}

// printBuffer writes b as hex, or as UTF-8 text when asText is set.
func printBuffer(w io.Writer, b []byte, asText bool) error {
	if !asText {
		fmt.Fprintln(w, codec.Encode(b))
		return nil
	}
	s, err := codec.ToText(b)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, s)
	return nil
}

// message returns args[i] as hex, or its UTF-8 bytes when text is set.
// A missing argument is the empty message.
func message(args []string, i int, text bool) (any, error) {
	if i >= len(args) {
		return []byte{}, nil
	}
	if text {
		return codec.ToBytes(args[i])
	}
	return args[i], nil
}
