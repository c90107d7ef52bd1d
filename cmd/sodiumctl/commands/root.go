package commands

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"sodiumbridge/internal/app"
	"sodiumbridge/internal/bridge"
	"sodiumbridge/internal/observability"
)

var (
	cfgPath    string
	backend    string
	addr       string
	logLevel   string
	passphrase string

	cfg    app.Config
	logger zerolog.Logger
	wire   *app.Wire
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	wire = nil
	root := &cobra.Command{
		Use:          "sodiumctl",
		Short:        "Drive sodiumbridge operations from the shell",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := app.LoadConfig(cfgPath)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("backend") {
				loaded.Backend = backend
			}
			if flags.Changed("addr") {
				loaded.Addr = addr
			}
			if flags.Changed("log-level") {
				loaded.LogLevel = logLevel
			}
			if err := loaded.Validate(); err != nil {
				return err
			}
			cfg = loaded
			logger = observability.InitLogger("sodiumctl", cfg.LogLevel)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			err := wire.Close()
			wire = nil
			return err
		},
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "TOML config file")
	root.PersistentFlags().StringVar(&backend, "backend", app.BackendLocal, "backend: local, http, ws or grpc")
	root.PersistentFlags().StringVar(&addr, "addr", "", "remote backend address")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (default from config)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting saved keys")

	root.AddCommand(
		secretboxCmd(),
		signCmd(),
		scalarmultCmd(),
		pwhashCmd(),
		hexCmd(),
		textCmd(),
		keysCmd(),
	)
	return root
}

// client builds the wire on first use.
func client(ctx context.Context) (*bridge.Client, error) {
	if wire == nil {
		w, err := app.NewWire(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		wire = w
	}
	return wire.Client.WithContext(ctx), nil
}
