package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"sodiumbridge/internal/backend/local"
	"sodiumbridge/internal/bridge"
	"sodiumbridge/internal/domain"
	"sodiumbridge/internal/observability"
	"sodiumbridge/internal/store"
	"sodiumbridge/internal/transport/grpcx"
	"sodiumbridge/internal/transport/httpx"
	"sodiumbridge/internal/transport/ws"
)

// Wire bundles the backend, metrics and bridge client for the CLI.
type Wire struct {
	Logger   zerolog.Logger
	Registry *prometheus.Registry
	Metrics  *observability.Metrics
	Backend  domain.Backend
	Client   *bridge.Client

	closer io.Closer
}

// NewWire constructs the dependency graph from cfg. Remote backends are
// connected before it returns.
func NewWire(ctx context.Context, cfg Config, logger zerolog.Logger) (*Wire, error) {
	registry := prometheus.NewRegistry()
	metrics := observability.NewMetricsWithRegistry(registry)

	backend, closer, err := newBackend(ctx, cfg, logger, metrics)
	if err != nil {
		return nil, err
	}

	return &Wire{
		Logger:   logger,
		Registry: registry,
		Metrics:  metrics,
		Backend:  backend,
		Client:   bridge.New(backend, logger, metrics),
		closer:   closer,
	}, nil
}

// Close releases the backend connection, if any.
func (w *Wire) Close() error {
	if w == nil || w.closer == nil {
		return nil
	}
	return w.closer.Close()
}

func newBackend(ctx context.Context, cfg Config, logger zerolog.Logger, metrics *observability.Metrics) (domain.Backend, io.Closer, error) {
	switch cfg.Backend {
	case BackendLocal, "":
		return newLocal(cfg, logger, metrics), nil, nil

	case BackendHTTP:
		return httpx.NewClient(cfg.Addr, &http.Client{Timeout: cfg.Timeout}), nil, nil

	case BackendWS:
		dialCtx := ctx
		if cfg.Timeout > 0 {
			var cancel context.CancelFunc
			dialCtx, cancel = context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()
		}
		c, err := ws.Dial(dialCtx, cfg.Addr, nil, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("dial ws backend %s: %w", cfg.Addr, err)
		}
		return c, c, nil

	case BackendGRPC:
		c, err := grpcx.Dial(cfg.Addr, grpcx.DialOptions{
			Timeout:     cfg.Timeout,
			MaxMsgBytes: int(cfg.Server.MaxBodyBytes),
		})
		if err != nil {
			return nil, nil, fmt.Errorf("dial grpc backend %s: %w", cfg.Addr, err)
		}
		c.Timeout = cfg.Timeout
		return c, c, nil

	default:
		return nil, nil, errors.New("unknown backend " + cfg.Backend)
	}
}

func newLocal(cfg Config, logger zerolog.Logger, metrics *observability.Metrics) *local.Backend {
	return local.New(local.Config{
		Workers:         cfg.Local.Workers,
		MaxScryptMemory: cfg.Local.MaxScryptMemory,
	}, logger, metrics)
}

// NewKeyring opens the keyring under cfg's home directory.
func NewKeyring(cfg Config) (*store.Keyring, error) {
	home, err := cfg.HomeDir()
	if err != nil {
		return nil, err
	}
	return store.NewKeyring(home), nil
}
