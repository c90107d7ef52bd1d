package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"sodiumbridge/internal/observability"
	"sodiumbridge/internal/transport/grpcx"
	"sodiumbridge/internal/transport/httpx"
	"sodiumbridge/internal/transport/ws"
)

// MetricsPath is where the daemon serves Prometheus metrics.
const MetricsPath = "/metrics"

// Daemon serves the local backend over HTTP, WebSocket and gRPC.
type Daemon struct {
	cfg    Config
	logger zerolog.Logger

	httpLn net.Listener
	grpcLn net.Listener
	http   *http.Server
	grpc   *grpc.Server
}

// NewDaemon binds the configured listeners. Nothing is served until Run.
func NewDaemon(cfg Config, logger zerolog.Logger) (*Daemon, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	metrics := observability.NewMetricsWithRegistry(registry)
	backend := newLocal(cfg, logger, metrics)

	d := &Daemon{cfg: cfg, logger: logger}

	if cfg.Server.HTTPAddr != "" {
		ln, err := net.Listen("tcp", cfg.Server.HTTPAddr)
		if err != nil {
			return nil, err
		}
		mux := http.NewServeMux()
		httpx.NewServer(backend, logger, cfg.Server.MaxBodyBytes).Routes(mux)
		mux.Handle(ws.Path, ws.NewServer(backend, logger, cfg.Server.MaxBodyBytes, cfg.Server.AllowedOrigins...))
		if cfg.Server.Metrics {
			mux.Handle(MetricsPath, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		}
		d.httpLn = ln
		d.http = &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}
	}

	if cfg.Server.GRPCAddr != "" {
		ln, err := net.Listen("tcp", cfg.Server.GRPCAddr)
		if err != nil {
			if d.httpLn != nil {
				_ = d.httpLn.Close()
			}
			return nil, err
		}
		var opts []grpc.ServerOption
		if cfg.Server.MaxBodyBytes > 0 {
			opts = append(opts, grpc.MaxRecvMsgSize(int(cfg.Server.MaxBodyBytes)))
		}
		d.grpcLn = ln
		d.grpc = grpc.NewServer(opts...)
		grpcx.RegisterBridgeServer(d.grpc, &grpcx.Server{Backend: backend, Logger: logger})
	}

	return d, nil
}

// HTTPAddr returns the bound HTTP address, or "" when disabled.
func (d *Daemon) HTTPAddr() string {
	if d.httpLn == nil {
		return ""
	}
	return d.httpLn.Addr().String()
}

// GRPCAddr returns the bound gRPC address, or "" when disabled.
func (d *Daemon) GRPCAddr() string {
	if d.grpcLn == nil {
		return ""
	}
	return d.grpcLn.Addr().String()
}

// Run serves until ctx is cancelled or a listener fails, then shuts both
// servers down within Server.ShutdownTimeout.
func (d *Daemon) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	if d.http != nil {
		g.Go(func() error {
			d.logger.Info().Str("addr", d.HTTPAddr()).Msg("http server listening")
			if err := d.http.Serve(d.httpLn); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}
	if d.grpc != nil {
		g.Go(func() error {
			d.logger.Info().Str("addr", d.GRPCAddr()).Msg("grpc server listening")
			return d.grpc.Serve(d.grpcLn)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		d.logger.Info().Msg("shutting down")
		d.shutdown()
		return nil
	})

	err := g.Wait()
	d.logger.Info().Msg("shutdown complete")
	return err
}

func (d *Daemon) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), d.cfg.Server.ShutdownTimeout)
	defer cancel()

	if d.http != nil {
		if err := d.http.Shutdown(ctx); err != nil {
			d.logger.Error().Err(err).Msg("http shutdown")
		}
	}
	if d.grpc != nil {
		stopped := make(chan struct{})
		go func() {
			d.grpc.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-ctx.Done():
			d.grpc.Stop()
		}
	}
}
