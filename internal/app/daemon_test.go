package app

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"sodiumbridge/internal/bridge"
)

func startDaemon(t *testing.T) *Daemon {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Server.HTTPAddr = "127.0.0.1:0"
	cfg.Server.GRPCAddr = "127.0.0.1:0"

	d, err := NewDaemon(cfg, zerolog.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- d.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-errc:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("daemon did not stop")
		}
	})
	return d
}

func TestDaemon_ServesEveryBackend(t *testing.T) {
	d := startDaemon(t)

	remotes := map[string]string{
		BackendLocal: "",
		BackendHTTP:  "http://" + d.HTTPAddr(),
		BackendWS:    "ws://" + d.HTTPAddr() + "/ws",
		BackendGRPC:  d.GRPCAddr(),
	}
	key := bytes.Repeat([]byte{7}, 32)
	nonce := bytes.Repeat([]byte{9}, 24)

	for kind, addr := range remotes {
		t.Run(kind, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			cfg := DefaultConfig()
			cfg.Backend, cfg.Addr = kind, addr
			require.NoError(t, cfg.Validate())

			w, err := NewWire(ctx, cfg, zerolog.Nop())
			require.NoError(t, err)
			defer func() { require.NoError(t, w.Close()) }()

			sealed, err := bridge.Await(ctx, func(done bridge.Completion) {
				w.Client.SecretboxEasy([]byte("over the wire"), nonce, key, done)
			})
			require.NoError(t, err)

			opened, err := bridge.Await(ctx, func(done bridge.Completion) {
				w.Client.SecretboxOpenEasy(sealed.Buffer, nonce, key, done)
			})
			require.NoError(t, err)
			require.Equal(t, "over the wire", string(opened.Buffer))

			sealed.Buffer[0] ^= 1
			_, err = bridge.Await(ctx, func(done bridge.Completion) {
				w.Client.SecretboxOpenEasy(sealed.Buffer, nonce, key, done)
			})
			require.EqualError(t, err, "decryption failed")
		})
	}
}

func TestDaemon_HealthAndMetrics(t *testing.T) {
	d := startDaemon(t)

	resp, err := http.Get("http://" + d.HTTPAddr() + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get("http://" + d.HTTPAddr() + MetricsPath)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), "go_goroutines")
}

func TestNewWire_UnknownBackend(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Backend = "smoke-signals"
	_, err := NewWire(context.Background(), cfg, zerolog.Nop())
	require.ErrorContains(t, err, "unknown backend")
}
