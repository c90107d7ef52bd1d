package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sodiumbridge.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestLoadConfig_OverlaysOnlyDefinedKeys(t *testing.T) {
	path := writeConfig(t, `
backend = "grpc"
addr = "127.0.0.1:9999"
home = "/var/lib/sodiumbridge"
timeout = "5s"

[local]
workers = 3

[server]
grpc_addr = ""
metrics = false
allowed_origins = ["https://app.example"]
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	def := DefaultConfig()
	require.Equal(t, BackendGRPC, cfg.Backend)
	require.Equal(t, "127.0.0.1:9999", cfg.Addr)
	require.Equal(t, 5*time.Second, cfg.Timeout)
	home, err := cfg.HomeDir()
	require.NoError(t, err)
	require.Equal(t, "/var/lib/sodiumbridge", home)
	require.Equal(t, 3, cfg.Local.Workers)
	require.Empty(t, cfg.Server.GRPCAddr)
	require.False(t, cfg.Server.Metrics)
	require.Equal(t, []string{"https://app.example"}, cfg.Server.AllowedOrigins)

	require.Equal(t, def.LogLevel, cfg.LogLevel)
	require.Equal(t, def.Server.HTTPAddr, cfg.Server.HTTPAddr)
	require.Equal(t, def.Server.ShutdownTimeout, cfg.Server.ShutdownTimeout)
}

func TestLoadConfig_RejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, `backnd = "local"`)
	_, err := LoadConfig(path)
	require.ErrorContains(t, err, "unknown key backnd")
}

func TestLoadConfig_BadDuration(t *testing.T) {
	path := writeConfig(t, `timeout = "soon"`)
	_, err := LoadConfig(path)
	require.ErrorContains(t, err, "parse timeout")
}

func TestLoadConfig_EnvWinsOverFile(t *testing.T) {
	path := writeConfig(t, `
backend = "http"
addr = "http://file:8080"
`)
	t.Setenv(EnvAddr, "http://env:8080")
	t.Setenv(EnvWorkers, "7")
	t.Setenv(EnvMetrics, "false")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, BackendHTTP, cfg.Backend)
	require.Equal(t, "http://env:8080", cfg.Addr)
	require.Equal(t, 7, cfg.Local.Workers)
	require.False(t, cfg.Server.Metrics)
}

func TestOverlayEnv_ParseErrors(t *testing.T) {
	cases := map[string]string{
		EnvTimeout:         "forever",
		EnvWorkers:         "many",
		EnvMaxScryptMemory: "-1",
		EnvMetrics:         "maybe",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			cfg := DefaultConfig()
			lookup := func(k string) (string, bool) {
				if k == key {
					return val, true
				}
				return "", false
			}
			require.ErrorContains(t, overlayEnv(&cfg, lookup), key)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"unknown backend", func(c *Config) { c.Backend = "carrier-pigeon" }, "Config.Backend"},
		{"remote without addr", func(c *Config) { c.Backend = BackendWS }, "Config.Addr"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "Config.LogLevel"},
		{"negative workers", func(c *Config) { c.Local.Workers = -1 }, "Config.Local.Workers"},
		{"no listeners", func(c *Config) { c.Server.HTTPAddr, c.Server.GRPCAddr = "", "" }, "Config.Server.HTTPAddr"},
		{"bad grpc addr", func(c *Config) { c.Server.GRPCAddr = "nope" }, "Config.Server.GRPCAddr"},
		{"empty origin", func(c *Config) { c.Server.AllowedOrigins = []string{""} }, "Config.Server.AllowedOrigins[0]"},
		{"zero shutdown", func(c *Config) { c.Server.ShutdownTimeout = 0 }, "Config.Server.ShutdownTimeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			require.ErrorContains(t, cfg.Validate(), tt.field)
		})
	}

	cfg := DefaultConfig()
	cfg.Backend, cfg.Addr = BackendHTTP, "http://127.0.0.1:8080"
	cfg.Server.GRPCAddr = ""
	require.NoError(t, cfg.Validate())
}
