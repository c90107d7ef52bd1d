package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

// Backend names accepted in Config.Backend.
const (
	BackendLocal = "local"
	BackendHTTP  = "http"
	BackendWS    = "ws"
	BackendGRPC  = "grpc"
)

// Environment overrides, applied after the config file.
const (
	EnvBackend         = "SODIUMBRIDGE_BACKEND"
	EnvAddr            = "SODIUMBRIDGE_ADDR"
	EnvLogLevel        = "SODIUMBRIDGE_LOG_LEVEL"
	EnvTimeout         = "SODIUMBRIDGE_TIMEOUT"
	EnvWorkers         = "SODIUMBRIDGE_WORKERS"
	EnvMaxScryptMemory = "SODIUMBRIDGE_MAX_SCRYPT_MEMORY"
	EnvHTTPAddr        = "SODIUMBRIDGE_HTTP_ADDR"
	EnvGRPCAddr        = "SODIUMBRIDGE_GRPC_ADDR"
	EnvMetrics         = "SODIUMBRIDGE_METRICS"
	EnvHome            = "SODIUMBRIDGE_HOME"
)

// Config holds runtime wiring options for the CLI and the daemon.
type Config struct {
	Backend  string        `validate:"oneof=local http ws grpc"`
	Addr     string        `validate:"required_unless=Backend local"` // remote backend address
	LogLevel string        `validate:"omitempty,oneof=trace debug info warn warning error disabled off none"`
	Timeout  time.Duration `validate:"gte=0"` // per call; zero waits forever
	Home     string        // keyring directory; empty means ~/.sodiumbridge

	Local  LocalConfig
	Server ServerConfig
}

// LocalConfig tunes the in-process backend.
type LocalConfig struct {
	Workers         int    `validate:"gte=0"`
	MaxScryptMemory uint64 `validate:"gte=0"`
}

// ServerConfig configures the daemon listeners. An empty address disables
// that listener; at least one must be set.
type ServerConfig struct {
	HTTPAddr        string        `validate:"required_without=GRPCAddr,omitempty,hostname_port"`
	GRPCAddr        string        `validate:"omitempty,hostname_port"`
	MaxBodyBytes    int64         `validate:"gte=0"`
	ShutdownTimeout time.Duration `validate:"gt=0"`
	Metrics         bool
	AllowedOrigins  []string `validate:"dive,required"` // extra browser origins for /ws; "*" admits any
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Backend:  BackendLocal,
		LogLevel: "info",
		Timeout:  30 * time.Second,
		Server: ServerConfig{
			HTTPAddr:        "127.0.0.1:8080",
			GRPCAddr:        "127.0.0.1:9090",
			MaxBodyBytes:    32 << 20,
			ShutdownTimeout: 10 * time.Second,
			Metrics:         true,
		},
	}
}

type fileConfig struct {
	Backend  string `toml:"backend"`
	Addr     string `toml:"addr"`
	LogLevel string `toml:"log_level"`
	Timeout  string `toml:"timeout"`
	Home     string `toml:"home"`

	Local struct {
		Workers         int    `toml:"workers"`
		MaxScryptMemory uint64 `toml:"max_scrypt_memory"`
	} `toml:"local"`

	Server struct {
		HTTPAddr        string   `toml:"http_addr"`
		GRPCAddr        string   `toml:"grpc_addr"`
		MaxBodyBytes    int64    `toml:"max_body_bytes"`
		ShutdownTimeout string   `toml:"shutdown_timeout"`
		Metrics         bool     `toml:"metrics"`
		AllowedOrigins  []string `toml:"allowed_origins"`
	} `toml:"server"`
}

// LoadConfig builds a Config from defaults, the TOML file at path (skipped
// when path is empty) and the environment, in that order, and validates it.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		if err := overlayFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}
	if err := overlayEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// overlayFile applies only the keys the file defines.
func overlayFile(cfg *Config, path string) error {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("load config: unknown key %s", undecoded[0])
	}

	if meta.IsDefined("backend") {
		cfg.Backend = strings.TrimSpace(raw.Backend)
	}
	if meta.IsDefined("addr") {
		cfg.Addr = strings.TrimSpace(raw.Addr)
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("home") {
		cfg.Home = strings.TrimSpace(raw.Home)
	}
	if meta.IsDefined("timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Timeout))
		if err != nil {
			return fmt.Errorf("parse timeout: %w", err)
		}
		cfg.Timeout = d
	}

	if meta.IsDefined("local", "workers") {
		cfg.Local.Workers = raw.Local.Workers
	}
	if meta.IsDefined("local", "max_scrypt_memory") {
		cfg.Local.MaxScryptMemory = raw.Local.MaxScryptMemory
	}

	if meta.IsDefined("server", "http_addr") {
		cfg.Server.HTTPAddr = strings.TrimSpace(raw.Server.HTTPAddr)
	}
	if meta.IsDefined("server", "grpc_addr") {
		cfg.Server.GRPCAddr = strings.TrimSpace(raw.Server.GRPCAddr)
	}
	if meta.IsDefined("server", "max_body_bytes") {
		cfg.Server.MaxBodyBytes = raw.Server.MaxBodyBytes
	}
	if meta.IsDefined("server", "shutdown_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Server.ShutdownTimeout))
		if err != nil {
			return fmt.Errorf("parse server.shutdown_timeout: %w", err)
		}
		cfg.Server.ShutdownTimeout = d
	}
	if meta.IsDefined("server", "metrics") {
		cfg.Server.Metrics = raw.Server.Metrics
	}
	if meta.IsDefined("server", "allowed_origins") {
		cfg.Server.AllowedOrigins = raw.Server.AllowedOrigins
	}
	return nil
}

func overlayEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	str(EnvBackend, &cfg.Backend)
	str(EnvAddr, &cfg.Addr)
	str(EnvLogLevel, &cfg.LogLevel)
	str(EnvHome, &cfg.Home)
	str(EnvHTTPAddr, &cfg.Server.HTTPAddr)
	str(EnvGRPCAddr, &cfg.Server.GRPCAddr)

	if v, ok := lookup(EnvTimeout); ok && v != "" {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("parse %s: %w", EnvTimeout, err)
		}
		cfg.Timeout = d
	}
	if v, ok := lookup(EnvWorkers); ok && v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("parse %s: %w", EnvWorkers, err)
		}
		cfg.Local.Workers = n
	}
	if v, ok := lookup(EnvMaxScryptMemory); ok && v != "" {
		n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("parse %s: %w", EnvMaxScryptMemory, err)
		}
		cfg.Local.MaxScryptMemory = n
	}
	if v, ok := lookup(EnvMetrics); ok && v != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("parse %s: %w", EnvMetrics, err)
		}
		cfg.Server.Metrics = b
	}
	return nil
}

// HomeDir returns Home, defaulting to ~/.sodiumbridge.
func (c Config) HomeDir() (string, error) {
	if c.Home != "" {
		return c.Home, nil
	}
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ".sodiumbridge"), nil
}

var validate = validator.New()

// Validate checks cfg against its struct tags.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s fails %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
