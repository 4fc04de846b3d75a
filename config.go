package minivue

import (
	"log/slog"
	"os"

	"github.com/sunnyxujian/minivue/internal/config"
	"github.com/sunnyxujian/minivue/pkg/metrics"
	"github.com/sunnyxujian/minivue/pkg/reactive"
	"github.com/sunnyxujian/minivue/pkg/render"
)

// Config is the runtime configuration.
type Config struct {
	// Logger is the structured logger shared by the store and the renderer.
	// If nil, slog.Default() is used.
	Logger *slog.Logger

	// DevMode enables development warnings. Writing reactive state while a
	// render or watcher is evaluating logs an E001 warning.
	DevMode bool

	// Reentrancy decides what happens when a subscriber is notified while it
	// is still evaluating. Default: reactive.ReentrancyDefer.
	Reentrancy reactive.ReentrancyPolicy

	// Metrics configures the Prometheus collectors. Nil disables metrics.
	Metrics *metrics.Config

	// TracerName is the OpenTelemetry tracer name.
	// Default: "minivue".
	TracerName string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Logger:     slog.Default(),
		Reentrancy: reactive.ReentrancyDefer,
		TracerName: render.DefaultTracerName,
	}
}

// ConfigFromFile builds a Config from a minivue.yaml file. The logger
// writes text records to stderr at the configured level.
func ConfigFromFile(path string) (Config, error) {
	file, err := config.LoadFile(path)
	if err != nil {
		return Config{}, err
	}
	return configFrom(file), nil
}

// LoadConfig builds a Config from minivue.yaml in dir.
func LoadConfig(dir string) (Config, error) {
	file, err := config.Load(dir)
	if err != nil {
		return Config{}, err
	}
	return configFrom(file), nil
}

func configFrom(file *config.Config) Config {
	cfg := DefaultConfig()
	cfg.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: file.Level()}))
	cfg.DevMode = file.DevMode
	cfg.Reentrancy = file.ReentrancyPolicy()
	cfg.TracerName = file.TracerName
	if file.Metrics.Enabled {
		m := metrics.DefaultConfig()
		m.Namespace = file.Metrics.Namespace
		m.Subsystem = file.Metrics.Subsystem
		cfg.Metrics = &m
	}
	return cfg
}
