package config

import (
	"bytes"
	stderrors "errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sunnyxujian/minivue/internal/errors"
	"github.com/sunnyxujian/minivue/pkg/reactive"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "minivue.yaml"

	// DefaultNamespace is the default metrics namespace.
	DefaultNamespace = "minivue"

	// DefaultTracerName is the default OpenTelemetry tracer name.
	DefaultTracerName = "minivue"

	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"
)

// Config represents the minivue.yaml configuration.
type Config struct {
	// DevMode enables development warnings such as writes during render.
	DevMode bool `yaml:"devMode,omitempty"`

	// Reentrancy is the reentrancy policy: "defer" (default) or "panic".
	Reentrancy string `yaml:"reentrancy,omitempty"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"logLevel,omitempty"`

	// Metrics contains Prometheus settings.
	Metrics MetricsConfig `yaml:"metrics,omitempty"`

	// TracerName is the OpenTelemetry tracer name.
	TracerName string `yaml:"tracerName,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Enabled registers the collectors with the default registerer.
	Enabled bool `yaml:"enabled,omitempty"`

	// Namespace is the metrics namespace.
	Namespace string `yaml:"namespace,omitempty"`

	// Subsystem is the metrics subsystem.
	Subsystem string `yaml:"subsystem,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Reentrancy: reactive.ReentrancyDefer.String(),
		LogLevel:   DefaultLogLevel,
		Metrics: MetricsConfig{
			Namespace: DefaultNamespace,
		},
		TracerName: DefaultTracerName,
	}
}

// Load reads minivue.yaml from the specified directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path. Unknown
// fields are rejected; an empty file yields the defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E121").
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path)).
				WithSuggestion("Create " + ConfigFileName + " or use the built-in defaults")
		}
		return nil, errors.New("E121").Wrap(err)
	}

	cfg := New()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !stderrors.Is(err, io.EOF) {
		return nil, errors.New("E120").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check that the file is valid YAML and uses known keys")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.New("E120").Wrap(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.New("E121").Wrap(err)
	}
	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	c.Reentrancy = strings.ToLower(strings.TrimSpace(c.Reentrancy))
	if c.Reentrancy == "" {
		c.Reentrancy = reactive.ReentrancyDefer.String()
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.TracerName == "" {
		c.TracerName = DefaultTracerName
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, ok := reactive.ParseReentrancyPolicy(c.Reentrancy); !ok {
		return errors.New("E120").
			WithDetailf("reentrancy must be %q or %q, got %q", "defer", "panic", c.Reentrancy)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return errors.New("E120").
			WithDetailf("logLevel %q is not a log level", c.LogLevel).
			WithSuggestion("Use debug, info, warn or error")
	}
	return nil
}

// ReentrancyPolicy returns the parsed reentrancy policy.
func (c *Config) ReentrancyPolicy() reactive.ReentrancyPolicy {
	p, _ := reactive.ParseReentrancyPolicy(c.Reentrancy)
	return p
}

// Level returns the parsed log level, or info if it does not parse.
func (c *Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up from startDir to the directory containing
// minivue.yaml.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", errors.New("E121").Wrap(err)
	}
	for {
		if Exists(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E121").
				WithDetail("No " + ConfigFileName + " found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}
