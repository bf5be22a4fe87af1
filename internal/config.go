package internal

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// DefaultMaxDepth is the frame depth ceiling used when none is configured.
const DefaultMaxDepth = 500

// Config controls an interpreter.
type Config struct {
	// MaxDepth is the greatest frame depth allowed. Creating a frame deeper
	// than this fails with MaxDepthError. Values not greater than zero select
	// DefaultMaxDepth.
	MaxDepth int `yaml:"maxDepth"`
	// LogLevel is the zerolog level name used by NewLogger.
	LogLevel string `yaml:"logLevel"`

	// Logger receives the interpreter's logs. If nil, nothing is logged.
	Logger *zerolog.Logger `yaml:"-"`
	// DepthHook, if not nil, is called with the new frame depth whenever it
	// changes. It has no effect on execution.
	DepthHook func(depth int) `yaml:"-"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{MaxDepth: DefaultMaxDepth, LogLevel: zerolog.LevelInfoValue}
}

// LoadConfig decodes a YAML configuration on top of the defaults. An empty
// document yields the defaults.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("turtle: decoding config: %w", err)
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	if _, err := cfg.Level(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Level parses LogLevel. An empty level means info.
func (cfg Config) Level() (zerolog.Level, error) {
	if cfg.LogLevel == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("turtle: bad log level %q: %w", cfg.LogLevel, err)
	}
	return lvl, nil
}

// NewLogger creates a logger writing to w at the configured level and installs
// it in cfg.
func (cfg *Config) NewLogger(w io.Writer) (zerolog.Logger, error) {
	lvl, err := cfg.Level()
	if err != nil {
		return zerolog.Nop(), err
	}
	l := zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	cfg.Logger = &l
	return l, nil
}
