// Package cliconfig holds the configuration of the fsmgraph command.
//
// Values come from flags, FSMGRAPH_* environment variables and an optional
// .env file. A flag given on the command line always wins.
package cliconfig

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/atlekbai/hookfsm/graph"
)

var (
	ErrParsingConfig = errors.New("failed to parse environment variables into config")
	ErrLoadingEnv    = errors.New("failed to load env file")
)

// Config holds CLI configuration for fsmgraph.
type Config struct {
	Format        string        `env:"FSMGRAPH_FORMAT" envDefault:"dot"`
	Direction     string        `env:"FSMGRAPH_DIRECTION" envDefault:"LR"`
	LogLevel      string        `env:"FSMGRAPH_LOG_LEVEL" envDefault:"info"`
	WatchDebounce time.Duration `env:"FSMGRAPH_WATCH_DEBOUNCE" envDefault:"100ms"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Format:        string(graph.FormatDot),
		Direction:     graph.LeftToRight.String(),
		LogLevel:      zerolog.InfoLevel.String(),
		WatchDebounce: 100 * time.Millisecond,
	}
}

// LoadEnv loads env files into the process environment. Without paths it
// loads ./.env if present. Variables already set are not overridden.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		if !FileExists(".env") {
			return nil
		}
		paths = []string{".env"}
	}
	if err := godotenv.Load(paths...); err != nil {
		return errors.Join(ErrLoadingEnv, err)
	}
	return nil
}

// FromEnv parses FSMGRAPH_* variables, falling back to the defaults.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

// ApplyEnvConfig copies environment values into cfg for every flag that was
// not explicitly set (changed map).
func ApplyEnvConfig(cfg *Config, envCfg Config, changed map[string]bool) {
	s := newConfigSetter(changed)

	s.setString("format", envCfg.Format, &cfg.Format)
	s.setString("direction", envCfg.Direction, &cfg.Direction)
	s.setString("log-level", envCfg.LogLevel, &cfg.LogLevel)
	s.setDuration("debounce", envCfg.WatchDebounce, &cfg.WatchDebounce)
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if _, err := c.GraphFormat(); err != nil {
		return err
	}
	if _, err := c.GraphDirection(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.WatchDebounce < 0 {
		return fmt.Errorf("watch debounce must not be negative")
	}
	return nil
}

// GraphFormat parses Format.
func (c *Config) GraphFormat() (graph.Format, error) {
	return graph.ParseFormat(c.Format)
}

// GraphDirection parses Direction.
func (c *Config) GraphDirection() (graph.Direction, error) {
	return graph.ParseDirection(c.Direction)
}

// Level parses LogLevel.
func (c *Config) Level() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("parse log level: %w", err)
	}
	return level, nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

// configSetter applies configuration values while respecting flag precedence.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

func (s *configSetter) setDuration(flag string, value time.Duration, dst *time.Duration) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}
