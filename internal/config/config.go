package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBackend  = BackendTea
	DefaultTickMS   = 20
	DefaultSpawn    = "literal"
	DefaultLogLevel = "info"

	MinTickMS = 1
	MaxTickMS = 1000
)

const (
	BackendTea   = "tea"
	BackendTcell = "tcell"
)

var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Backend  string `yaml:"backend"`
	TickMS   int    `yaml:"tick_ms"`
	Seed     uint64 `yaml:"seed"`
	Spawn    string `yaml:"spawn"`
	LogFile  string `yaml:"log_file,omitempty"`
	LogLevel string `yaml:"log_level"`
}

func DefaultConfig() *Config {
	return &Config{
		Backend:  DefaultBackend,
		TickMS:   DefaultTickMS,
		Spawn:    DefaultSpawn,
		LogLevel: DefaultLogLevel,
	}
}

// Load reads a YAML file over the defaults, so missing keys keep their default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Write encodes cfg as YAML to w.
func Write(w io.Writer, cfg *Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}

func (c *Config) Validate() error {
	switch c.Backend {
	case BackendTea, BackendTcell:
	default:
		return fmt.Errorf("%w: backend %q (want %s or %s)", ErrInvalid, c.Backend, BackendTea, BackendTcell)
	}
	if c.TickMS < MinTickMS || c.TickMS > MaxTickMS {
		return fmt.Errorf("%w: tick_ms %d outside [%d,%d]", ErrInvalid, c.TickMS, MinTickMS, MaxTickMS)
	}
	switch c.Spawn {
	case "literal", "single":
	default:
		return fmt.Errorf("%w: spawn %q (want literal or single)", ErrInvalid, c.Spawn)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel)
	}
	return nil
}

func (c *Config) Interval() time.Duration {
	return time.Duration(c.TickMS) * time.Millisecond
}
