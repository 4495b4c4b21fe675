package ftp

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config represents a mavftp.yaml configuration file. All values are
// optional. cmd/mavftp applies Options() first and its own flag-derived
// options after them, so flags win. Its target-system,
// target-component, retries and timeout flags always carry a value
// (their default when not given on the command line), so under
// cmd/mavftp only network_id and root_directory from the file take
// effect. log_level is parsed but not applied by Options().
type Config struct {
	TargetSystem    uint8    `yaml:"target_system"`
	TargetComponent uint8    `yaml:"target_component"`
	NetworkID       uint8    `yaml:"network_id"`
	Retries         int      `yaml:"retries"`
	Timeout         Duration `yaml:"timeout"`
	RootDirectory   string   `yaml:"root_directory"`
	LogLevel        string   `yaml:"log_level"`
}

// Duration wraps time.Duration so the config file can spell timeouts as
// "2s" rather than a raw integer of nanoseconds.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

// DefaultConfig returns the engine defaults used when no config file is
// present.
func DefaultConfig() Config {
	return Config{
		TargetComponent: 1,
		Retries:         DefaultRetries,
		Timeout:         Duration{DefaultTimeout},
		LogLevel:        "info",
	}
}

// LoadConfig reads and parses a mavftp.yaml file, starting from
// DefaultConfig so unset fields keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "read config %s", path)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, nil
}

// Options converts the config into Client options.
func (c Config) Options() []Option {
	opts := []Option{
		WithTargetSystem(c.TargetSystem),
		WithTargetComponent(c.TargetComponent),
		WithNetworkID(c.NetworkID),
	}
	if c.Retries > 0 {
		opts = append(opts, WithRetries(c.Retries))
	}
	if c.Timeout.Duration > 0 {
		opts = append(opts, WithTimeout(c.Timeout.Duration))
	}
	if c.RootDirectory != "" {
		opts = append(opts, WithRootDirectory(c.RootDirectory))
	}
	return opts
}
