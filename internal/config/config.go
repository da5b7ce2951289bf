// Package config loads the daemon configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the daemon configuration. Fields left out of the YAML file keep
// their defaults.
type Config struct {
	SampleRate    float64 `yaml:"sample_rate"`
	BlockSize     int     `yaml:"block_size"`
	QueueCapacity int     `yaml:"queue_capacity"`
	Watermarking  bool    `yaml:"watermarking"`
	ListenAddr    string  `yaml:"listen_addr"`
	ProfilesPath  string  `yaml:"profiles_path"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		SampleRate:    44100,
		BlockSize:     1024,
		QueueCapacity: 16,
		Watermarking:  true,
		ListenAddr:    ":8080",
	}
}

// Load reads a YAML configuration file on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("config: sample_rate must be > 0: %f", c.SampleRate)
	}
	if c.BlockSize <= 0 {
		return fmt.Errorf("config: block_size must be > 0: %d", c.BlockSize)
	}
	if c.QueueCapacity < 1 {
		return fmt.Errorf("config: queue_capacity must be >= 1: %d", c.QueueCapacity)
	}
	if c.ListenAddr == "" {
		return fmt.Errorf("config: listen_addr must not be empty")
	}
	return nil
}
