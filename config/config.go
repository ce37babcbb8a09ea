// SPDX-FileCopyrightText: 2023 The ipv6watch authors
//
// SPDX-License-Identifier: MIT

// Package config loads ipv6watch's YAML run configuration: which resolver
// to ask, how wide to fan out, and where to put metrics and history.
// Missing values fall back to defaults, so an absent config file is fine.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the run configuration of an ipv6watch batch.
type Config struct {
	// Resolver is the "host:port" address of the DNS resolver to query.
	Resolver string `yaml:"resolver"`
	// Net selects the resolver transport, "udp" or "tcp".
	Net string `yaml:"net"`
	// Workers caps the number of concurrently resolving entities; it also
	// sizes the DNS connection pool.
	Workers int `yaml:"workers"`
	// Timeout bounds a single DNS exchange.
	Timeout Duration `yaml:"timeout"`
	// MetricsAddr, when set, serves Prometheus metrics on this address for
	// the duration of the run.
	MetricsAddr string `yaml:"metrics_addr"`
	// HistoryPath, when set, appends each run to this SQLite database.
	HistoryPath string `yaml:"history_path"`
	// LogLevel is a logrus level name such as "info" or "debug".
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	return &Config{
		Resolver: "9.9.9.9:53",
		Net:      "udp",
		Workers:  16,
		Timeout:  Duration(5 * time.Second),
		LogLevel: "info",
	}
}

// Load reads the YAML configuration from the specified path, filling in
// defaults for absent values. An empty path yields the plain defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults fills in missing values with defaults.
func (c *Config) applyDefaults() {
	def := Default()
	if c.Resolver == "" {
		c.Resolver = def.Resolver
	}
	if c.Net == "" {
		c.Net = def.Net
	}
	if c.Workers == 0 {
		c.Workers = def.Workers
	}
	if c.Timeout == 0 {
		c.Timeout = def.Timeout
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
}

// validate rejects configurations that cannot work.
func (c *Config) validate() error {
	if c.Net != "udp" && c.Net != "tcp" {
		return fmt.Errorf("config: net must be \"udp\" or \"tcp\", got %q", c.Net)
	}
	if c.Workers < 1 {
		return fmt.Errorf("config: workers must be at least 1, got %d", c.Workers)
	}
	return nil
}

// Duration is a time.Duration that unmarshals from YAML duration strings
// such as "5s" or "250ms".
type Duration time.Duration

// UnmarshalYAML parses a duration string.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var text string
	if err := node.Decode(&text); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(text)
	if err != nil {
		return fmt.Errorf("config: invalid duration %q: %w", text, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML renders the duration string form.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the plain time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
