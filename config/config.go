// Copyright 2026 The fluid-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package config loads client configuration from YAML.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/lesha2r/fluid-fetch/request"
)

var validate = validator.New()

type Config struct {
	BaseURL   string            `yaml:"baseURL" validate:"omitempty,url"`
	Timeout   time.Duration     `yaml:"timeout" validate:"gte=0"`
	CacheTTL  time.Duration     `yaml:"cacheTTL" validate:"gte=0"`
	Headers   map[string]string `yaml:"headers"`
	Transport TransportConfig   `yaml:"transport"`
	Log       LogConfig         `yaml:"log"`
}

type TransportConfig struct {
	MaxIdleConns        int           `yaml:"maxIdleConns" validate:"gte=0"`
	MaxIdleConnsPerHost int           `yaml:"maxIdleConnsPerHost" validate:"gte=0"`
	IdleConnTimeout     time.Duration `yaml:"idleConnTimeout" validate:"gte=0"`
	DisableKeepAlives   bool          `yaml:"disableKeepAlives"`
}

type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=json text"`
}

// Load reads and parses the YAML configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	return Parse(data)
}

// Parse parses YAML configuration, applies defaults for omitted values
// and validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

func (cfg *Config) applyDefaults() {
	if cfg.Transport.MaxIdleConns <= 0 {
		cfg.Transport.MaxIdleConns = 100
	}

	if cfg.Transport.IdleConnTimeout <= 0 {
		cfg.Transport.IdleConnTimeout = 90 * time.Second
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)

	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)
}

// Validate checks the configuration's struct tags and default headers.
func (cfg *Config) Validate() error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	for name, value := range cfg.Headers {
		if err := request.ValidHeader(name, value); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
	}

	return nil
}

// NewTransport returns an HTTP transport tuned by t, starting from a
// clone of http.DefaultTransport.
func (t TransportConfig) NewTransport() *http.Transport {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.MaxIdleConns = t.MaxIdleConns
	if t.MaxIdleConnsPerHost > 0 {
		tr.MaxIdleConnsPerHost = t.MaxIdleConnsPerHost
	}
	tr.IdleConnTimeout = t.IdleConnTimeout
	tr.DisableKeepAlives = t.DisableKeepAlives
	return tr
}

// NewLogger returns a structured logger writing to w at the configured
// level and format.
func (l LogConfig) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: l.level()}
	if l.Format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func (l LogConfig) level() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
