// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the SSRFGuard configuration file: the URL policy plus
// client and logging settings. Fields absent from the file keep their
// documented defaults, so a minimal file can override a single rule.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/DaniilVdovin/SSRFGuard/internal/log"
	"github.com/DaniilVdovin/SSRFGuard/pkg/httpclient"
	"github.com/DaniilVdovin/SSRFGuard/pkg/urlpolicy"
)

// ErrInvalidConfig is returned when configuration validation fails.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config represents the complete SSRFGuard configuration.
type Config struct {
	Log    LogConfig         `yaml:"log"`
	Client ClientConfig      `yaml:"client"`
	Policy *urlpolicy.Policy `yaml:"policy"`
}

// LogConfig configures logging output.
type LogConfig struct {
	// Level sets the minimum log level (debug, info, warn, error).
	Level string `yaml:"level,omitempty"`

	// Format sets the output format (json, text).
	Format string `yaml:"format,omitempty"`

	// AddSource adds source file and line information to logs.
	AddSource bool `yaml:"add_source,omitempty"`
}

// ClientConfig configures the guarded HTTP client. Durations are Go duration
// strings ("30s", "100ms"). Pointer fields distinguish "absent" from zero so
// that omitting a key keeps the default.
type ClientConfig struct {
	Timeout                 string `yaml:"timeout,omitempty"`
	RetryAttempts           *int   `yaml:"retry_attempts,omitempty"`
	RetryBackoff            string `yaml:"retry_backoff,omitempty"`
	MaxBackoff              string `yaml:"max_backoff,omitempty"`
	UserAgent               string `yaml:"user_agent,omitempty"`
	AllowNonIdempotentRetry bool   `yaml:"allow_non_idempotent_retry,omitempty"`
	FollowRedirects         bool   `yaml:"follow_redirects,omitempty"`
	MaxRedirects            *int   `yaml:"max_redirects,omitempty"`
}

// Default returns a Config carrying the default policy, logging, and client
// settings.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: string(log.FormatJSON),
		},
		Policy: urlpolicy.Default(),
	}
}

// Load reads the configuration from a YAML file. An empty path returns the
// defaults. Keys present in the file override defaults; everything else is
// left untouched, including the policy's enabled flag.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	// A bare "policy:" key nils out the pre-filled defaults.
	if cfg.Policy == nil {
		cfg.Policy = urlpolicy.Default()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for coherence.
func (c *Config) Validate() error {
	if c.Policy == nil {
		return fmt.Errorf("%w: policy is required", ErrInvalidConfig)
	}
	if err := c.Policy.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.Log.Level)
	}

	switch strings.ToLower(c.Log.Format) {
	case "", string(log.FormatJSON), string(log.FormatText):
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalidConfig, c.Log.Format)
	}

	if _, err := c.ClientConfig(); err != nil {
		return err
	}

	return nil
}

// LoggerConfig converts the log section into an internal/log configuration.
func (c *Config) LoggerConfig() *log.Config {
	lc := log.DefaultConfig()
	if c.Log.Level != "" {
		lc.Level = c.Log.Level
	}
	if c.Log.Format != "" {
		lc.Format = log.Format(c.Log.Format)
	}
	lc.AddSource = c.Log.AddSource
	return lc
}

// ClientConfig builds the httpclient configuration: defaults overlaid with
// the file's client section and carrying the loaded policy.
func (c *Config) ClientConfig() (httpclient.Config, error) {
	cfg := httpclient.DefaultConfig()
	cfg.Policy = c.Policy

	var err error
	if cfg.Timeout, err = overrideDuration(cfg.Timeout, c.Client.Timeout, "timeout"); err != nil {
		return httpclient.Config{}, err
	}
	if cfg.RetryBackoff, err = overrideDuration(cfg.RetryBackoff, c.Client.RetryBackoff, "retry_backoff"); err != nil {
		return httpclient.Config{}, err
	}
	if cfg.MaxBackoff, err = overrideDuration(cfg.MaxBackoff, c.Client.MaxBackoff, "max_backoff"); err != nil {
		return httpclient.Config{}, err
	}

	if c.Client.RetryAttempts != nil {
		cfg.RetryAttempts = *c.Client.RetryAttempts
	}
	if c.Client.UserAgent != "" {
		cfg.UserAgent = c.Client.UserAgent
	}
	cfg.AllowNonIdempotentRetry = c.Client.AllowNonIdempotentRetry
	cfg.FollowRedirects = c.Client.FollowRedirects
	if c.Client.MaxRedirects != nil {
		cfg.MaxRedirects = *c.Client.MaxRedirects
	}

	if err := cfg.Validate(); err != nil {
		return httpclient.Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return cfg, nil
}

func overrideDuration(current time.Duration, value, key string) (time.Duration, error) {
	if value == "" {
		return current, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, key, err)
	}
	return d, nil
}
