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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DaniilVdovin/SSRFGuard/internal/log"
	"github.com/DaniilVdovin/SSRFGuard/pkg/urlpolicy"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.NotNil(t, cfg.Policy)
	assert.True(t, cfg.Policy.Enabled)
	assert.Equal(t, []string{"http", "https"}, cfg.Policy.AllowedSchemes)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadOverridesPolicy(t *testing.T) {
	path := writeConfig(t, `
policy:
  enabled: true
  allowed_schemes: [https]
  allowed_domains: ["*.internal.example.com"]
  blocked_ports: [8080]
  min_port: 1024
  max_port: 65535
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"https"}, cfg.Policy.AllowedSchemes)
	assert.Equal(t, []string{"*.internal.example.com"}, cfg.Policy.AllowedDomains)
	assert.Equal(t, []int{8080}, cfg.Policy.BlockedPorts)
	assert.Equal(t, 1024, cfg.Policy.MinPort)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	require.NotNil(t, cfg.Policy)
	assert.True(t, cfg.Policy.Enabled)
	assert.True(t, cfg.Policy.BlockWellKnownServices)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "policy: [not: valid")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadInvalidPolicy(t *testing.T) {
	path := writeConfig(t, `
policy:
  enabled: true
  min_port: 5000
  max_port: 80
`)

	_, err := Load(path)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidateRejectsUnknownLogLevel(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "verbose"
	require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestValidateRejectsBadDuration(t *testing.T) {
	cfg := Default()
	cfg.Client.Timeout = "thirty seconds"
	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "timeout")
}

func TestClientConfigOverrides(t *testing.T) {
	attempts := 5
	cfg := Default()
	cfg.Client.Timeout = "10s"
	cfg.Client.RetryAttempts = &attempts
	cfg.Client.UserAgent = "probe/2.0"
	cfg.Policy = urlpolicy.Default()
	cfg.Policy.Enabled = false

	cc, err := cfg.ClientConfig()
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, cc.Timeout)
	assert.Equal(t, 5, cc.RetryAttempts)
	assert.Equal(t, "probe/2.0", cc.UserAgent)
	assert.Same(t, cfg.Policy, cc.Policy)
}

func TestClientConfigDefaults(t *testing.T) {
	cc, err := Default().ClientConfig()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cc.Timeout)
	assert.Equal(t, 3, cc.RetryAttempts)
	assert.False(t, cc.FollowRedirects)
}

func TestLoggerConfig(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "warn"
	cfg.Log.Format = "text"

	lc := cfg.LoggerConfig()
	assert.Equal(t, "warn", lc.Level)
	assert.Equal(t, log.FormatText, lc.Format)
}
