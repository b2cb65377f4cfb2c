// SPDX-License-Identifier: MIT
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tomlSrc = `
log_level = "warn"
workers = 8

[server]
addr = "0.0.0.0:9090"
allowed_origins = ["https://example.com"]
cache_ttl = "1m"
`

const yamlSrc = `
log_level: warn
workers: 8
server:
  addr: 0.0.0.0:9090
  allowed_origins:
    - https://example.com
  cache_ttl: 1m
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name string
		file string
		src  string
	}{
		{name: "toml", file: "eveitems.toml", src: tomlSrc},
		{name: "yaml", file: "eveitems.yaml", src: yamlSrc},
		{name: "yml", file: "eveitems.yml", src: yamlSrc},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeFile(t, tt.file, tt.src))
			require.NoError(t, err)

			assert.Equal(t, "warn", cfg.LogLevel)
			assert.Equal(t, 8, cfg.Workers)
			assert.Equal(t, "0.0.0.0:9090", cfg.Server.Addr)
			assert.Equal(t, []string{"https://example.com"}, cfg.Server.AllowedOrigins)
			assert.Equal(t, time.Minute, cfg.Server.CacheTTL)

			// Unset values keep their defaults.
			assert.Equal(t, int64(defMaxBodyBytes), cfg.Server.MaxBodyBytes)
			assert.Equal(t, defTimeout, cfg.Server.ReadTimeout)
		})
	}
}

func TestLoad_errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		src     string
		wantErr error
	}{
		{name: "unknown format", file: "eveitems.ini", src: "workers=1", wantErr: ErrUnknownFormat},
		{name: "invalid level", file: "eveitems.toml", src: `log_level = "loud"`, wantErr: ErrInvalidConfig},
		{name: "negative workers", file: "eveitems.yaml", src: "workers: -1", wantErr: ErrInvalidConfig},
		{name: "missing sde file", file: "eveitems.toml", src: `sde_path = "/does/not/exist.csv"`, wantErr: ErrInvalidConfig},
		{name: "invalid address", file: "eveitems.toml", src: "[server]\naddr = \"nowhere\"", wantErr: ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeFile(t, tt.file, tt.src))
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, cfg)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, logrus.InfoLevel, cfg.Level())

	cfg.Debug = true
	assert.Equal(t, logrus.DebugLevel, cfg.Level())

	cfg.LogLevel = "trace"
	assert.Equal(t, logrus.TraceLevel, cfg.Level())
}
