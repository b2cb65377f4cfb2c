// SPDX-License-Identifier: MIT

// Package config loads the eveitems application configuration from TOML or YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type (
	// Config defines the application's configuration.
	Config struct {
		// LogLevel is a logrus level name.
		LogLevel string `toml:"log_level" yaml:"log_level" validate:"required,oneof=trace debug info warn warning error fatal panic"`
		Debug    bool   `toml:"debug" yaml:"debug"`

		// SDEPath is an optional invTypes.csv replacing the embedded excerpt.
		SDEPath string `toml:"sde_path" yaml:"sde_path" validate:"omitempty,file"`

		// Workers sizes the line parsing pool, 0 parses sequentially.
		Workers int `toml:"workers" yaml:"workers" validate:"gte=0,lte=4096"`

		Server Server `toml:"server" yaml:"server"`
	}

	// Server defines the HTTP API configuration.
	Server struct {
		Addr           string        `toml:"addr" yaml:"addr" validate:"required,hostname_port"`
		AllowedOrigins []string      `toml:"allowed_origins" yaml:"allowed_origins"`
		MaxBodyBytes   int64         `toml:"max_body_bytes" yaml:"max_body_bytes" validate:"gt=0"`
		CacheTTL       time.Duration `toml:"cache_ttl" yaml:"cache_ttl" validate:"gte=0"`
		ReadTimeout    time.Duration `toml:"read_timeout" yaml:"read_timeout" validate:"gt=0"`
		WriteTimeout   time.Duration `toml:"write_timeout" yaml:"write_timeout" validate:"gt=0"`
	}
)

const (
	defAddr         = "localhost:8080"
	defMaxBodyBytes = 1 << 20
	defCacheTTL     = 5 * time.Minute
	defTimeout      = 15 * time.Second
)

// Configuration errors.
var (
	ErrUnknownFormat = errors.New("unknown configuration format")
	ErrInvalidConfig = errors.New("invalid configuration")
)

var validate = validator.New()

// Default obtains the default Config.
func Default() *Config {
	return &Config{
		LogLevel: logrus.InfoLevel.String(),
		Server: Server{
			Addr:           defAddr,
			AllowedOrigins: []string{"*"},
			MaxBodyBytes:   defMaxBodyBytes,
			CacheTTL:       defCacheTTL,
			ReadTimeout:    defTimeout,
			WriteTimeout:   defTimeout,
		},
	}
}

// Load reads a configuration file over the defaults; the format is selected by the file
// extension (.toml, .yaml, .yml).
func Load(path string) (cfg *Config, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	cfg = Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	if err != nil {
		cfg, err = nil, fmt.Errorf("%s: %w", path, err)
		return
	}

	if err = cfg.Validate(); err != nil {
		cfg, err = nil, fmt.Errorf("%s: %w", path, err)
	}

	return
}

// Validate checks the Config's values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return nil
}

// Level obtains the configured logrus.Level; debug forces logrus.DebugLevel.
func (c *Config) Level() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	if c.Debug && level < logrus.DebugLevel {
		level = logrus.DebugLevel
	}

	return level
}
