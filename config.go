// SPDX-License-Identifier: MIT
package eveitems

import (
	"github.com/panjf2000/ants/v2"
	"github.com/sirupsen/logrus"

	"gitlab.com/fisherprime/eveitems/sde"
)

type (
	// Lookup resolves item names & type IDs.
	Lookup interface {
		ID(name string) (uint64, bool)
		Name(id uint64) (string, bool)
	}

	// Config defines configuration options for the Parser's operations.
	Config struct {
		// Logger for Parser messages.
		//
		// Preferring a public field to allow for sharing.
		Logger logrus.FieldLogger

		// Table used by ParseWithID, defaults to sde.Default.
		Table Lookup

		// Pool parses lines concurrently when set; the caller owns its lifecycle.
		Pool *ants.Pool

		Debug bool
	}

	// Option defines the Parser functional option type.
	Option func(*Parser)
)

// DefConfig obtains the package's default Parser Config.
func DefConfig() *Config {
	return &Config{
		Logger: logrus.New(),
	}
}

// Validate populates missing Config entries with defaults.
func (c *Config) Validate() {
	if c.Logger == nil {
		c.Logger = logrus.New()
	}
	if c.Table == nil {
		c.Table = sde.Default()
	}
}

// WithConfig configures the Parser Config; a nil cfg keeps the current one.
func WithConfig(cfg *Config) Option {
	return func(p *Parser) {
		if cfg != nil {
			p.cfg = cfg
		}
	}
}

// WithLogger configures the logger option.
func WithLogger(logger logrus.FieldLogger) Option { return func(p *Parser) { p.cfg.Logger = logger } }

// WithDebug configures the debug option.
func WithDebug(debug bool) Option { return func(p *Parser) { p.cfg.Debug = debug } }

// WithTable configures the name <-> type ID lookup.
func WithTable(table Lookup) Option { return func(p *Parser) { p.cfg.Table = table } }

// WithPool configures the goroutine pool used to parse lines.
func WithPool(pool *ants.Pool) Option { return func(p *Parser) { p.cfg.Pool = pool } }
