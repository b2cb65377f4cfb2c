// SPDX-License-Identifier: MIT

// Command eveitems parses pasted inventory text into item names & quantities.
package main

import (
	"fmt"
	"os"

	"github.com/panjf2000/ants/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"gitlab.com/fisherprime/eveitems"
	"gitlab.com/fisherprime/eveitems/internal/config"
	"gitlab.com/fisherprime/eveitems/sde"
)

var (
	configPath string
	logLevel   string
	debug      bool

	logger = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:           "eveitems",
	Short:         "Parse pasted inventory text into items & quantities",
	Long:          `eveitems converts text copied from cargo, fitting, contract & multibuy windows into a list of item names & quantities.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Configuration file (.toml, .yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level, overrides the configuration")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug output")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(serveCmd)

	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the configuration file, if any, & applies the flag overrides.
func loadConfig() (cfg *config.Config, err error) {
	cfg = config.Default()
	if configPath != "" {
		if cfg, err = config.Load(configPath); err != nil {
			return
		}
	}

	if logLevel != "" {
		cfg.LogLevel = logLevel
		if err = cfg.Validate(); err != nil {
			return
		}
	}
	cfg.Debug = cfg.Debug || debug
	logger.SetLevel(cfg.Level())

	return
}

// newParser builds the eveitems.Parser described by cfg.
//
// release frees the Parser's goroutine pool.
func newParser(cfg *config.Config) (p *eveitems.Parser, release func(), err error) {
	release = func() {}

	table := sde.Default()
	if cfg.SDEPath != "" {
		if table, err = sde.LoadFile(cfg.SDEPath); err != nil {
			return
		}
		logger.Debugf("loaded %d types from %s", table.Len(), cfg.SDEPath)
	}

	opts := []eveitems.Option{
		eveitems.WithLogger(logger),
		eveitems.WithDebug(cfg.Debug),
		eveitems.WithTable(table),
	}

	if cfg.Workers > 0 {
		var pool *ants.Pool
		if pool, err = ants.NewPool(cfg.Workers, ants.WithLogger(logger)); err != nil {
			return
		}
		release = pool.Release
		opts = append(opts, eveitems.WithPool(pool))
	}
	p = eveitems.New(opts...)

	return
}
