package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/kernreg/internal/config"
	"github.com/samcharles93/kernreg/internal/logger"
	"github.com/samcharles93/kernreg/internal/opinfo"
	"github.com/samcharles93/kernreg/internal/ops/tbe"
	"github.com/samcharles93/kernreg/internal/registry"
)

// globals holds root flags and the configuration resolved in before.
type globals struct {
	configPath string
	logLevel   string
	logFormat  string
	opInfoDir  string

	cfg config.Config
}

func (g *globals) flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "path to config.yaml",
			Value:       config.Path(),
			Destination: &g.configPath,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &g.logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (auto, pretty, json, text)",
			Value:       "auto",
			Destination: &g.logFormat,
		},
		&cli.StringFlag{
			Name:        "op-info-dir",
			Usage:       "directory of extra op-info tables (.yaml, .json)",
			Destination: &g.opInfoDir,
		},
	}
}

func (g *globals) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return ctx, fmt.Errorf("load config: %w", err)
	}
	g.apply(cmd, &cfg)
	g.cfg = cfg

	log, err := logger.Open(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return ctx, err
	}
	return logger.WithContext(ctx, log), nil
}

// apply lets explicitly set flags win over the config file.
func (g *globals) apply(cmd *cli.Command, cfg *config.Config) {
	if cmd.IsSet("log-level") || cfg.LogLevel == "" {
		cfg.LogLevel = g.logLevel
	}
	if cmd.IsSet("log-format") || cfg.LogFormat == "" {
		cfg.LogFormat = g.logFormat
	}
	if cmd.IsSet("op-info-dir") {
		cfg.OpInfoDir = g.opInfoDir
	}
}

// loadRegistry builds the frozen registry from the built-in TBE tables
// followed by any op-info files under dir.
func loadRegistry(ctx context.Context, dir string) (*registry.Registry, error) {
	units := tbe.Units()
	extra, err := opinfo.LoadDir(dir)
	if err != nil {
		return nil, err
	}
	return registry.Build(ctx, append(units, extra...)...)
}
