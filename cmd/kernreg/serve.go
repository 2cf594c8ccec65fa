package main

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/kernreg/internal/api"
	"github.com/samcharles93/kernreg/internal/logger"
)

func serveCmd(g *globals) *cli.Command {
	var (
		addr        string
		readTimeout time.Duration
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the registry and dump controls over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address",
				Value:       "127.0.0.1:8080",
				Destination: &addr,
			},
			&cli.DurationFlag{
				Name:        "read-timeout",
				Usage:       "read header timeout",
				Value:       30 * time.Second,
				Destination: &readTimeout,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			if g.cfg.ServerAddress != "" && !cmd.IsSet("addr") {
				addr = g.cfg.ServerAddress
			}

			reg, err := loadRegistry(ctx, g.cfg.OpInfoDir)
			if err != nil {
				return err
			}
			env := g.cfg.Environment()
			server := api.NewServer(reg, api.NewNetworkStore(), env, log)
			e := echo.New()
			e.Use(middleware.RequestLogger())
			e.Use(middleware.Recover())
			server.Register(e)
			log.Info("starting server", "address", addr, "operators", reg.Len(),
				"device_target", env.DeviceTarget, "mode", env.Mode, "security", env.Security)
			sc := echo.StartConfig{
				Address: addr,
				BeforeServeFunc: func(srv *http.Server) error {
					srv.ReadHeaderTimeout = readTimeout
					return nil
				},
			}
			return sc.Start(ctx, e)
		},
	}
}
