package main

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/kernreg/internal/dump"
	"github.com/samcharles93/kernreg/internal/graph"
	"github.com/samcharles93/kernreg/internal/logger"
)

func dumpCmd(g *globals) *cli.Command {
	var (
		network string
		target  string
		enabled bool
		asJSON  bool
	)

	return &cli.Command{
		Name:  "dump",
		Usage: "Set the dump flag on a network member and print the resulting flags",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "network",
				Aliases:     []string{"n"},
				Usage:       "path to a network description (.yaml)",
				Required:    true,
				Destination: &network,
			},
			&cli.StringFlag{
				Name:        "target",
				Usage:       "dotted member path; empty targets the whole network",
				Destination: &target,
			},
			&cli.BoolFlag{
				Name:        "enabled",
				Usage:       "dump flag value (--enabled=false clears it)",
				Value:       true,
				Destination: &enabled,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print JSON",
				Destination: &asJSON,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			env := g.cfg.Environment()
			if err := dump.CheckSecurity(env); err != nil {
				return err
			}
			root, err := graph.LoadFile(network)
			if err != nil {
				return err
			}
			node, err := graph.Resolve(root, target)
			if err != nil {
				return err
			}
			ctx = logger.WithContext(ctx, logger.FromContext(ctx).With("network", root.Name()))
			if err := dump.SetDump(ctx, env, node, enabled); err != nil {
				return err
			}
			flags := dump.Collect(root)
			if asJSON {
				return printJSON(cmd.Root().Writer, flags)
			}
			return printFlags(cmd.Root().Writer, flags)
		},
	}
}

func printFlags(w io.Writer, flags []dump.Flag) error {
	width := 0
	for _, f := range flags {
		width = max(width, len(f.Path))
	}
	for _, f := range flags {
		value := f.Value
		if value == "" {
			value = "-"
		}
		if _, err := fmt.Fprintf(w, "%-*s  %-5s  %s\n", width, f.Path, value, f.Operator); err != nil {
			return err
		}
	}
	return nil
}
