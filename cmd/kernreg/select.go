package main

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/kernreg/internal/kernel"
	"github.com/samcharles93/kernreg/internal/registry"
)

func selectCmd(g *globals) *cli.Command {
	var (
		inputs  []string
		outputs []string
		backend string
		dynamic bool
		asJSON  bool
	)

	return &cli.Command{
		Name:      "select",
		Usage:     "Pick the kernel an operator would run with for a signature",
		ArgsUsage: "NAME",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:        "in",
				Usage:       "input dtype[:format], repeatable",
				Destination: &inputs,
			},
			&cli.StringSliceFlag{
				Name:        "out",
				Usage:       "output dtype[:format], repeatable",
				Destination: &outputs,
			},
			&cli.StringFlag{
				Name:        "backend",
				Usage:       "restrict selection to one backend",
				Destination: &backend,
			},
			&cli.BoolFlag{
				Name:        "dynamic",
				Usage:       "prefer dynamic-shape kernels",
				Destination: &dynamic,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print JSON",
				Destination: &asJSON,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				return fmt.Errorf("operator name is required")
			}
			in, err := parseTypes(inputs)
			if err != nil {
				return fmt.Errorf("--in: %w", err)
			}
			out, err := parseTypes(outputs)
			if err != nil {
				return fmt.Errorf("--out: %w", err)
			}
			reg, err := loadRegistry(ctx, g.cfg.OpInfoDir)
			if err != nil {
				return err
			}
			sel, err := reg.Select(name, in, out, registry.SelectOptions{Backend: backend, DynamicShape: dynamic})
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.Root().Writer, sel)
			}
			return printSelection(cmd.Root().Writer, sel)
		},
	}
}

func parseTypes(specs []string) ([]kernel.DataType, error) {
	out := make([]kernel.DataType, 0, len(specs))
	for _, s := range specs {
		dt, err := kernel.ParseDataType(s)
		if err != nil {
			return nil, err
		}
		out = append(out, dt)
	}
	return out, nil
}

func printSelection(w io.Writer, sel registry.Selection) error {
	d := sel.Descriptor
	c := d.Combinations[sel.Combination]
	_, err := fmt.Fprintf(w, "%s/%s combination %d: %s -> %s\n",
		d.Backend, d.Impl, sel.Combination, joinTypes(c.Inputs), joinTypes(c.Outputs))
	return err
}
