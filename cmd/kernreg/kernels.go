package main

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/kernreg/internal/kernel"
	"github.com/samcharles93/kernreg/internal/logger"
	"github.com/samcharles93/kernreg/internal/registry"
)

func kernelsCmd(g *globals) *cli.Command {
	return &cli.Command{
		Name:  "kernels",
		Usage: "Inspect registered kernels",
		Commands: []*cli.Command{
			kernelsListCmd(g),
			kernelsShowCmd(g),
		},
	}
}

func kernelsListCmd(g *globals) *cli.Command {
	var (
		backend string
		asJSON  bool
	)

	return &cli.Command{
		Name:  "list",
		Usage: "List operator names with registered kernels",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "backend",
				Usage:       "only list operators with a kernel for this backend",
				Destination: &backend,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print JSON",
				Destination: &asJSON,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			reg, err := loadRegistry(ctx, g.cfg.OpInfoDir)
			if err != nil {
				return err
			}
			names := filterBackend(reg, backend)
			logger.FromContext(ctx).Debug("listing kernels", "operators", len(names), "backend", backend)
			if asJSON {
				return printJSON(cmd.Root().Writer, names)
			}
			return printNames(cmd.Root().Writer, reg, names)
		},
	}
}

func kernelsShowCmd(g *globals) *cli.Command {
	var asJSON bool

	return &cli.Command{
		Name:      "show",
		Usage:     "Show every kernel registered for an operator",
		ArgsUsage: "NAME",
		Flags: []cli.Flag{
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
			reg, err := loadRegistry(ctx, g.cfg.OpInfoDir)
			if err != nil {
				return err
			}
			descs, err := reg.Lookup(name)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.Root().Writer, descs)
			}
			return printDescriptors(cmd.Root().Writer, descs)
		},
	}
}

func filterBackend(reg *registry.Registry, backend string) []string {
	names := reg.Names()
	if backend == "" {
		return names
	}
	return slices.DeleteFunc(names, func(name string) bool {
		backends, err := reg.Backends(name)
		return err != nil || !slices.Contains(backends, backend)
	})
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", b)
	return err
}

func printNames(w io.Writer, reg *registry.Registry, names []string) error {
	width := 0
	for _, name := range names {
		width = max(width, len(name))
	}
	for _, name := range names {
		descs, err := reg.Lookup(name)
		if err != nil {
			return err
		}
		backends, err := reg.Backends(name)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%-*s  %d kernel(s)  %s\n", width, name, len(descs), strings.Join(backends, ",")); err != nil {
			return err
		}
	}
	return nil
}

func printDescriptors(w io.Writer, descs []kernel.Descriptor) error {
	for i, d := range descs {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s/%s\n", d.Backend, d.Impl)
		fmt.Fprintf(w, "  dynamic shape: %t\n", d.DynamicShape)
		if d.AllSame {
			fmt.Fprintln(w, "  all same:      true")
		}
		for _, out := range slices.Sorted(maps.Keys(d.OutInRef)) {
			fmt.Fprintf(w, "  ref:           output %d -> input %d\n", out, d.OutInRef[out])
		}
		for j, c := range d.Combinations {
			fmt.Fprintf(w, "  [%d] %s -> %s\n", j, joinTypes(c.Inputs), joinTypes(c.Outputs))
		}
	}
	return nil
}

func joinTypes(ts []kernel.DataType) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
