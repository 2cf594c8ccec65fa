package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	g := &globals{}
	return &cli.Command{
		Name:   "kernreg",
		Usage:  "Operator kernel registry and dump controls",
		Flags:  g.flags(),
		Before: g.before,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			kernelsCmd(g),
			selectCmd(g),
			dumpCmd(g),
			serveCmd(g),
			versionCmd(),
		},
	}
}
