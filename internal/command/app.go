// Copyright © 2026 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT
package command

import (
	"context"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/heroctl/internal/config"
	"github.com/staranto/heroctl/internal/meta"
	"github.com/staranto/heroctl/internal/session"
)

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	// The arg[1] immediately following the binary (arg[0]) is the heroctl
	// subcommand and also represents the namespace key to be used when retrieving
	// config values. arg[1] could be -h/--help, so ignore it if it appears to be
	// a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	cfg, _ := config.Load()
	config.Config.Namespace = ns
	cfg.Namespace = ns

	meta := meta.Meta{
		Args:    args,
		Config:  cfg,
		Context: ctx,
		Tracker: session.New(),
	}

	app := &cli.Command{
		Name:  "heroctl",
		Usage: "Superhero catalog browser",
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "heroctl version info",
				HideDefault: true,
			},
		}, NewSourceFlags()...),
	}

	app.Commands = append(app.Commands,
		RandomCommandBuilder(app, meta),
		CatalogCommandBuilder(app, meta),
		TuiCommandBuilder(app, meta),
		CompletionCommandBuilder(app, meta),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range append([]*cli.Command{app}, app.Commands...) {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}
