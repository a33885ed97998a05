// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/apex/log"
	tea "github.com/charmbracelet/bubbletea"
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/heroctl/internal/meta"
	"github.com/staranto/heroctl/internal/tui"
)

// runTUI is swapped out by tests.
var runTUI = tui.Run

// TuiCommandAction is the action handler for the "tui" subcommand. It hands
// the catalog client and the session tracker to the interactive browser.
func TuiCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, "tui") {
		return nil
	}

	client, err := NewCatalogClient(cmd)
	if err != nil {
		return err
	}

	var opts []tea.ProgramOption
	if cmd.Bool("alt-screen") {
		opts = append(opts, tea.WithAltScreen())
	}

	return runTUI(ctx, client, Tracker(m), opts...)
}

// TuiCommandBuilder constructs the cli.Command for "tui".
func TuiCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	cb := &CommandBuilder{
		Name:      "tui",
		Usage:     "browse heroes interactively",
		UsageText: `heroctl [tui] [options]`,
		Meta:      meta,
		Flags: []cli.Flag{
			&cli.BoolWithInverseFlag{
				Name:  "alt-screen",
				Usage: "use the alternate screen buffer",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("tui.alt-screen", altsrc.StringSourcer(cfg.Source)),
				),
				Value: true,
			},
		},
		Action: TuiCommandAction,
	}
	return cb.Build()
}
