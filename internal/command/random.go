// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/apex/log"
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/heroctl/internal/hero"
	"github.com/staranto/heroctl/internal/meta"
	"github.com/staranto/heroctl/internal/output"
	"github.com/staranto/heroctl/internal/session"
)

// RandomCommandAction is the action handler for the "random" subcommand. It
// picks --count heroes, records each view and renders them as cards or as a
// document.
func RandomCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, "random") {
		return nil
	}

	w := Writer(cmd)
	if DumpSchemaIfRequested(cmd, w, reflect.TypeOf(hero.Record{})) ||
		DumpExamplesIfRequested(cmd, w) {
		return nil
	}

	count := int(cmd.Int("count"))
	if err := FlagValidators(count, PositiveValidator, MaxCountValidator); err != nil {
		return fmt.Errorf("--count %w", err)
	}

	client, err := NewCatalogClient(cmd)
	if err != nil {
		return err
	}

	tracker := Tracker(m)
	var picks []hero.Record
	for range count {
		r, err := client.Random(ctx)
		if err != nil {
			return err
		}
		tracker.RecordView(r)
		picks = append(picks, r)
	}
	log.Debugf("picked %d of %d heroes", len(picks), client.Len())

	return emitPicks(cmd, w, tracker, picks)
}

func emitPicks(cmd *cli.Command, w io.Writer, tracker *session.Tracker, picks []hero.Record) error {
	format := cmd.String("output")
	history := cmd.Bool("history")

	if format != "text" {
		if !history {
			return output.EmitDocument(picks, format, w)
		}
		return output.EmitDocument(struct {
			Heroes  []hero.Record `json:"heroes" yaml:"heroes"`
			History []hero.Record `json:"history" yaml:"history"`
		}{picks, tracker.HistoryNewestFirst()}, format, w)
	}

	width := min(output.TerminalWidth(os.Stdout, 80), 72)
	for _, r := range picks {
		card := output.RenderCard(r, output.CardOptions{
			Favorite: tracker.IsFavorite(r.ID),
			Width:    width,
		})
		if _, err := fmt.Fprintln(w, card); err != nil {
			return err
		}
	}

	if history {
		if _, err := fmt.Fprintln(w, "History"); err != nil {
			return err
		}
		output.TableWriter(
			output.HistoryDataset(tracker.HistoryNewestFirst(), tracker.IsFavorite),
			output.HistoryAttrs(), cmd, w)
	}

	return nil
}

// RandomCommandBuilder constructs the cli.Command for "random", wiring
// metadata, flags, and action/validator handlers.
func RandomCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	cb := &CommandBuilder{
		Name:      "random",
		Usage:     "show random heroes",
		UsageText: `heroctl random [@set] [options]`,
		Meta:      meta,
		Listing:   true,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "count",
				Aliases: []string{"n"},
				Usage:   "number of heroes to pick",
				Value:   1,
				Sources: cli.NewValueSourceChain(
					yaml.YAML("random.count", altsrc.StringSourcer(cfg.Source)),
				),
			},
			&cli.BoolFlag{
				Name:  "history",
				Usage: "also show the heroes viewed this session",
			},
		},
		Action: RandomCommandAction,
	}
	return cb.Build()
}
