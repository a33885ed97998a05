// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/staranto/heroctl/internal/hero"
	"github.com/staranto/heroctl/internal/meta"
	"github.com/staranto/heroctl/internal/output"
)

// CatalogDefaultAttrs are the columns of the catalog listing before --attrs.
var CatalogDefaultAttrs = []string{
	"id",
	"name",
	"biography.publisher|@unknown:publisher",
	"biography.alignment:alignment",
	"powerstats|@total:total",
}

// CatalogCommandAction is the action handler for the "catalog" subcommand. It
// lists the whole catalog projected onto --attrs.
func CatalogCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, "catalog") {
		return nil
	}

	w := Writer(cmd)
	if DumpSchemaIfRequested(cmd, w, reflect.TypeOf(hero.Record{})) ||
		DumpExamplesIfRequested(cmd, w) {
		return nil
	}

	attrs := BuildAttrs(cmd, CatalogDefaultAttrs...)
	log.Debugf("attrs: %v", attrs)

	client, err := NewCatalogClient(cmd)
	if err != nil {
		return err
	}

	records, err := client.Catalog(ctx)
	if err != nil {
		return err
	}
	log.Debugf("catalog holds %s heroes", humanize.Comma(int64(len(records))))

	doc, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}

	var raw bytes.Buffer
	raw.Write(doc)

	return output.SliceDiceSpit(raw, attrs, cmd, w)
}

// CatalogCommandBuilder constructs the cli.Command for "catalog", wiring
// metadata, flags, and action/validator handlers.
func CatalogCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	cb := &CommandBuilder{
		Name:      "catalog",
		Usage:     "list the hero catalog",
		UsageText: `heroctl catalog [@set] [options]`,
		Meta:      meta,
		Listing:   true,
		Flags: []cli.Flag{
			NewAttrsFlag("catalog"),
		},
		Action: CatalogCommandAction,
	}
	return cb.Build()
}
