// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"reflect"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/heroctl/internal/attrs"
	"github.com/staranto/heroctl/internal/catalog"
	"github.com/staranto/heroctl/internal/config"
	"github.com/staranto/heroctl/internal/meta"
	"github.com/staranto/heroctl/internal/output"
	"github.com/staranto/heroctl/internal/session"
)

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr heroctl <subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "heroctl", subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}

// DumpSchemaIfRequested prints the attribute paths of the provided type when
// --schema is set, and returns true if it handled the request.
func DumpSchemaIfRequested(cmd *cli.Command, w io.Writer, t reflect.Type) bool {
	if cmd.Bool("schema") {
		output.DumpSchema(w, t)
		return true
	}
	return false
}

// DumpExamplesIfRequested prints the command's examples when --examples is
// set, and returns true if it handled the request.
func DumpExamplesIfRequested(cmd *cli.Command, w io.Writer) bool {
	if cmd.Bool("examples") {
		output.DumpExamples(w, Examples[cmd.Name])
		return true
	}
	return false
}

// BuildAttrs constructs an AttrList with defaults and optional extras from
// --attrs, then applies the global transform spec.
func BuildAttrs(cmd *cli.Command, defaults ...string) (al attrs.AttrList) {
	//nolint:errcheck
	{
		for _, d := range defaults {
			al.Set(d)
		}
		if extras := cmd.String("attrs"); extras != "" {
			al.Set(extras)
		}
		al.SetGlobalTransformSpec()
	}
	return
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// Tracker returns the session tracker from meta, or a fresh one when the
// command was built without it.
func Tracker(m meta.Meta) *session.Tracker {
	if m.Tracker == nil {
		return session.New()
	}
	return m.Tracker
}

// Writer is where command output goes.
func Writer(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.Writer != nil {
		return root.Writer
	}
	return os.Stdout
}

// NewCatalogClient builds the catalog client from --url and --timeout. When
// --timeout is not given, source.timeout from the config file is used and may
// be either seconds or a duration string.
func NewCatalogClient(cmd *cli.Command) (*catalog.Client, error) {
	timeout := cmd.Duration("timeout")
	if !cmd.IsSet("timeout") {
		var err error
		if timeout, err = config.GetDuration("source.timeout", catalog.DefaultTimeout); err != nil {
			return nil, fmt.Errorf("source.timeout %w", err)
		}
		if err := FlagValidators(timeout.Seconds(), NonNegativeValidator); err != nil {
			return nil, fmt.Errorf("source.timeout %w", err)
		}
	}

	url := cmd.String("url")
	log.Debugf("catalog url=%s timeout=%s", url, timeout)

	return catalog.NewClient(
		catalog.WithURL(url),
		catalog.WithTimeout(timeout),
	)
}

// CommandBuilder is a helper that constructs a cli.Command for the heroctl
// subcommands using a consistent pattern. The builder wires metadata and the
// tldr flag, and for listing commands adds the schema, examples and global
// output flags along with the validators.
type CommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
	// Listing commands take the output flags.
	Listing bool
}

// Build returns a configured cli.Command from the builder.
func (cb *CommandBuilder) Build() *cli.Command {
	flags := append([]cli.Flag{newTldrFlag()}, cb.Flags...)
	if cb.Listing {
		flags = append(flags, newExamplesFlag(), newSchemaFlag())
		flags = append(flags, NewGlobalFlags(cb.Name)...)
	}

	return &cli.Command{
		Name:      cb.Name,
		Usage:     cb.Usage,
		UsageText: cb.UsageText,
		Metadata: map[string]any{
			"meta": cb.Meta,
		},
		Flags: flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: cb.Action,
	}
}
