// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os"
	"os/exec"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/staranto/heroctl/internal/catalog"
	"github.com/staranto/heroctl/internal/config"
)

func init() {
	cfg, _ = config.Load()
}

var cfg config.Type

// A cli flag keeps its parsed value, so every command builds its own.
func newExamplesFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "examples",
		Usage:       "show example usages",
		HideDefault: true,
	}
}

func newSchemaFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "schema",
		Usage:       "dump the hero record schema",
		HideDefault: true,
	}
}

func newTldrFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "tldr",
		Usage:       "show tldr page",
		Hidden:      !pathHas("tldr"),
		HideDefault: true,
	}
}

// NewSourceFlags are the root flags that locate the catalog.
func NewSourceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "url",
			Usage: "superhero catalog document",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("HEROCTL_URL"),
				yaml.YAML("source.url", altsrc.StringSourcer(cfg.Source)),
			),
			Value: catalog.DefaultURL,
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator)
			},
		},
		// source.timeout in the config file is read in NewCatalogClient so that it
		// may be given in plain seconds.
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "catalog request timeout",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("HEROCTL_TIMEOUT"),
			),
			Value: catalog.DefaultTimeout,
		},
	}
}

// NewGlobalFlags are the output flags shared by the listing commands. params[0]
// is the command name and namespaces the config file lookups.
func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.BoolWithInverseFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"color", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("color", altsrc.StringSourcer(cfg.Source)),
			),
			Value: isTerminal(os.Stdout),
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format (text, json, yaml, raw)",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"output", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("output", altsrc.StringSourcer(cfg.Source)),
			),
			Value: "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"sort", altsrc.StringSourcer(cfg.Source)),
			),
		},
		&cli.BoolWithInverseFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"titles", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("titles", altsrc.StringSourcer(cfg.Source)),
			),
			Value: false,
		},
	}

	return
}

// NewAttrsFlag selects the columns of a listing. ns.attrs, then attrs, in the
// config file supply a default.
func NewAttrsFlag(ns string) *cli.StringFlag {
	return NameSpacedValueChainFlagFromConfigFile(ns, cfg.Source, &cli.StringFlag{
		Name:    "attrs",
		Aliases: []string{"a"},
		Usage:   "comma-separated list of attributes to include in results",
		Sources: cli.NewValueSourceChain(cli.EnvVar("HEROCTL_ATTRS")),
	})
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}

// pathHas checks if the given executable is on the PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
