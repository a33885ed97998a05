// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/apex/log"

	"github.com/staranto/heroctl/internal/command"
	"github.com/staranto/heroctl/internal/config"
	mylog "github.com/staranto/heroctl/internal/log"
	"github.com/staranto/heroctl/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

func realMain() int {
	mylog.InitLogger()

	args := mangleArguments(os.Args)

	// Short-circuit --version/-v.
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return 0
		}
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	return 0
}

// mangleArguments fills in the tui command when none is given and expands
// argument sets. An argument set is a list of args stored in the config file
// under <command>.<set> and selected with @set anywhere after the command.
// Without an @set the "defaults" set, if any, is used.
func mangleArguments(args []string) []string {
	if len(args) < 2 {
		return append(slices.Clone(args), "tui")
	}

	// Root flags come first. Without a command after them, run the tui.
	if strings.HasPrefix(args[1], "-") {
		if hasCommand(args[1:]) {
			return args
		}
		for _, a := range args {
			if a == "--help" || a == "-h" {
				return args
			}
		}
		return append(slices.Clone(args), "tui")
	}

	// We know the first two args are going to be the executable and command.
	preamble := make([]string, 2)
	copy(preamble, args[:2])

	// Short-circuit for --help/-h. If help is requested, just keep the preamble
	// and add --help flag.
	for _, a := range args {
		if a == "--help" || a == "-h" {
			return append(preamble, "--help")
		}
	}

	args = slices.Clone(args)

	// See if there is a @set specified. If so, that becomes our insertion point
	// and the @set entry is removed from args.
	idx := 2
	set := "defaults"
	explicit := false
	for i, a := range args[idx:] {
		if strings.HasPrefix(a, "@") {
			set = a[1:]
			explicit = true
			idx += i
			args = append(args[:idx], args[idx+1:]...)
			break
		}
	}

	setArgs, err := config.GetStringSlice(args[1] + "." + set)
	if err != nil && explicit {
		log.Warnf("argument set %s.%s not found", args[1], set)
	}
	for _, arg := range setArgs {
		parts := strings.Fields(arg)
		args = append(args[:idx], append(parts, args[idx:]...)...)
		idx += len(parts)
	}

	log.Debugf("idx=%d, set=%s, args=%v", idx, set, args)
	return args
}

// rootValueFlags take a separate value unless given as --flag=value.
var rootValueFlags = []string{"--url", "--timeout"}

// hasCommand reports whether a non-flag argument follows the root flags.
func hasCommand(args []string) bool {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if !strings.HasPrefix(a, "-") {
			return true
		}
		if slices.Contains(rootValueFlags, a) {
			i++
		}
	}
	return false
}
