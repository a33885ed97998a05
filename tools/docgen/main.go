// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	md2man "github.com/cpuguy83/go-md2man/v2/md2man"
	"github.com/urfave/cli/v3"

	"github.com/staranto/heroctl/internal/command"
)

// Minimal doc generator. Walks the heroctl command tree and generates:
//   - docs/commands/heroctl-<cmd>.md, the markdown source
//   - docs/man/share/man1/heroctl-<cmd>.1 via md2man
//   - docs/tldr/heroctl-<cmd>.md from the --examples table

func main() {
	var (
		repoRoot           string
		writeOnlyIfChanged bool
	)

	flag.StringVar(&repoRoot, "root", ".", "repo root (default current dir)")
	flag.BoolVar(&writeOnlyIfChanged, "only-if-changed", true, "only write files if content changed")
	flag.Parse()

	commandsDir := filepath.Join(repoRoot, "docs", "commands")
	manOutDir := filepath.Join(repoRoot, "docs", "man", "share", "man1")
	tldrOutDir := filepath.Join(repoRoot, "docs", "tldr")

	for _, dir := range []string{commandsDir, manOutDir, tldrOutDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fatalf("creating output dir: %v", err)
		}
	}

	app, err := command.InitApp(context.Background(), []string{"heroctl"})
	if err != nil {
		fatalf("building command tree: %v", err)
	}

	var processed int
	for _, cmd := range app.Commands {
		if cmd.Hidden {
			continue
		}

		md := buildMarkdown(app, cmd, command.Examples[cmd.Name])
		mdPath := filepath.Join(commandsDir, fmt.Sprintf("heroctl-%s.md", cmd.Name))
		if err := writeFileIfChanged(mdPath, []byte(md), writeOnlyIfChanged); err != nil {
			fatalf("writing markdown for %s: %v", cmd.Name, err)
		}

		manPath := filepath.Join(manOutDir, fmt.Sprintf("heroctl-%s.1", cmd.Name))
		if err := writeFileIfChanged(manPath, md2man.Render([]byte(md)), writeOnlyIfChanged); err != nil {
			fatalf("writing man page for %s: %v", cmd.Name, err)
		}

		tldr := buildTLDR(cmd.Name, cmd.Usage, command.Examples[cmd.Name])
		tldrPath := filepath.Join(tldrOutDir, fmt.Sprintf("heroctl-%s.md", cmd.Name))
		if err := writeFileIfChanged(tldrPath, []byte(tldr), writeOnlyIfChanged); err != nil {
			fatalf("writing TLDR for %s: %v", cmd.Name, err)
		}

		processed++
	}

	if processed == 0 {
		fatalf("no commands found")
	}
}

func fatalf(f string, a ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", a...)
	os.Exit(1)
}

func writeFileIfChanged(path string, new []byte, onlyIfChanged bool) error {
	if !onlyIfChanged {
		return os.WriteFile(path, new, 0o644)
	}
	old, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return os.WriteFile(path, new, 0o644)
		}
		return err
	}
	if bytes.Equal(bytes.TrimSpace(old), bytes.TrimSpace(new)) {
		return nil
	}
	return os.WriteFile(path, new, 0o644)
}

// buildMarkdown renders a man page source for cmd in the md2man dialect. The
// root flags are listed under GLOBAL OPTIONS.
func buildMarkdown(root, cmd *cli.Command, examples [][2]string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# heroctl-%s 1 \"\" \"heroctl\" \"heroctl manual\"\n\n", cmd.Name)

	b.WriteString("## NAME\n\n")
	fmt.Fprintf(&b, "heroctl-%s - %s\n\n", cmd.Name, cmd.Usage)

	if cmd.UsageText != "" {
		b.WriteString("## SYNOPSIS\n\n")
		fmt.Fprintf(&b, "`%s`\n\n", cmd.UsageText)
	}

	writeFlags(&b, "OPTIONS", cmd.Flags)
	if root != nil {
		writeFlags(&b, "GLOBAL OPTIONS", root.Flags)
	}

	if len(examples) > 0 {
		b.WriteString("## EXAMPLES\n\n")
		for _, ex := range examples {
			fmt.Fprintf(&b, "%s\n\n", ex[1])
			fmt.Fprintf(&b, "    %s\n\n", ex[0])
		}
	}

	return b.String()
}

func writeFlags(b *strings.Builder, title string, flags []cli.Flag) {
	if len(flags) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", title)
	for _, f := range flags {
		// cli renders a flag as its names followed by a tab and the usage.
		names, usage, _ := strings.Cut(f.String(), "\t")
		fmt.Fprintf(b, "**%s**\n: %s\n\n", strings.TrimSpace(names), strings.TrimSpace(usage))
	}
}

func buildTLDR(cmd, short string, exs [][2]string) string {
	var b strings.Builder
	// Header
	b.WriteString("# heroctl-" + cmd + "\n\n")
	if short != "" {
		b.WriteString("> " + capitalize(short) + ".\n")
	} else {
		b.WriteString("> heroctl " + cmd + "\n")
	}
	b.WriteString("> More information: https://github.com/staranto/heroctl.\n\n")

	if len(exs) == 0 {
		// Fallback examples
		b.WriteString("- Show help for the command:\n\n")
		b.WriteString("`heroctl " + cmd + " --help`\n")
		b.WriteString("\n")
		return b.String()
	}

	for i, ex := range exs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- " + capitalize(strings.TrimSpace(ex[1])) + ":\n\n")
		b.WriteString("`" + sanitizeCommand(ex[0]) + "`\n")
	}
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func sanitizeCommand(s string) string {
	// For now, just compress runs of whitespace
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}
