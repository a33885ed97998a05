// Copyright © 2026 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/heroctl/internal/meta"
)

const bashCompletionScript = `# bash completion for heroctl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_heroctl()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "random catalog tui completion --help --version --url --timeout" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--color -c --no-color --output -o --sort -s --titles -t --no-titles --schema --examples --tldr"

    case "$cmd" in
        random)
            local opts="$common --count -n --history"
            ;;
        catalog)
            local opts="$common --attrs -a"
            ;;
        tui)
            local opts="--alt-screen --no-alt-screen --tldr"
            ;;
        completion)
            local opts="bash zsh"
            COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
        return 0
    fi

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}

complete -F _heroctl heroctl
`

const zshCompletionScript = `#compdef heroctl

_heroctl() {
  local -a cmds
  cmds=(
    'random:show random heroes'
    'catalog:list the hero catalog'
    'tui:browse heroes interactively'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-c --color --no-color)'{-c,--color}'[enable colored text]'
  '--no-color[disable colored text]'
  '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '(-t --titles --no-titles)'{-t,--titles}'[show titles]'
  '--no-titles[hide titles]'
  '--schema[dump schema]'
  '--examples[show examples]'
  '--tldr[show tldr page]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'heroctl commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    random)
      _arguments -C \
        $common \
        '(-n --count)'{-n,--count}'[number of heroes]:count' \
        '--history[show view history]'
      ;;
    catalog)
      _arguments -C \
        $common \
        '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs'
      ;;
    tui)
      _arguments -C \
        '--alt-screen[use the alternate screen]' \
        '--no-alt-screen[draw inline]' \
        '--tldr[show tldr page]'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _heroctl heroctl
`

func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	w := Writer(cmd)
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		if strings.HasSuffix(sh, "zsh") {
			fmt.Fprint(w, zshCompletionScript)
		} else if strings.HasSuffix(sh, "bash") {
			fmt.Fprint(w, bashCompletionScript)
		} else {
			fmt.Fprintln(os.Stderr, "usage: heroctl completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func CompletionCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "heroctl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
