// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

// Examples are the --examples tables for each subcommand, as command and
// description pairs. tools/docgen renders them into the tldr pages too.
var Examples = map[string][][2]string{
	"random": {
		{"heroctl random", "show one random hero"},
		{"heroctl random -n 3 --history", "show three heroes and what has been seen"},
		{"heroctl random -o json", "emit the hero record as json"},
		{"heroctl random @trio", "use the trio argument set from the config file"},
	},
	"catalog": {
		{"heroctl catalog", "list every hero"},
		{"heroctl catalog -s -total", "strongest heroes first"},
		{"heroctl catalog -a appearance.race:race", "add a race column"},
		{"heroctl catalog -a '!id,name::u'", "drop the id and shout the names"},
		{"heroctl catalog -o yaml", "emit the listing as yaml"},
	},
	"tui": {
		{"heroctl", "browse heroes interactively"},
		{"heroctl tui --no-alt-screen", "browse without taking over the screen"},
	},
}
