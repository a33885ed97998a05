// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the bindings for the hero browser.
type keyMap struct {
	Next     key.Binding
	Favorite key.Binding
	History  key.Binding
	Up       key.Binding
	Down     key.Binding
	Select   key.Binding
	Retry    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// ShortHelp returns the bindings for the help bar.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Favorite, k.History, k.Help, k.Quit}
}

// FullHelp returns the bindings grouped for expanded help.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Favorite, k.Retry},
		{k.History, k.Up, k.Down, k.Select},
		{k.Help, k.Quit},
	}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("n", " "),
			key.WithHelp("n/space", "next hero"),
		),
		Favorite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "favorite"),
		),
		History: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "history"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "show hero"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "try again"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
