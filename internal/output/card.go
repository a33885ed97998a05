// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/staranto/heroctl/internal/hero"
)

// Stat band and alignment colors.
const (
	ColorRed    = "#e74c3c"
	ColorOrange = "#e67e22"
	ColorYellow = "#f1c40f"
	ColorGreen  = "#2ecc71"
	ColorGray   = "#95a5a6"
)

const (
	barCells     = 10
	maxCardWidth = 72
	labelWidth   = 18
)

// CardOptions tune RenderCard.
type CardOptions struct {
	// Favorite adds the favorite marker next to the name.
	Favorite bool
	// Width of the card including its border. Zero sizes the card to the
	// terminal.
	Width int
}

// StatColor returns the bar color for a power stat value.
func StatColor(v int) string {
	switch {
	case v < 25:
		return ColorRed
	case v < 50:
		return ColorOrange
	case v < 75:
		return ColorYellow
	default:
		return ColorGreen
	}
}

// AlignmentColor returns the badge color for an alignment.
func AlignmentColor(a hero.Alignment) string {
	switch a {
	case hero.Good:
		return ColorGreen
	case hero.Bad:
		return ColorRed
	default:
		return ColorGray
	}
}

// StatBar draws v on a ten cell bar. The value is clamped for drawing only.
func StatBar(v int) string {
	filled := (min(max(v, 0), 100) + 5) / 10
	filled = min(filled, barCells)
	return strings.Repeat("█", filled) + strings.Repeat("░", barCells-filled)
}

// TerminalWidth returns the width of f, or def when f is not a terminal.
func TerminalWidth(f *os.File, def int) int {
	if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
		return w
	}
	return def
}

var (
	nameStyle    = lipgloss.NewStyle().Bold(true)
	subtleStyle  = lipgloss.NewStyle().Faint(true)
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	labelStyle   = lipgloss.NewStyle().Width(labelWidth)
	favStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorYellow))
	cardStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
)

// RenderCard lays out one hero. Absent optional fields are left off the card;
// the publisher, height and weight fall back to Unknown instead.
func RenderCard(r hero.Record, opts CardOptions) string {
	width := opts.Width
	if width <= 0 {
		width = min(TerminalWidth(os.Stdout, 80), maxCardWidth)
	}

	var b strings.Builder

	name := nameStyle.Render(r.Name)
	if opts.Favorite {
		name += " " + favStyle.Render("★")
	}
	b.WriteString(name + "\n")

	if fn, ok := r.DisplayFullName(); ok {
		b.WriteString(subtleStyle.Render(fn) + "\n")
	}

	a := r.Alignment()
	badge := lipgloss.NewStyle().
		Foreground(lipgloss.Color(AlignmentColor(a))).
		Bold(true).
		Render("[" + strings.ToUpper(a.String()) + "]")
	b.WriteString(badge + "  " + r.Biography.PublisherOrUnknown() + "\n\n")

	b.WriteString(fmt.Sprintf("%s%d/%d\n", labelStyle.Render("Total power"), r.Powerstats.Total(), hero.MaxTotal))
	for _, s := range r.Powerstats.Stats() {
		bar := lipgloss.NewStyle().Foreground(lipgloss.Color(StatColor(s.Value))).Render(StatBar(s.Value))
		b.WriteString(fmt.Sprintf("%s%s %3d\n", labelStyle.Render(s.Name), bar, s.Value))
	}

	section(&b, "Appearance",
		line("Gender", r.Appearance.Gender),
		line("Race", r.Appearance.Race),
		line("Height", hero.Some(r.Appearance.MetricHeight().Or(hero.Unknown))),
		line("Weight", hero.Some(r.Appearance.MetricWeight().Or(hero.Unknown))),
		line("Eyes", r.Appearance.EyeColor),
		line("Hair", r.Appearance.HairColor),
	)

	section(&b, "Biography",
		line("Alter egos", r.Biography.AlterEgos),
		line("Aliases", joined(r.Biography.Aliases)),
		line("Place of birth", r.Biography.PlaceOfBirth),
		line("First appearance", r.Biography.FirstAppearance),
	)

	section(&b, "Work",
		line("Occupation", r.Work.Occupation),
		line("Base", r.Work.Base),
	)

	section(&b, "Connections",
		line("Affiliation", r.Connections.GroupAffiliation),
		line("Relatives", r.Connections.Relatives),
	)

	if img := r.Images.Large(); img != "" {
		b.WriteString("\n" + subtleStyle.Render(img))
	}

	return cardStyle.Width(width - 2).Render(strings.TrimRight(b.String(), "\n"))
}

// line renders label and value, or "" when the value is absent.
func line(label string, value hero.Text) string {
	v, ok := value.Get()
	if !ok {
		return ""
	}
	return labelStyle.Render(label) + v
}

// section writes a titled block, skipping it when every line is empty.
func section(b *strings.Builder, title string, lines ...string) {
	var kept []string
	for _, l := range lines {
		if l != "" {
			kept = append(kept, l)
		}
	}
	if len(kept) == 0 {
		return
	}
	b.WriteString("\n" + sectionStyle.Render(title) + "\n")
	b.WriteString(strings.Join(kept, "\n") + "\n")
}

// joined folds a list of names into one Text, dropping sentinel entries.
func joined(values []string) hero.Text {
	var kept []string
	for _, v := range values {
		if t := hero.Some(v); t.Present() {
			kept = append(kept, t.String())
		}
	}
	return hero.Some(strings.Join(kept, ", "))
}
