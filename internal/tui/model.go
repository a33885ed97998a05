// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/apex/log"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize/english"

	"github.com/staranto/heroctl/internal/catalog"
	"github.com/staranto/heroctl/internal/hero"
	"github.com/staranto/heroctl/internal/output"
	"github.com/staranto/heroctl/internal/session"
)

// Picker hands out random heroes. *catalog.Client satisfies it.
type Picker interface {
	Random(ctx context.Context) (hero.Record, error)
}

type state int

const (
	stateWelcome state = iota
	stateLoading
	stateHero
	stateError
)

// Text shown by the browser.
const (
	WelcomeTitle   = "Ready to meet heroes?"
	LoadingText    = "Searching for hero..."
	ErrorTitle     = "Oops!"
	GenericFailure = "Unable to load superhero"
)

const defaultCardWidth = 72

// heroMsg delivers the result of one pick back to Update.
type heroMsg struct {
	Hero hero.Record
	Err  error
}

// Model is the Bubble Tea model for the hero browser. Only one pick is in
// flight at a time; "next" is ignored while loading.
type Model struct {
	ctx     context.Context
	picker  Picker
	tracker *session.Tracker

	keys    keyMap
	help    help.Model
	spinner spinner.Model

	state   state
	current hero.Record
	err     error

	showHistory bool
	cursor      int

	width  int
	height int
}

// NewModel creates a Model on the welcome screen.
func NewModel(ctx context.Context, picker Picker, tracker *session.Tracker) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	return Model{
		ctx:     ctx,
		picker:  picker,
		tracker: tracker,
		keys:    defaultKeyMap(),
		help:    help.New(),
		spinner: s,
	}
}

// Init has nothing to do until the first key press.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case heroMsg:
		if msg.Err != nil {
			log.WithError(msg.Err).Warn("hero pick failed")
			m.state = stateError
			m.err = msg.Err
			return m, nil
		}
		m.tracker.RecordView(msg.Hero)
		m.current = msg.Hero
		m.err = nil
		m.state = stateHero
		return m, nil

	case spinner.TickMsg:
		if m.state != stateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Next):
		if m.state == stateLoading {
			log.Debug("next ignored while loading")
			return m, nil
		}
		return m.pick()

	case key.Matches(msg, m.keys.Retry):
		if m.state == stateError {
			return m.pick()
		}

	case key.Matches(msg, m.keys.Favorite):
		if m.state == stateHero {
			fav := m.tracker.ToggleFavorite(m.current.ID)
			log.Debugf("favorite %d: %v", m.current.ID, fav)
		}

	case key.Matches(msg, m.keys.History):
		m.showHistory = !m.showHistory
		m.cursor = 0

	case key.Matches(msg, m.keys.Up):
		if m.showHistory && m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.showHistory && m.cursor < m.tracker.HistoryLen()-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		if !m.showHistory {
			return m, nil
		}
		history := m.tracker.HistoryNewestFirst()
		if m.cursor < len(history) {
			// Revisiting from the history is not a new view.
			m.current = history[m.cursor]
			m.state = stateHero
			m.err = nil
			m.showHistory = false
		}
	}

	return m, nil
}

// pick moves to the loading state and starts one Random call.
func (m Model) pick() (tea.Model, tea.Cmd) {
	m.state = stateLoading
	m.showHistory = false

	ctx, picker := m.ctx, m.picker
	fetch := func() tea.Msg {
		h, err := picker.Random(ctx)
		return heroMsg{Hero: h, Err: err}
	}

	return m, tea.Batch(m.spinner.Tick, fetch)
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	subtleStyle = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(output.ColorRed))
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(output.ColorYellow))
)

// View renders the header, the current screen and the help bar.
func (m Model) View() string {
	parts := []string{m.viewHeader()}

	if m.showHistory {
		parts = append(parts, m.viewHistory())
	} else {
		parts = append(parts, m.viewBody())
	}

	parts = append(parts, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewHeader() string {
	header := titleStyle.Render("heroctl")
	if n := m.tracker.HistoryLen(); n > 0 {
		header += subtleStyle.Render(fmt.Sprintf("  %s viewed · %s",
			english.Plural(n, "hero", "heroes"),
			english.Plural(m.tracker.FavoriteCount(), "favorite", "favorites")))
	}
	return header + "\n"
}

func (m Model) viewBody() string {
	switch m.state {
	case stateLoading:
		return fmt.Sprintf("%s %s\n", m.spinner.View(), LoadingText)
	case stateHero:
		return output.RenderCard(m.current, output.CardOptions{
			Favorite: m.tracker.IsFavorite(m.current.ID),
			Width:    m.cardWidth(),
		}) + "\n"
	case stateError:
		return fmt.Sprintf("%s\n%s\n%s\n",
			errorStyle.Render(ErrorTitle),
			ErrorMessage(m.err),
			subtleStyle.Render("Press r to try again."))
	default:
		return fmt.Sprintf("%s\n%s\n",
			titleStyle.Render(WelcomeTitle),
			subtleStyle.Render("Press n to meet a random hero."))
	}
}

func (m Model) viewHistory() string {
	history := m.tracker.HistoryNewestFirst()
	if len(history) == 0 {
		return subtleStyle.Render("No heroes viewed yet.") + "\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("History") + "\n")
	for i, r := range history {
		prefix := "  "
		if i == m.cursor {
			prefix = cursorStyle.Render("> ")
		}
		fav := ""
		if m.tracker.IsFavorite(r.ID) {
			fav = " " + output.FavoriteMarker
		}
		fmt.Fprintf(&b, "%s%s %s%s\n", prefix, r.Name,
			subtleStyle.Render(fmt.Sprintf("· %s · %s", r.Biography.PublisherOrUnknown(), r.Alignment())), fav)
	}
	return b.String()
}

func (m Model) cardWidth() int {
	if m.width <= 0 {
		return defaultCardWidth
	}
	return min(m.width, defaultCardWidth)
}

// ErrorMessage is the text shown for a failed pick. Catalog errors carry a
// message meant for users; anything else gets a generic one.
func ErrorMessage(err error) string {
	var reqErr *catalog.RequestError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, catalog.ErrNoData),
		errors.Is(err, catalog.ErrDecoding),
		errors.Is(err, catalog.ErrInvalidURL),
		errors.As(err, &reqErr):
		return err.Error()
	default:
		return GenericFailure
	}
}

// Run starts the browser and blocks until the user quits or ctx is done.
func Run(ctx context.Context, picker Picker, tracker *session.Tracker, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(NewModel(ctx, picker, tracker), opts...)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running tui: %w", err)
	}
	return nil
}
