// Package tui is a terminal front-end for a quiz game.
package tui

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/saulo-duarte/quiz-lambda/internal/game"
	"github.com/saulo-duarte/quiz-lambda/internal/quiz"
)

// NoSelectionNotice is shown when enter is pressed with nothing selected.
const NoSelectionNotice = "Please choose an answer!"

type phase int

const (
	phaseAsking phase = iota
	phaseRevealing
	phaseScore
)

// Options configures pacing and colour.
type Options struct {
	RevealDelay  time.Duration
	RestartDelay time.Duration
	NoColor      bool
}

// Model drives one game from the keyboard.
type Model struct {
	game     *game.Game
	opts     Options
	keys     keyMap
	help     help.Model
	phase    phase
	view     game.View
	cursor   int
	selected *int
	notice   string
	result   quiz.Result
	err      error
}

// revealMsg and restartMsg carry the round they were scheduled in so a tick
// that outlives its round is ignored.
type revealMsg struct{ round int }
type restartMsg struct{ round int }

func New(g *game.Game, opts Options) Model {
	m := Model{
		game: g,
		opts: opts,
		keys: defaultKeys(),
		help: help.New(),
	}
	m.view, _ = g.Current()
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = typed.Width
		return m, nil
	case revealMsg:
		if typed.round != m.game.Round() || m.phase != phaseRevealing {
			return m, nil
		}
		m.phase = phaseScore
		return m, m.after(m.opts.RestartDelay, restartMsg{round: typed.round})
	case restartMsg:
		if typed.round != m.game.Round() || m.phase != phaseScore {
			return m, nil
		}
		return m.restart(), nil
	case tea.KeyMsg:
		return m.handleKey(typed)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.New):
		return m.restart(), nil
	}
	if m.phase != phaseAsking {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.view.Options)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Pick):
		m.selectOption(m.cursor)
	case key.Matches(msg, m.keys.Choose):
		m.selectOption(int(msg.Runes[0] - '1'))
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	}
	return m, nil
}

func (m *Model) selectOption(i int) {
	if i < 0 || i >= len(m.view.Options) {
		return
	}
	choice := i
	m.cursor = i
	m.selected = &choice
	m.notice = ""
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	out, err := m.game.Submit(m.selected)
	if errors.Is(err, quiz.ErrNoSelectionMade) {
		m.notice = NoSelectionNotice
		return m, nil
	}
	if err != nil {
		m.err = err
		return m, nil
	}

	m.selected = nil
	m.cursor = 0
	m.notice = ""
	if !out.Finished {
		m.view = *out.Next
		return m, nil
	}

	m.result = *out.Result
	m.view.Score = out.Score
	m.phase = phaseRevealing
	return m, m.after(m.opts.RevealDelay, revealMsg{round: m.game.Round()})
}

func (m Model) restart() Model {
	if err := m.game.Restart(); err != nil {
		m.err = err
		return m
	}
	m.phase = phaseAsking
	m.view, _ = m.game.Current()
	m.cursor = 0
	m.selected = nil
	m.notice = ""
	m.result = quiz.Result{}
	return m
}

func (m Model) after(d time.Duration, msg tea.Msg) tea.Cmd {
	if d <= 0 {
		return func() tea.Msg { return msg }
	}
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}
