// Package tui is the interactive terminal front end: a search box, a card
// grid and a detail overlay driven by a session.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"propertyfinder/internal/presentation"
	"propertyfinder/internal/render"
	"propertyfinder/internal/search"
	"propertyfinder/internal/session"
	"propertyfinder/internal/shortlist"
)

type focus int

const (
	focusInput focus = iota
	focusGrid
)

// searchResultMsg carries a transport outcome back to the update loop.
type searchResultMsg struct {
	ticket  session.Ticket
	outcome search.Outcome
}

type savedMsg struct {
	title string
	added bool
	err   error
}

// Config wires the model to its collaborators. Session and Searcher are
// required; the rest are optional.
type Config struct {
	Session   *session.Session
	Searcher  session.Searcher
	Shortlist shortlist.Store
	Enrichers []render.Enricher
	Logger    zerolog.Logger
	// Context bounds searches and shortlist writes started by the model.
	Context context.Context
}

// Model is the root Bubble Tea model.
type Model struct {
	sess      *session.Session
	searcher  session.Searcher
	store     shortlist.Store
	enrichers []render.Enricher
	log       zerolog.Logger
	ctx       context.Context
	now       func() time.Time

	input   textinput.Model
	spinner spinner.Model

	focus      focus
	cursor     int
	detailOpen bool
	status     string
	width      int
	height     int
}

// New returns a model focused on the search box.
func New(cfg Config) Model {
	ti := textinput.New()
	ti.Placeholder = `e.g. "waterfront 3 bedroom with a view"`
	ti.Prompt = "🔍 "
	ti.CharLimit = 200
	ti.Width = 50
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	ctx := cfg.Context
	if ctx == nil {
		ctx = context.Background()
	}

	return Model{
		sess:      cfg.Session,
		searcher:  cfg.Searcher,
		store:     cfg.Shortlist,
		enrichers: cfg.Enrichers,
		log:       cfg.Logger,
		ctx:       ctx,
		now:       time.Now,
		input:     ti,
		spinner:   sp,
		width:     80,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case spinner.TickMsg:
		if m.sess.State() != presentation.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case searchResultMsg:
		if m.sess.Complete(msg.ticket, msg.outcome) {
			m.cursor = 0
			m.detailOpen = false
		}
		return m, nil

	case savedMsg:
		switch {
		case msg.err != nil:
			m.log.Error().Err(msg.err).Str("title", msg.title).Msg("save to shortlist failed")
			m.status = "Could not save to shortlist"
		case msg.added:
			m.status = "Saved to shortlist: " + msg.title
		default:
			m.status = "Already on shortlist: " + msg.title
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Quit) {
		return m, tea.Quit
	}
	m.status = ""

	if m.detailOpen {
		return m.handleDetailKey(msg)
	}
	if m.focus == focusGrid {
		return m.handleGridKey(msg)
	}
	return m.handleInputKey(msg)
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Submit):
		t, ok := m.sess.Begin(m.input.Value())
		if !ok {
			return m, nil
		}
		return m, tea.Batch(m.spinner.Tick, m.runSearch(t))

	case key.Matches(msg, keys.Back):
		if m.sess.State() == presentation.Error {
			_ = m.sess.Retry()
		}
		return m, nil

	case key.Matches(msg, keys.Focus):
		if len(m.sess.Cards()) > 0 {
			m.focus = focusGrid
			m.input.Blur()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.sess.InputChanged(m.input.Value())
	return m, cmd
}

func (m Model) handleGridKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.sess.Cards())
	cols := m.columns()
	switch {
	case key.Matches(msg, keys.Search), key.Matches(msg, keys.Back), key.Matches(msg, keys.Focus):
		m.focus = focusInput
		return m, m.input.Focus()
	case key.Matches(msg, keys.Left):
		m.cursor = clamp(m.cursor-1, n)
	case key.Matches(msg, keys.Right):
		m.cursor = clamp(m.cursor+1, n)
	case key.Matches(msg, keys.Up):
		m.cursor = clamp(m.cursor-cols, n)
	case key.Matches(msg, keys.Down):
		m.cursor = clamp(m.cursor+cols, n)
	case key.Matches(msg, keys.Open):
		if n > 0 {
			m.detailOpen = true
		}
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		m.detailOpen = false
	case key.Matches(msg, keys.Save):
		if c, ok := m.selected(); ok && m.store != nil {
			return m, m.save(c)
		}
		if m.store == nil {
			m.status = "Shortlist is not configured"
		}
	}
	return m, nil
}

func (m Model) runSearch(t session.Ticket) tea.Cmd {
	searcher, ctx := m.searcher, m.ctx
	return func() tea.Msg {
		return searchResultMsg{ticket: t, outcome: searcher.Search(ctx, t.Query)}
	}
}

func (m Model) save(c render.Card) tea.Cmd {
	store, ctx, entry := m.store, m.ctx, shortlist.FromCard(c, m.now())
	return func() tea.Msg {
		added, err := store.Add(ctx, entry)
		return savedMsg{title: entry.Title, added: added, err: err}
	}
}

func (m Model) selected() (render.Card, bool) {
	cards := m.sess.Cards()
	if m.cursor < 0 || m.cursor >= len(cards) {
		return render.Card{}, false
	}
	return cards[m.cursor], true
}

// columns is the number of cards that fit side by side.
func (m Model) columns() int {
	cols := m.width / (cardWidth + 4)
	if cols < 1 {
		return 1
	}
	return cols
}

func clamp(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		return 0
	}
	return i
}
