// Package session coordinates one search at a time: it validates the query,
// drives the presentation machine, calls the search backend and routes the
// outcome. Only the most recently issued request may change what is shown.
package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"propertyfinder/internal/metrics"
	"propertyfinder/internal/presentation"
	"propertyfinder/internal/render"
	"propertyfinder/internal/search"
	"propertyfinder/internal/types"
)

// Searcher runs one query against the backend.
type Searcher interface {
	Search(ctx context.Context, query string) search.Outcome
}

// CardRenderer turns records into cards.
type CardRenderer interface {
	Render(records []types.Record) []render.Card
}

// Ticket identifies one issued search. Seq increases with every Begin and
// every clear; an outcome is applied only if its ticket is still current.
type Ticket struct {
	Seq     uint64
	Query   string
	ID      uuid.UUID
	Started time.Time
}

// Session owns the presentation machine and the current result set. Its
// methods are safe for concurrent use. Surface callbacks run while the
// session lock is held and must not call back into the session.
type Session struct {
	searcher Searcher
	renderer CardRenderer
	log      zerolog.Logger
	observe  func(outcome string, elapsed time.Duration)
	now      func() time.Time

	mu      sync.Mutex
	machine *presentation.Machine
	seq     uint64
	pending bool
	query   string
	records []types.Record
	cards   []render.Card
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger for routed outcomes.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithRenderer replaces the default card renderer.
func WithRenderer(r CardRenderer) Option {
	return func(s *Session) { s.renderer = r }
}

// WithSurface attaches a surface to the presentation machine.
func WithSurface(surface presentation.Surface) Option {
	return func(s *Session) { s.machine = presentation.NewMachine(surface) }
}

// WithObserver replaces the metrics hook called for every outcome.
func WithObserver(fn func(outcome string, elapsed time.Duration)) Option {
	return func(s *Session) { s.observe = fn }
}

// New returns a session in the Empty state.
func New(searcher Searcher, opts ...Option) *Session {
	s := &Session{
		searcher: searcher,
		renderer: render.Renderer{},
		log:      zerolog.Nop(),
		observe:  metrics.ObserveSearch,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.machine == nil {
		s.machine = presentation.NewMachine(nil)
	}
	return s
}

// Submit runs a whole search and blocks until its outcome is routed. A blank
// query clears the display without calling the backend.
func (s *Session) Submit(ctx context.Context, text string) presentation.State {
	t, ok := s.Begin(text)
	if !ok {
		return s.State()
	}
	s.Complete(t, s.searcher.Search(ctx, t.Query))
	return s.State()
}

// Begin validates text and, when it is not blank, enters Loading and issues a
// ticket for the search the caller is about to run. A blank query clears the
// display and reports false.
func (s *Session) Begin(text string) (Ticket, bool) {
	query := strings.TrimSpace(text)

	s.mu.Lock()
	defer s.mu.Unlock()

	if query == "" {
		s.clearLocked()
		return Ticket{}, false
	}

	s.seq++
	s.pending = true
	s.query = query
	s.records, s.cards = nil, nil
	s.machine.Submit()

	t := Ticket{Seq: s.seq, Query: query, ID: uuid.New(), Started: s.now()}
	s.log.Debug().
		Str("query_id", t.ID.String()).
		Uint64("seq", t.Seq).
		Str("query", query).
		Msg("search started")
	return t, true
}

// Complete routes the outcome of t. It returns false, changing nothing, when
// t has been superseded by a later Begin or a clear.
func (s *Session) Complete(t Ticket, out search.Outcome) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	elapsed := s.now().Sub(t.Started)
	if !s.pending || t.Seq != s.seq {
		s.log.Debug().
			Str("query_id", t.ID.String()).
			Uint64("seq", t.Seq).
			Uint64("current", s.seq).
			Msg("discarding stale search outcome")
		s.observe(metrics.OutcomeStale, elapsed)
		return false
	}
	s.pending = false

	switch {
	case out.Failed():
		s.log.Error().
			Str("query_id", t.ID.String()).
			Str("query", t.Query).
			Str("kind", out.Err.Kind.String()).
			Int("status", out.Err.Status).
			Err(out.Err).
			Msg("search failed")
		s.observe(out.Err.Kind.String(), elapsed)
		_ = s.machine.Fail()

	case len(out.Records) == 0:
		s.log.Info().Str("query_id", t.ID.String()).Str("query", t.Query).Msg("no results")
		s.observe(metrics.OutcomeNoResults, elapsed)
		_ = s.machine.Succeed(t.Query, 0)

	default:
		s.records = out.Records
		s.cards = s.renderer.Render(out.Records)
		s.log.Info().
			Str("query_id", t.ID.String()).
			Str("query", t.Query).
			Int("results", len(out.Records)).
			Dur("elapsed", elapsed).
			Msg("search completed")
		s.observe(metrics.OutcomePopulated, elapsed)
		_ = s.machine.Succeed(t.Query, len(out.Records))
	}
	return true
}

// InputChanged reacts to edits of the search box. Clearing it to blank
// returns to Empty immediately and abandons any search in flight.
func (s *Session) InputChanged(text string) {
	if strings.TrimSpace(text) != "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

// Retry dismisses the error panel.
func (s *Session) Retry() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.Retry()
}

func (s *Session) clearLocked() {
	s.seq++
	s.pending = false
	s.query = ""
	s.records, s.cards = nil, nil
	s.machine.Clear()
}

// State returns the presentation state.
func (s *Session) State() presentation.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.State()
}

// Snapshot returns the visible presentation.
func (s *Session) Snapshot() presentation.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.Snapshot()
}

// Query returns the query of the current or last search.
func (s *Session) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// Records returns the current result set.
func (s *Session) Records() []types.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.Record(nil), s.records...)
}

// Cards returns the cards rendered from the current result set.
func (s *Session) Cards() []render.Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]render.Card(nil), s.cards...)
}
