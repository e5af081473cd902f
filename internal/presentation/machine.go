// Package presentation holds the four-state controller that decides which
// display region is visible. Exactly one region is shown at a time; every
// transition hides the other two before showing its own.
package presentation

import (
	"errors"
	"fmt"

	"propertyfinder/internal/format"
)

// ErrInvalidTransition is returned when an event does not apply to the
// current state. The machine is left unchanged.
var ErrInvalidTransition = errors.New("invalid transition")

// State is the visible presentation state.
type State int

const (
	Empty State = iota
	Loading
	Populated
	Error
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Loading:
		return "loading"
	case Populated:
		return "populated"
	case Error:
		return "error"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Region is one of the mutually exclusive display areas. The Error state
// reuses EmptyPanel with different content.
type Region int

const (
	LoadingIndicator Region = iota + 1
	ResultsGrid
	EmptyPanel
)

// Regions lists every region in display order.
var Regions = []Region{LoadingIndicator, ResultsGrid, EmptyPanel}

func (r Region) String() string {
	switch r {
	case LoadingIndicator:
		return "loading"
	case ResultsGrid:
		return "results"
	case EmptyPanel:
		return "panel"
	}
	return fmt.Sprintf("region(%d)", int(r))
}

// Surface receives region changes. Implementations draw or record them.
type Surface interface {
	Hide(Region)
	Show(Region, Panel)
}

type nopSurface struct{}

func (nopSurface) Hide(Region)        {}
func (nopSurface) Show(Region, Panel) {}

// Snapshot is a copy of the machine's visible output.
type Snapshot struct {
	State   State
	Visible Region
	Panel   Panel
}

// Machine is the presentation state machine. It is not safe for concurrent
// use; its owner serialises events.
type Machine struct {
	surface Surface
	state   State
	visible Region
	panel   Panel
}

// NewMachine returns a machine in the Empty state showing the welcome panel.
// A nil surface discards region changes.
func NewMachine(s Surface) *Machine {
	if s == nil {
		s = nopSurface{}
	}
	m := &Machine{surface: s}
	m.enter(Empty, EmptyPanel, Welcome())
	return m
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Visible returns the one region currently shown.
func (m *Machine) Visible() Region { return m.visible }

// Snapshot returns the current state, region and panel.
func (m *Machine) Snapshot() Snapshot {
	return Snapshot{State: m.state, Visible: m.visible, Panel: m.panel}
}

// Submit enters Loading. A new search may start from any state.
func (m *Machine) Submit() {
	m.enter(Loading, LoadingIndicator, Panel{Title: "Searching properties..."})
}

// Succeed finishes a search with n results for query. Zero results return to
// Empty with a panel naming the query.
func (m *Machine) Succeed(query string, n int) error {
	if m.state != Loading {
		return m.invalid("succeed")
	}
	if n == 0 {
		m.enter(Empty, EmptyPanel, NoResults(query))
		return nil
	}
	m.enter(Populated, ResultsGrid, Panel{Title: format.ResultCount(n)})
	return nil
}

// Fail finishes a search with the generic error panel.
func (m *Machine) Fail() error {
	if m.state != Loading {
		return m.invalid("fail")
	}
	m.enter(Error, EmptyPanel, SearchError())
	return nil
}

// Clear returns to Empty from any state. It is used when the input is blank.
func (m *Machine) Clear() {
	m.enter(Empty, EmptyPanel, Welcome())
}

// Retry dismisses the error panel.
func (m *Machine) Retry() error {
	if m.state != Error {
		return m.invalid("retry")
	}
	m.enter(Empty, EmptyPanel, Welcome())
	return nil
}

func (m *Machine) invalid(event string) error {
	return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, event, m.state)
}

func (m *Machine) enter(s State, show Region, p Panel) {
	for _, r := range Regions {
		if r != show {
			m.surface.Hide(r)
		}
	}
	m.state, m.visible, m.panel = s, show, p
	m.surface.Show(show, p)
}
