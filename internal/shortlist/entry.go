// Package shortlist persists properties the user saved from the result list.
package shortlist

import (
	"context"
	"strings"
	"time"

	"propertyfinder/internal/config"
	"propertyfinder/internal/format"
	"propertyfinder/internal/render"
	"propertyfinder/internal/types"
)

// Entry is one saved property.
type Entry struct {
	ID       string
	Title    string
	Price    string
	Location string
	SavedAt  time.Time
}

// FromCard captures the displayed fields of a card.
func FromCard(c render.Card, now time.Time) Entry {
	id, _ := c.Record.Text(types.FieldID)
	return Entry{
		ID:       id,
		Title:    c.Title,
		Price:    c.Price,
		Location: format.Location(c.Record),
		SavedAt:  now.UTC().Truncate(time.Second),
	}
}

// Key identifies an entry for duplicate detection: the normalized id, or the
// normalized title and location when the record had no id.
func (e Entry) Key() string {
	if id := normalize(e.ID); id != "" {
		return "ID:" + id
	}
	return normalize(e.Title) + "|" + normalize(e.Location)
}

// normalize upper-cases, drops commas and collapses whitespace.
func normalize(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, ",", "")
	return strings.Join(strings.Fields(s), " ")
}

// Store saves and lists entries.
type Store interface {
	// Add saves e unless an entry with the same Key exists. It reports
	// whether e was added.
	Add(ctx context.Context, e Entry) (bool, error)
	// List returns entries in the order they were saved.
	List(ctx context.Context) ([]Entry, error)
	Close() error
}

// Open returns the Oracle store when one is configured and the CSV file
// store otherwise.
func Open(ctx context.Context, cfg config.Shortlist) (Store, error) {
	if cfg.Oracle.Enabled() {
		s, err := OpenOracle(ctx, cfg.Oracle)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return NewFileStore(cfg.File), nil
}
