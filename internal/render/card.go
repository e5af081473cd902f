// Package render converts normalized records into display cards and detail
// listings. It produces plain data; the terminal UI and the line printer
// decide how to draw it.
package render

import (
	"propertyfinder/internal/format"
	"propertyfinder/internal/types"
)

// Feature icons, one per feature line.
const (
	IconBedrooms  = "🏠"
	IconBathrooms = "🚿"
	IconArea      = "📐"
	IconLocation  = "📍"
	IconYearBuilt = "📅"
	IconCondition = "⭐"
)

// Feature is one icon-prefixed line on a card.
type Feature struct {
	Icon string
	Text string
}

func (f Feature) String() string { return f.Icon + " " + f.Text }

// Card is the display unit for one record.
type Card struct {
	// Index is the card's position in the result set, starting at 0.
	Index int
	// Badge is the match percentage; empty when the record has no score.
	Badge       string
	Title       string
	Price       string
	Features    []Feature
	Description string
	Record      types.Record
}

// HasBadge reports whether the card shows a match badge.
func (c Card) HasBadge() bool { return c.Badge != "" }

// Renderer builds cards from records.
type Renderer struct{}

// Render returns one card per record, in input order.
func (Renderer) Render(records []types.Record) []Card {
	cards := make([]Card, len(records))
	for i, r := range records {
		cards[i] = NewCard(i, r)
	}
	return cards
}

// NewCard renders a single record. Bedrooms and bathrooms are always listed;
// the remaining features only when they have content.
func NewCard(index int, r types.Record) Card {
	c := Card{
		Index:       index,
		Title:       format.Title(r),
		Price:       format.Price(r),
		Description: format.Description(r),
		Record:      r,
		Features: []Feature{
			{IconBedrooms, format.Bedrooms(r)},
			{IconBathrooms, format.Bathrooms(r)},
		},
	}
	if badge, ok := format.MatchBadge(r); ok {
		c.Badge = badge
	}

	optional := []Feature{
		{IconArea, format.Area(r)},
		{IconLocation, format.Location(r)},
		{IconYearBuilt, format.YearBuilt(r)},
		{IconCondition, format.Condition(r)},
	}
	for _, f := range optional {
		if f.Text != "" {
			c.Features = append(c.Features, f)
		}
	}
	return c
}
