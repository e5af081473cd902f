package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propertyfinder/internal/types"
)

func parse(t *testing.T, js string) types.Record {
	t.Helper()
	r, err := types.Parse([]byte(js))
	require.NoError(t, err)
	return r
}

func texts(fs []Feature) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.String()
	}
	return out
}

func TestRenderKeepsOrder(t *testing.T) {
	records := []types.Record{
		parse(t, `{"bedrooms": 1}`),
		parse(t, `{"bedrooms": 2}`),
		parse(t, `{"bedrooms": 5}`),
	}
	cards := Renderer{}.Render(records)
	require.Len(t, cards, 3)
	for i, c := range cards {
		assert.Equal(t, i, c.Index)
	}
	assert.Equal(t, "Cozy 1-Bedroom", cards[0].Title)
	assert.Equal(t, "2-Bedroom Home", cards[1].Title)
	assert.Equal(t, "Spacious Family Home", cards[2].Title)
}

func TestRenderEmpty(t *testing.T) {
	assert.Empty(t, Renderer{}.Render(nil))
}

func TestNewCardFullRecord(t *testing.T) {
	r := parse(t, `{
		"score": 0.91, "waterfront": true, "bedrooms": 1, "bathrooms": 1,
		"price": 500000, "sqft_living": 1180, "zipcode": 98178,
		"yr_built": 1955, "condition": "Good", "description": "Lake views."
	}`)
	c := NewCard(0, r)

	assert.True(t, c.HasBadge())
	assert.Equal(t, "Match: 91%", c.Badge)
	assert.Equal(t, "Waterfront Cozy 1-Bedroom", c.Title)
	assert.Equal(t, "$500,000", c.Price)
	assert.Equal(t, "Lake views.", c.Description)
	assert.Equal(t, []string{
		"🏠 1 bedroom",
		"🚿 1 bath",
		"📐 1,180 sq ft",
		"📍 ZIP 98178",
		"📅 Built 1955",
		"⭐ Good",
	}, texts(c.Features))
}

func TestNewCardSparseRecord(t *testing.T) {
	c := NewCard(2, parse(t, `{}`))

	assert.False(t, c.HasBadge())
	assert.Equal(t, "Studio", c.Title)
	assert.Equal(t, "Price not available", c.Price)
	assert.Empty(t, c.Description)
	assert.Equal(t, []string{"🏠 Studio", "🚿 0 baths"}, texts(c.Features))
}

func TestDetailsFiltersAndKeepsOrder(t *testing.T) {
	r := parse(t, `{"zipcode": 98178, "view": null, "grade": "", "waterfront": false,
		"price": 221900.5, "tags": ["a", "b"], "condition": "Average"}`)

	got := Details(r)
	assert.Equal(t, []Line{
		{"zipcode", "98178"},
		{"waterfront", "false"},
		{"price", "221900.5"},
		{"tags", `["a","b"]`},
		{"condition", "Average"},
	}, got)
	assert.Equal(t, "zipcode: 98178", got[0].String())
}

func TestDetailsEnrichers(t *testing.T) {
	r := parse(t, `{"id": 7}`)
	hit := func(types.Record) (Line, bool) { return Line{"zoning", "A-5"}, true }
	miss := func(types.Record) (Line, bool) { return Line{}, false }

	got := Details(r, miss, nil, hit)
	assert.Equal(t, []Line{{"id", "7"}, {"zoning", "A-5"}}, got)
}
