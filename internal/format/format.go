// Package format turns property records into display strings. Every function
// is pure and total: a missing or mistyped field never causes a failure.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"propertyfinder/internal/types"
)

const (
	// PriceUnavailable is shown when a record has no usable price.
	PriceUnavailable = "Price not available"
	// FallbackTitle is used when no title could be composed.
	FallbackTitle = "Residential Property"
	// DescriptionLimit is the number of characters kept by Description.
	DescriptionLimit = 120
	// Ellipsis marks a truncated description.
	Ellipsis = "..."

	luxuryPrice = 1_000_000
)

var printer = message.NewPrinter(language.AmericanEnglish)

// grouped renders v as a rounded integer with thousands separators.
func grouped(v float64) string {
	return printer.Sprintf("%.0f", math.Round(v))
}

// plain renders a number the way it appears in the payload: 2 not 2.0,
// 1.75 not 1.750000.
func plain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// positive returns a numeric field only when it is present and non-zero.
func positive(r types.Record, key string) (float64, bool) {
	v, ok := r.Number(key)
	if !ok || v == 0 {
		return 0, false
	}
	return v, true
}

// Price formats the listing price, e.g. "$500,000".
func Price(r types.Record) string {
	v, ok := positive(r, types.FieldPrice)
	if !ok {
		return PriceUnavailable
	}
	return "$" + grouped(v)
}

// Bedrooms formats the bedroom count. Absent counts as zero.
func Bedrooms(r types.Record) string {
	n, _ := r.Number(types.FieldBedrooms)
	switch n {
	case 0:
		return "Studio"
	case 1:
		return "1 bedroom"
	}
	return plain(n) + " bedrooms"
}

// Bathrooms formats the bathroom count. Fractional values are kept verbatim.
func Bathrooms(r types.Record) string {
	n, _ := r.Number(types.FieldBathrooms)
	if n == 1 {
		return "1 bath"
	}
	return plain(n) + " baths"
}

// Area formats the living area, falling back to the above-grade area.
func Area(r types.Record) string {
	v, ok := positive(r, types.FieldLivingArea)
	if !ok {
		v, ok = positive(r, types.FieldAboveArea)
	}
	if !ok {
		return ""
	}
	return grouped(v) + " sq ft"
}

// Location prefers the zip code and falls back to coordinates.
func Location(r types.Record) string {
	if zip, ok := zipCode(r); ok {
		return "ZIP " + zip
	}
	lat, okLat := r.Number(types.FieldLatitude)
	lon, okLon := r.Number(types.FieldLongitude)
	if okLat && okLon {
		return fmt.Sprintf("%.3f, %.3f", lat, lon)
	}
	return ""
}

func zipCode(r types.Record) (string, bool) {
	if v, ok := positive(r, types.FieldZipCode); ok {
		return plain(v), true
	}
	if _, isNum := r.Number(types.FieldZipCode); isNum {
		return "", false
	}
	return r.Text(types.FieldZipCode)
}

// YearBuilt formats the construction year, e.g. "Built 1955".
func YearBuilt(r types.Record) string {
	v, ok := positive(r, types.FieldYearBuilt)
	if !ok {
		return ""
	}
	return "Built " + plain(v)
}

// Condition returns the condition text, if any. A numeric zero is treated as
// absent, like the other numeric fields.
func Condition(r types.Record) string {
	if n, ok := r.Number(types.FieldCondition); ok && n == 0 {
		return ""
	}
	c, _ := r.Text(types.FieldCondition)
	return c
}

// Title composes a short headline from the record's features.
func Title(r types.Record) string {
	var b strings.Builder

	grade, _ := r.Text(types.FieldGrade)
	grade = strings.ToLower(grade)
	price, _ := r.Number(types.FieldPrice)

	switch {
	case r.Flag(types.FieldWaterfront):
		b.WriteString("Waterfront ")
	case strings.Contains(grade, "luxury") || price > luxuryPrice:
		b.WriteString("Luxury ")
	case strings.Contains(grade, "above average"):
		b.WriteString("Premium ")
	}

	beds, _ := r.Number(types.FieldBedrooms)
	switch {
	case beds == 0:
		b.WriteString("Studio")
	case beds >= 4:
		b.WriteString("Spacious Family Home")
	case beds == 1:
		b.WriteString("Cozy 1-Bedroom")
	default:
		b.WriteString(plain(beds) + "-Bedroom Home")
	}

	floors, ok := positive(r, types.FieldFloors)
	if !ok {
		floors = 1
	}
	if floors > 1 {
		fmt.Fprintf(&b, " (%s floors)", plain(floors))
	}

	if b.Len() == 0 {
		return FallbackTitle
	}
	return b.String()
}

// Description shortens long descriptions to DescriptionLimit characters.
func Description(r types.Record) string {
	d, ok := r.Text(types.FieldDescription)
	if !ok {
		return ""
	}
	return Truncate(d, DescriptionLimit)
}

// Truncate keeps the first limit characters of s, trims trailing whitespace
// and appends Ellipsis. Strings within the limit are returned unchanged.
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return strings.TrimRightFunc(string(runes[:limit]), unicode.IsSpace) + Ellipsis
}

// MatchBadge renders the relevance score as a percentage. ok is false when
// the record carries no score.
func MatchBadge(r types.Record) (badge string, ok bool) {
	score, ok := r.Number(types.FieldScore)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("Match: %d%%", int64(math.Round(score*100))), true
}

// ResultCount summarises the size of a result set.
func ResultCount(n int) string {
	if n == 1 {
		return "1 property found"
	}
	return printer.Sprintf("%d properties found", n)
}
