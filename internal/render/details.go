package render

import (
	"encoding/json"
	"fmt"
	"strconv"

	"propertyfinder/internal/types"
)

// Line is one "key: value" row of a detail listing.
type Line struct {
	Key   string
	Value string
}

func (l Line) String() string { return l.Key + ": " + l.Value }

// Enricher derives an extra detail line from a record, such as the zoning
// district under the property's coordinates. ok is false when nothing applies.
type Enricher func(r types.Record) (line Line, ok bool)

// Details lists every field of r in payload order, skipping null and empty
// string values, followed by any lines produced by the enrichers.
func Details(r types.Record, enrichers ...Enricher) []Line {
	var lines []Line
	for _, key := range r.Keys() {
		v, ok := r.Value(key)
		if !ok {
			continue
		}
		text := valueText(v)
		if text == "" {
			continue
		}
		lines = append(lines, Line{Key: key, Value: text})
	}
	for _, enrich := range enrichers {
		if enrich == nil {
			continue
		}
		if l, ok := enrich(r); ok {
			lines = append(lines, l)
		}
	}
	return lines
}

func valueText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}
