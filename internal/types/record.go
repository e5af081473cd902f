package types

import (
	"bytes"
	"encoding/json"
)

// Field names used by the search backend. Every one of them is optional.
const (
	FieldID          = "id"
	FieldPrice       = "price"
	FieldBedrooms    = "bedrooms"
	FieldBathrooms   = "bathrooms"
	FieldLivingArea  = "sqft_living"
	FieldAboveArea   = "sqft_above"
	FieldFloors      = "floors"
	FieldYearBuilt   = "yr_built"
	FieldZipCode     = "zipcode"
	FieldLatitude    = "lat"
	FieldLongitude   = "long"
	FieldScore       = "score"
	FieldWaterfront  = "waterfront"
	FieldGrade       = "grade"
	FieldCondition   = "condition"
	FieldDescription = "description"
)

// Record holds one property as returned by the search backend. The backend
// makes no promises about which fields exist or what type they carry, so the
// accessors below report a missing, null or wrong-typed value as absent.
//
// Records keep the key order of the JSON object they were decoded from.
type Record struct {
	keys   []string
	fields map[string]any
}

// Parse decodes a single JSON value into a Record. Values that are not JSON
// objects produce an empty record.
func Parse(data []byte) (Record, error) {
	var r Record
	if err := r.UnmarshalJSON(data); err != nil {
		return Record{}, err
	}
	return r, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Record) UnmarshalJSON(data []byte) error {
	*r = Record{}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil
	}

	r.fields = make(map[string]any)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)

		var v any
		if err := dec.Decode(&v); err != nil {
			return err
		}
		if _, seen := r.fields[key]; !seen {
			r.keys = append(r.keys, key)
		}
		r.fields[key] = v
	}
	return nil
}

// Len returns the number of fields in the record, null ones included.
func (r Record) Len() int { return len(r.keys) }

// Keys returns the field names in payload order.
func (r Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Value returns the raw decoded value of a field. Numbers are json.Number.
// A null value is reported as absent.
func (r Record) Value(key string) (any, bool) {
	v, ok := r.fields[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Number returns a numeric field. Strings, booleans and anything else are
// treated as absent.
func (r Record) Number(key string) (float64, bool) {
	v, ok := r.Value(key)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case float64:
		return n, true
	}
	return 0, false
}

// Text returns a free-text field. Numbers are accepted and returned verbatim,
// because the upstream dataset ships grade and condition as integers.
// Empty strings are absent.
func (r Record) Text(key string) (string, bool) {
	v, ok := r.Value(key)
	if !ok {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return t, t != ""
	case json.Number:
		return t.String(), true
	}
	return "", false
}

// Flag reports whether a boolean-ish field is set: true, or any non-zero
// number (the upstream dataset encodes waterfront as 0/1).
func (r Record) Flag(key string) bool {
	v, ok := r.Value(key)
	if !ok {
		return false
	}
	switch b := v.(type) {
	case bool:
		return b
	case json.Number:
		f, err := b.Float64()
		return err == nil && f != 0
	}
	return false
}
