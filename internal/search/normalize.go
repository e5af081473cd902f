package search

import (
	"bytes"
	"encoding/json"

	"propertyfinder/internal/types"
)

// Normalize converts a response body into an Outcome.
//
//   - a JSON list is the record sequence itself;
//   - an object whose "results" field is a list yields that list;
//   - otherwise an object with a set "error" field is an ApplicationFailure;
//   - any other JSON value means no results.
//
// A body that is not valid JSON is a TransportFailure.
func Normalize(body []byte) Outcome {
	var raw json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return Failure(&Error{
			Kind:    TransportFailure,
			Message: "decode response: " + err.Error(),
			Err:     err,
		})
	}

	switch firstByte(raw) {
	case '[':
		return Success(decodeList(raw))
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			return Success(nil)
		}
		if results, ok := obj["results"]; ok && firstByte(results) == '[' {
			return Success(decodeList(results))
		}
		if msg, ok := errorMessage(obj["error"]); ok {
			return Failure(&Error{Kind: ApplicationFailure, Message: msg})
		}
	}
	return Success(nil)
}

func decodeList(raw json.RawMessage) []types.Record {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	records := make([]types.Record, len(items))
	for i, item := range items {
		// An element that fails to decode stays in place as an empty record.
		records[i], _ = types.Parse(item)
	}
	return records
}

// errorMessage reports whether an "error" field is set. null, false, "" and 0
// do not count. Non-string values are reported as compact JSON.
func errorMessage(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return "", false
	}
	switch t := v.(type) {
	case nil:
		return "", false
	case bool:
		if !t {
			return "", false
		}
	case string:
		return t, t != ""
	case json.Number:
		if f, err := t.Float64(); err == nil && f == 0 {
			return "", false
		}
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw), true
	}
	return buf.String(), true
}

func firstByte(raw json.RawMessage) byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}
