package dashboard

import (
	"bytes"
	"encoding/json"
)

// collection is the normalized form of a list response. The API returns
// either a bare JSON array, an object wrapping the array under "items" or
// "results", or a single object for non-paginated endpoints.
type collection struct {
	items  []json.RawMessage
	single bool // the endpoint returned one object, not a list
}

// envelopeKeys are probed in order when a list arrives wrapped in an object.
var envelopeKeys = []string{"items", "results"}

// unwrapCollection normalizes a raw response into a collection.
func unwrapCollection(raw json.RawMessage) (collection, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return collection{items: nil}, nil
	}

	if trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return collection{}, err
		}
		return collection{items: items}, nil
	}

	// Object: either an envelope around a list or a singular payload.
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return collection{}, err
	}
	for _, key := range envelopeKeys {
		inner, ok := envelope[key]
		if !ok {
			continue
		}
		innerTrimmed := bytes.TrimSpace(inner)
		if len(innerTrimmed) == 0 || innerTrimmed[0] != '[' {
			continue
		}
		var items []json.RawMessage
		if err := json.Unmarshal(innerTrimmed, &items); err != nil {
			return collection{}, err
		}
		return collection{items: items}, nil
	}

	return collection{items: []json.RawMessage{json.RawMessage(trimmed)}, single: true}, nil
}

// stringField extracts a top-level string field from a raw JSON object.
// Returns "" when absent, empty, or not a string.
func stringField(raw json.RawMessage, field string) string {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return ""
	}
	v, ok := obj[field]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return ""
	}
	return s
}
