package sportdata

import (
	"bytes"
	"encoding/json"
)

// envelopeFields are the payload keys the upstream APIs wrap lists in,
// checked in order: flashscore uses "data", TheSportsDB uses "teams"
// for searches and "player" for squad lookups.
var envelopeFields = []string{"data", "teams", "player"}

var emptyList = json.RawMessage(`[]`)

// unwrapList normalizes a provider response body into a raw JSON list.
// Accepted shapes: a bare array, an envelope object carrying the array
// under a known field, or null/empty (both mean "no data", not an error).
// Anything unrecognizable also normalizes to the empty list.
func unwrapList(body []byte) json.RawMessage {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return emptyList
	}

	if body[0] == '[' {
		return json.RawMessage(body)
	}

	if body[0] == '{' {
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(body, &envelope); err != nil {
			return emptyList
		}
		for _, field := range envelopeFields {
			inner, ok := envelope[field]
			if !ok {
				continue
			}
			inner = bytes.TrimSpace(inner)
			if len(inner) == 0 || bytes.Equal(inner, []byte("null")) {
				return emptyList
			}
			if inner[0] == '[' {
				return inner
			}
		}
	}

	return emptyList
}
