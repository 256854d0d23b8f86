// Package archive loads exported Slack-style JSON archives into an
// in-memory index of conversations and provides the query surface over
// them: keyword search, thread reconstruction, period filtering, and
// per-user statistics.
package archive

import (
	"encoding/json"
	"strconv"
	"time"
)

// Message is one chat message from an archive file. Messages are built
// once during load and never mutated afterwards; a message is owned by
// its conversation or, for a nested reply, by its parent message.
type Message struct {
	TS       float64    // seconds since epoch
	UserID   string     // opaque author identifier
	Text     string     // may be empty
	ThreadTS float64    // timestamp of the thread root; 0 when not part of a thread
	Replies  []*Message // nested thread replies, possibly recursive
}

// Time returns the message timestamp in the given location.
func (m *Message) Time(loc *time.Location) time.Time {
	sec := int64(m.TS)
	nsec := int64((m.TS - float64(sec)) * 1e9)
	return time.Unix(sec, nsec).In(loc)
}

// rawRecord mirrors one exported message record. Timestamps appear as
// JSON numbers in some exports and as decimal strings in others, so
// they are kept raw until parseTS. Reply elements are kept raw so a
// bad reply can be dropped without losing its parent.
type rawRecord struct {
	TS       json.RawMessage   `json:"ts"`
	User     string            `json:"user"`
	Text     string            `json:"text"`
	ThreadTS json.RawMessage   `json:"thread_ts"`
	Replies  []json.RawMessage `json:"replies"`
}

// ParseMessage converts one JSON message record into a Message. A
// record without a usable timestamp or author yields (nil, false);
// callers skip such records silently. Replies are parsed with the same
// contract and dropped individually on failure.
func ParseMessage(data []byte) (*Message, bool) {
	var r rawRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, false
	}
	ts, ok := parseTS(r.TS)
	if !ok || r.User == "" {
		return nil, false
	}
	m := &Message{TS: ts, UserID: r.User, Text: r.Text}
	if threadTS, ok := parseTS(r.ThreadTS); ok {
		m.ThreadTS = threadTS
	}
	for _, raw := range r.Replies {
		if reply, ok := ParseMessage(raw); ok {
			m.Replies = append(m.Replies, reply)
		}
	}
	return m, true
}

// parseTS accepts the two timestamp encodings seen in exports: a JSON
// number or a decimal string such as "1609459200.000100".
func parseTS(raw json.RawMessage) (float64, bool) {
	s := string(raw)
	if s == "" || s == "null" {
		return 0, false
	}
	if s[0] == '"' {
		var unquoted string
		if err := json.Unmarshal(raw, &unquoted); err != nil {
			return 0, false
		}
		s = unquoted
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return v, true
}
