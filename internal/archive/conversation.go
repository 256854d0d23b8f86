package archive

import (
	"sort"
	"strings"
)

// Kind classifies a conversation.
type Kind string

const (
	KindChannel Kind = "channel"
	KindDM      Kind = "dm_1to1"
	KindGroupDM Kind = "dm_group"
)

// Conversation is the ordered message history of one channel or DM.
// The load path appends messages file by file and sorts once at the
// end; Messages is not ordered until SortMessages has run.
type Conversation struct {
	Name     string
	Kind     Kind
	Messages []*Message
}

func (c *Conversation) add(m *Message) {
	c.Messages = append(c.Messages, m)
}

// SortMessages orders messages ascending by timestamp. The sort is
// stable, so messages with equal timestamps keep their file order, and
// sorting an already-sorted conversation is a no-op.
func (c *Conversation) SortMessages() {
	sort.SliceStable(c.Messages, func(i, j int) bool {
		return c.Messages[i].TS < c.Messages[j].TS
	})
}

// Search returns the top-level messages whose text contains keyword,
// case-insensitively, in message order. The empty keyword matches
// every message. Replies are not searched; callers that want thread
// hits iterate Replies themselves.
func (c *Conversation) Search(keyword string) []*Message {
	kw := strings.ToLower(keyword)
	var out []*Message
	for _, m := range c.Messages {
		if strings.Contains(strings.ToLower(m.Text), kw) {
			out = append(out, m)
		}
	}
	return out
}

// Participants returns the sorted, deduplicated display names of every
// author in the conversation, reply authors included. resolve maps a
// user id to its display name.
func (c *Conversation) Participants(resolve func(string) string) []string {
	seen := make(map[string]bool)
	var walk func(msgs []*Message)
	walk = func(msgs []*Message) {
		for _, m := range msgs {
			seen[resolve(m.UserID)] = true
			walk(m.Replies)
		}
	}
	walk(c.Messages)

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
