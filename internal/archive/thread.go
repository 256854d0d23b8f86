package archive

import "sort"

// FindThreadMessages reconstructs the thread rooted at rootTS across
// the given conversations: the root message itself (the one whose own
// timestamp equals rootTS) plus every message carrying rootTS as its
// thread reference, whether it sits at top level or nested inside a
// reply list. Both representations occur in exported archives, and
// a reply can appear in both at once; results are deduplicated and
// sorted ascending by timestamp.
//
// Timestamps compare with exact float64 equality. Both sides parse
// from the same decimal strings in one archive, so equal
// representations yield equal values. A message's own timestamp is
// its identity within the archive, which is also the dedup key for
// replies stored both nested and flat.
func FindThreadMessages(rootTS float64, convs []*Conversation) []*Message {
	seen := make(map[float64]bool)
	var out []*Message

	var walk func(msgs []*Message)
	walk = func(msgs []*Message) {
		for _, m := range msgs {
			if (m.TS == rootTS || m.ThreadTS == rootTS) && !seen[m.TS] {
				seen[m.TS] = true
				out = append(out, m)
			}
			walk(m.Replies)
		}
	}
	for _, c := range convs {
		walk(c.Messages)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].TS < out[j].TS })
	return out
}
