package archive

import "sort"

// UserStats aggregates one user's activity across the whole archive.
type UserStats struct {
	TotalMessages int      // top-level messages plus all nested replies
	Channels      []string // sorted channel names the user posted in
	DMs           []string // sorted DM keys the user posted in
}

// CollectStats recomputes per-user statistics from every loaded
// conversation and returns the result, replacing any previous
// computation. Reply trees are walked to any depth, and an id that
// only ever authored replies still gets an entry. The result is a
// snapshot: reload the archive and the previous stats are stale until
// CollectStats runs again.
func (s *Store) CollectStats() map[string]UserStats {
	counts := make(map[string]int)
	channelsOf := make(map[string]map[string]bool)
	dmsOf := make(map[string]map[string]bool)

	tally := func(convs map[string]*Conversation, membership map[string]map[string]bool) {
		for key, conv := range convs {
			var walk func(msgs []*Message)
			walk = func(msgs []*Message) {
				for _, m := range msgs {
					counts[m.UserID]++
					set := membership[m.UserID]
					if set == nil {
						set = make(map[string]bool)
						membership[m.UserID] = set
					}
					set[key] = true
					walk(m.Replies)
				}
			}
			walk(conv.Messages)
		}
	}
	tally(s.channels, channelsOf)
	tally(s.dms, dmsOf)

	stats := make(map[string]UserStats, len(counts))
	for id, n := range counts {
		stats[id] = UserStats{
			TotalMessages: n,
			Channels:      sortedSet(channelsOf[id]),
			DMs:           sortedSet(dmsOf[id]),
		}
	}
	s.stats = stats
	return stats
}

// UserStats returns the statistics for id from the last CollectStats
// call. Unknown ids get a zero-valued entry.
func (s *Store) UserStats(id string) UserStats {
	return s.stats[id]
}

func sortedSet(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
