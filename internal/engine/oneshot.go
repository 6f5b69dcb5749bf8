package engine

import (
	"context"
	"fmt"
)

// Marathon-oriented query shapes for one-shot mode.
var oneShotQueryShapes = []string{
	"%s full course",
	"%s complete course one video",
	"%s everything you need to know",
}

// SearchOneShot returns a few long comprehensive items as the entire
// playlist. It bypasses per-topic resolution: the premise of the mode is a
// small number of comprehensive items, not topic-by-topic coverage. Returns
// nil when nothing qualifies even after relaxing the duration floor.
func (e *Engine) SearchOneShot(ctx context.Context, subject string, c Constraints) []PlaylistEntry {
	seen := make(map[string]bool)
	var pool []CandidateItem
	for _, shape := range oneShotQueryShapes {
		query := fmt.Sprintf(shape, subject)
		if c.LanguageSuffix != "" {
			query += " " + c.LanguageSuffix
		}
		for _, item := range e.searchCandidates(ctx, query) {
			if item.ID == "" || seen[item.ID] {
				continue
			}
			seen[item.ID] = true
			pool = append(pool, item)
		}
	}

	long := filterByDuration(pool, e.cfg.OneShotFloorSeconds, 0)
	if len(long) == 0 {
		long = filterByDuration(pool, e.cfg.OneShotRelaxedFloorSeconds, 0)
	}
	if len(long) == 0 {
		return nil
	}

	ranked := RankByDensity(long)
	if len(ranked) > e.cfg.OneShotMaxEntries {
		ranked = ranked[:e.cfg.OneShotMaxEntries]
	}

	entries := make([]PlaylistEntry, len(ranked))
	for i, item := range ranked {
		entries[i] = PlaylistEntry{
			Position:        i,
			ItemID:          item.ID,
			Title:           item.Title,
			ChannelName:     item.AuthorName,
			DurationSeconds: item.DurationSeconds,
			DurationDisplay: formatDuration(item.DurationSeconds),
			TopicMatched:    subject,
			Source:          SourceOneShot,
		}
	}
	return entries
}
