package engine

import (
	"context"
	"log"
)

// resolve maps one topic to its single best external item, or nil when no
// suitable item exists. A nil result is an expected outcome, not a fault:
// the caller records the topic in gapsFailed and moves on.
func (e *Engine) resolve(ctx context.Context, topic, subject string, c Constraints, position int) *PlaylistEntry {
	items := e.searchCandidates(ctx, buildSearchQuery(topic, subject, c))
	if len(items) == 0 {
		// One retry with the undecorated topic, then give up.
		items = e.searchCandidates(ctx, topic)
	}
	if len(items) == 0 {
		return nil
	}

	pool := filterByDuration(items, c.MinSeconds, c.MaxSeconds)
	if len(pool) == 0 {
		pool = filterByDuration(items, e.cfg.AbsoluteMinSeconds, 0)
	}
	if len(pool) == 0 {
		return nil
	}

	ranked := RankByDensity(pool)
	winner := ranked[0]

	if e.reranker != nil && len(ranked) >= e.cfg.RerankMinPool {
		if picked, ok := e.rerank(ctx, ranked, topic, subject, c); ok {
			winner = picked
		}
	}

	return &PlaylistEntry{
		Position:        position,
		ItemID:          winner.ID,
		Title:           winner.Title,
		ChannelName:     winner.AuthorName,
		DurationSeconds: winner.DurationSeconds,
		DurationDisplay: formatDuration(winner.DurationSeconds),
		TopicMatched:    topic,
		Source:          SourceGapFill,
	}
}

// searchCandidates contains the catalog's fallibility: any error is an empty
// result so one failing external call cannot abort a multi-topic build.
func (e *Engine) searchCandidates(ctx context.Context, query string) []CandidateItem {
	items, err := e.catalog.Search(ctx, query)
	if err != nil {
		log.Printf("playlist-forge: engine: search %q: %v", query, err)
		return nil
	}
	return items
}

// rerank submits the top candidates to the advisory reranker. Failure,
// timeout, or an unknown winner id forfeits the refinement and keeps the
// density ranking's top pick.
func (e *Engine) rerank(ctx context.Context, ranked []CandidateItem, topic, subject string, c Constraints) (CandidateItem, bool) {
	top := ranked
	if len(top) > e.cfg.RerankTopN {
		top = top[:e.cfg.RerankTopN]
	}

	rctx, cancel := context.WithTimeout(ctx, e.cfg.RerankTimeout)
	defer cancel()

	winnerID, err := e.reranker.Rerank(rctx, top, RerankContext{
		Topic:           topic,
		Subject:         subject,
		ExperienceLabel: c.ExperienceLabel,
	})
	if err != nil {
		log.Printf("playlist-forge: engine: rerank %q: %v", topic, err)
		return CandidateItem{}, false
	}
	for _, item := range top {
		if item.ID == winnerID {
			return item, true
		}
	}
	return CandidateItem{}, false
}

// filterByDuration keeps items within [minSeconds, maxSeconds]; maxSeconds
// of 0 means no upper bound.
func filterByDuration(items []CandidateItem, minSeconds, maxSeconds int) []CandidateItem {
	var out []CandidateItem
	for _, item := range items {
		if item.DurationSeconds < minSeconds {
			continue
		}
		if maxSeconds > 0 && item.DurationSeconds > maxSeconds {
			continue
		}
		out = append(out, item)
	}
	return out
}
