package engine

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"
)

// FillGaps maps every topic to either an anchor item or a gap, resolves every
// gap independently, and merges the two sources into one contiguous sequence.
// A nil anchor resolves every topic as a gap (scratch build). Unresolvable
// topics are reported in the second return value and simply absent from the
// playlist; they never abort the remaining gaps.
func (e *Engine) FillGaps(ctx context.Context, anchor *AnchorSequence, topics []string, subject string, c Constraints) ([]PlaylistEntry, []string) {
	var titles []string
	if anchor != nil {
		titles = make([]string, len(anchor.Items))
		for i, item := range anchor.Items {
			titles[i] = item.Title
		}
	}

	mappings := make([]topicMapping, len(topics))
	for i, topic := range topics {
		m := topicMapping{topic: topic, position: i, isGap: true}
		if anchor != nil {
			if res, ok := e.matcher.Match(topic, titles); ok {
				m.anchorItem = &anchor.Items[res.Index]
				m.isGap = false
				m.matchScore = res.Score
			}
		}
		mappings[i] = m
	}

	// Each gap writes only its own slot, so completion order cannot affect
	// the merge.
	slots := make([]*PlaylistEntry, len(topics))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.GapWorkers)
	for _, m := range mappings {
		if !m.isGap {
			continue
		}
		m := m
		g.Go(func() error {
			slots[m.position] = e.resolve(gctx, m.topic, subject, c, m.position)
			return nil
		})
	}
	_ = g.Wait()

	var entries []PlaylistEntry
	var gapsFailed []string
	for _, m := range mappings {
		switch {
		case !m.isGap:
			entries = append(entries, PlaylistEntry{
				Position:        m.position,
				ItemID:          m.anchorItem.ID,
				Title:           m.anchorItem.Title,
				ChannelName:     anchor.OwnerName,
				DurationSeconds: m.anchorItem.DurationSeconds,
				DurationDisplay: formatDuration(m.anchorItem.DurationSeconds),
				TopicMatched:    m.topic,
				Source:          SourceAnchor,
			})
		case slots[m.position] != nil:
			entries = append(entries, *slots[m.position])
		default:
			gapsFailed = append(gapsFailed, m.topic)
		}
	}

	// Defensive: the walk above already emits in position order.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Position < entries[j].Position
	})
	renumber(entries)
	return entries, gapsFailed
}

// BuildFromScratch resolves every topic as a gap, preserving input order.
func (e *Engine) BuildFromScratch(ctx context.Context, topics []string, subject string, c Constraints) ([]PlaylistEntry, []string) {
	return e.FillGaps(ctx, nil, topics, subject, c)
}

// renumber reassigns positions to be contiguous from 0. Mandatory after
// merge: the public position field must never contain holes or echo original
// anchor or search positions.
func renumber(entries []PlaylistEntry) {
	for i := range entries {
		entries[i].Position = i
	}
}
