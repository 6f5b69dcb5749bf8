package engine

import (
	"context"
	"log"
	"math"
)

// AnchorHunt is the outcome of anchor discovery. A miss is not an error:
// FallbackChannels carries author names usable by an alternate strategy.
type AnchorHunt struct {
	Found            bool
	Anchor           *AnchorSequence
	FallbackChannels []string
}

// HuntAnchor discovers candidate pre-existing sequences for the subject,
// scores each one's coverage of the topic list, and selects the best sequence
// at or above the accept threshold. Sequences are evaluated sequentially in
// discovery order; the first one reaching the early-exit score wins without
// fetching the rest, since each fetch has a real external cost.
func (e *Engine) HuntAnchor(ctx context.Context, subject string, topics []string, languageSuffix string) AnchorHunt {
	query := subject + " course"
	if languageSuffix != "" {
		query += " " + languageSuffix
	}

	hits, err := e.catalog.SearchSequences(ctx, query)
	if err != nil {
		log.Printf("playlist-forge: engine: sequence search %q: %v", query, err)
		hits = nil
	}
	if len(hits) == 0 {
		return AnchorHunt{FallbackChannels: e.prominentChannels(ctx, query)}
	}
	if len(hits) > e.cfg.MaxSequences {
		hits = hits[:e.cfg.MaxSequences]
	}

	var best *AnchorSequence
	for _, hit := range hits {
		items, err := e.catalog.FetchSequenceItems(ctx, hit.ID)
		if err != nil {
			log.Printf("playlist-forge: engine: fetch sequence %s: %v", hit.ID, err)
			continue
		}
		if len(items) < e.cfg.MinSequenceItems {
			continue
		}

		seq := e.scoreCoverage(hit, items, topics)
		if best == nil || seq.CoverageScore > best.CoverageScore {
			best = seq
		}
		if best.CoverageScore >= e.cfg.AnchorEarlyExitScore {
			break
		}
	}

	if best != nil && best.CoverageScore >= e.cfg.AnchorAcceptScore {
		return AnchorHunt{Found: true, Anchor: best}
	}

	channels := make([]string, 0, e.cfg.MaxFallbackChannels)
	for _, hit := range hits {
		if hit.OwnerName == "" || contains(channels, hit.OwnerName) {
			continue
		}
		channels = append(channels, hit.OwnerName)
		if len(channels) == e.cfg.MaxFallbackChannels {
			break
		}
	}
	return AnchorHunt{FallbackChannels: channels}
}

// scoreCoverage runs every topic through the matcher against the sequence's
// item titles. Coverage is matched/total*100, rounded. Deterministic given
// the same items and threshold.
func (e *Engine) scoreCoverage(hit SequenceHit, items []AnchorItem, topics []string) *AnchorSequence {
	titles := make([]string, len(items))
	for i, item := range items {
		titles[i] = item.Title
	}

	seq := &AnchorSequence{
		ID:        hit.ID,
		Title:     hit.Title,
		OwnerName: hit.OwnerName,
		Items:     items,
	}
	for _, topic := range topics {
		if _, ok := e.matcher.Match(topic, titles); ok {
			seq.MatchedTopics = append(seq.MatchedTopics, topic)
		} else {
			seq.UnmatchedTopics = append(seq.UnmatchedTopics, topic)
		}
	}
	if len(topics) > 0 {
		seq.CoverageScore = int(math.Round(float64(len(seq.MatchedTopics)) / float64(len(topics)) * 100))
	}
	return seq
}

// prominentChannels mines author names from a plain item search as hints when
// no sequences exist at all.
func (e *Engine) prominentChannels(ctx context.Context, query string) []string {
	items, err := e.catalog.Search(ctx, query)
	if err != nil {
		log.Printf("playlist-forge: engine: channel fallback %q: %v", query, err)
		return nil
	}
	var channels []string
	for _, item := range items {
		if item.AuthorName == "" || contains(channels, item.AuthorName) {
			continue
		}
		channels = append(channels, item.AuthorName)
		if len(channels) == e.cfg.MaxFallbackChannels {
			break
		}
	}
	return channels
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
