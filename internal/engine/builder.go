package engine

import (
	"context"
	"errors"
	"log"
	"time"
)

// ErrNoTopics means the caller handed the engine nothing to build from.
var ErrNoTopics = errors.New("engine: topic list is empty")

// BuildFromTopics turns an ordered topic list into a playlist. The topic
// order is trusted as pedagogically meaningful and is never reordered here.
// Mode dispatch: one-shot short-circuits the anchor/gap pipeline; otherwise
// an anchor hunt decides between gap-filling and a scratch build. The only
// hard failure is a playlist with zero entries.
func (e *Engine) BuildFromTopics(ctx context.Context, subject string, topics []string, prefs Preferences) (*PlaylistResult, error) {
	if len(topics) == 0 {
		return nil, ErrNoTopics
	}
	c := ResolvePreferences(prefs)

	result := &PlaylistResult{
		Subject:     subject,
		Preferences: prefs,
		CreatedAt:   time.Now().UTC(),
	}

	if c.Mode == ModeOneShot {
		result.Entries = e.SearchOneShot(ctx, subject, c)
	} else {
		hunt := e.HuntAnchor(ctx, subject, topics, c.LanguageSuffix)
		if hunt.Found {
			result.Anchor = &AnchorRef{
				ID:            hunt.Anchor.ID,
				Title:         hunt.Anchor.Title,
				OwnerName:     hunt.Anchor.OwnerName,
				CoverageScore: hunt.Anchor.CoverageScore,
			}
			result.Entries, result.GapsFailed = e.FillGaps(ctx, hunt.Anchor, topics, subject, c)
		} else {
			if len(hunt.FallbackChannels) > 0 {
				log.Printf("playlist-forge: engine: no anchor for %q, candidate channels: %v", subject, hunt.FallbackChannels)
			}
			result.Entries, result.GapsFailed = e.BuildFromScratch(ctx, topics, subject, c)
		}
	}

	if len(result.Entries) == 0 {
		return nil, ErrEmptyPlaylist
	}
	for _, entry := range result.Entries {
		result.TotalDurationSeconds += entry.DurationSeconds
	}
	return result, nil
}

// BuildOneShot exposes the one-shot acquisition path directly.
func (e *Engine) BuildOneShot(ctx context.Context, subject string, prefs Preferences) ([]PlaylistEntry, error) {
	entries := e.SearchOneShot(ctx, subject, ResolvePreferences(prefs))
	if len(entries) == 0 {
		return nil, ErrEmptyPlaylist
	}
	return entries, nil
}
