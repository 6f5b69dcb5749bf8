package api

import (
	"time"

	"github.com/ishitzzz/playlist-forge/internal/engine"
)

// BuildRecord is a persisted playlist build, returned as-is over HTTP.
type BuildRecord struct {
	ID                   string                 `json:"id"`
	Subject              string                 `json:"subject"`
	Topics               []string               `json:"topics"`
	Preferences          engine.Preferences     `json:"preferences"`
	Entries              []engine.PlaylistEntry `json:"entries"`
	TotalDurationSeconds int                    `json:"totalDurationSeconds"`
	GapsFailed           []string               `json:"gapsFailed,omitempty"`
	Anchor               *engine.AnchorRef      `json:"anchor,omitempty"`
	CreatedAt            time.Time              `json:"createdAt"`
}

// BuildSummary is the list view of a build; entries are loaded on demand.
type BuildSummary struct {
	ID                   string    `json:"id"`
	Subject              string    `json:"subject"`
	EntryCount           int       `json:"entryCount"`
	TotalDurationSeconds int       `json:"totalDurationSeconds"`
	CreatedAt            time.Time `json:"createdAt"`
}
