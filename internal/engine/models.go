package engine

import (
	"time"
)

// CandidateItem is one discoverable external video, converted eagerly from the
// raw catalog response at the boundary. A scored copy carries DensityScore and
// DensityFlags; scoring never mutates its input.
type CandidateItem struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	DurationSeconds int      `json:"durationSeconds"`
	ViewCount       int64    `json:"viewCount"`
	AuthorName      string   `json:"authorName"`
	DensityScore    int      `json:"densityScore,omitempty"`
	DensityFlags    []string `json:"densityFlags,omitempty"`
}

// SequenceHit is a discovered pre-existing sequence (a hosted playlist),
// before its item list has been fetched.
type SequenceHit struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	OwnerName string `json:"ownerName"`
}

// AnchorItem is one item inside a discovered sequence. Position is the item's
// index within the original external sequence, not the final playlist.
type AnchorItem struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	DurationSeconds int    `json:"durationSeconds"`
	Position        int    `json:"position"`
}

// AnchorSequence is a scored coverage candidate. At most one is selected as
// the anchor for a build; it is immutable after scoring.
type AnchorSequence struct {
	ID              string       `json:"id"`
	Title           string       `json:"title"`
	OwnerName       string       `json:"ownerName"`
	Items           []AnchorItem `json:"items"`
	CoverageScore   int          `json:"coverageScore"`
	MatchedTopics   []string     `json:"matchedTopics"`
	UnmatchedTopics []string     `json:"unmatchedTopics"`
}

// PlaylistEntry sources.
const (
	SourceAnchor  = "anchor"
	SourceGapFill = "gap_fill"
	SourceOneShot = "one_shot"
)

// PlaylistEntry is the final output unit. Position is contiguous 0..N-1 in
// final order after the merge step renumbers; it never reflects original
// anchor or search positions.
type PlaylistEntry struct {
	Position        int    `json:"position"`
	ItemID          string `json:"itemId"`
	Title           string `json:"title"`
	ChannelName     string `json:"channelName"`
	DurationSeconds int    `json:"durationSeconds"`
	DurationDisplay string `json:"durationDisplay"`
	TopicMatched    string `json:"topicMatched"`
	Source          string `json:"source"`
}

// AnchorRef is the provenance of the anchor a build was based on.
type AnchorRef struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	OwnerName     string `json:"ownerName"`
	CoverageScore int    `json:"coverageScore"`
}

// PlaylistResult is a build's return value, owned by the caller.
type PlaylistResult struct {
	Subject              string          `json:"subject"`
	Entries              []PlaylistEntry `json:"entries"`
	TotalDurationSeconds int             `json:"totalDurationSeconds"`
	GapsFailed           []string        `json:"gapsFailed,omitempty"`
	Anchor               *AnchorRef      `json:"anchor,omitempty"`
	Preferences          Preferences     `json:"preferences"`
	CreatedAt            time.Time       `json:"createdAt"`
}

// topicMapping is the transient per-topic resolution record used during
// gap-filling. It is created fresh for every build and discarded after merge.
type topicMapping struct {
	topic      string
	position   int
	anchorItem *AnchorItem
	isGap      bool
	matchScore float64
}
