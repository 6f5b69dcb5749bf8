package engine

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Catalog is the external search boundary. Implementations must be assumed
// fallible and latency-bearing; the engine treats every error as an empty
// result and never retries beyond the resolver's single simplified-query
// retry.
type Catalog interface {
	Search(ctx context.Context, query string) ([]CandidateItem, error)
	SearchSequences(ctx context.Context, query string) ([]SequenceHit, error)
	FetchSequenceItems(ctx context.Context, sequenceID string) ([]AnchorItem, error)
}

// RerankContext is the metadata handed to the reranking collaborator.
type RerankContext struct {
	Topic           string
	Subject         string
	ExperienceLabel string
}

// Reranker is the optional advisory tie-breaker. The returned winner id is
// only trusted if it names one of the candidates that were submitted.
type Reranker interface {
	Rerank(ctx context.Context, candidates []CandidateItem, rc RerankContext) (string, error)
}

// ErrEmptyPlaylist is returned when zero topics resolve; a playlist with no
// entries has no value.
var ErrEmptyPlaylist = errors.New("engine: no topics could be resolved")

// Config holds the engine's tunables. The anchor thresholds are fixed
// constants with no validated derivation, so they are configuration rather
// than logic.
type Config struct {
	MatchThreshold       float64
	AnchorAcceptScore    int
	AnchorEarlyExitScore int
	MaxSequences         int
	MinSequenceItems     int
	MaxFallbackChannels  int

	RerankMinPool int
	RerankTopN    int
	RerankTimeout time.Duration

	AbsoluteMinSeconds int
	GapWorkers         int

	OneShotFloorSeconds        int
	OneShotRelaxedFloorSeconds int
	OneShotMaxEntries          int
}

func DefaultConfig() Config {
	return Config{
		MatchThreshold:       DefaultMatchThreshold,
		AnchorAcceptScore:    50,
		AnchorEarlyExitScore: 80,
		MaxSequences:         5,
		MinSequenceItems:     3,
		MaxFallbackChannels:  3,

		RerankMinPool: 3,
		RerankTopN:    5,
		RerankTimeout: 8 * time.Second,

		AbsoluteMinSeconds: 60,
		GapWorkers:         4,

		OneShotFloorSeconds:        3600,
		OneShotRelaxedFloorSeconds: 1200,
		OneShotMaxEntries:          3,
	}
}

// Engine resolves a topic list into a playlist. One Engine is safe for
// concurrent builds; a build itself holds no shared mutable state.
type Engine struct {
	catalog  Catalog
	reranker Reranker // nil disables the refinement tier
	matcher  *Matcher
	cfg      Config
}

func New(catalog Catalog, reranker Reranker, cfg Config) *Engine {
	if cfg.MaxSequences <= 0 {
		cfg = DefaultConfig()
	}
	return &Engine{
		catalog:  catalog,
		reranker: reranker,
		matcher:  NewMatcher(cfg.MatchThreshold),
		cfg:      cfg,
	}
}

func formatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := seconds % 3600 / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
