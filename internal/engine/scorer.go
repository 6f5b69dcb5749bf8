package engine

import (
	"sort"
	"strings"
	"unicode"
)

// Density scoring weights. The score is an unbounded signed integer; only
// relative order within one candidate set matters.
const (
	boostCodeReference  = 40
	boostAcademic       = 25
	boostDocumentation  = 20
	boostTechnicalDepth = 15

	boostDurationLong   = 25
	boostDurationMedium = 15

	penaltyClickbait    = 50
	penaltyPopularThin  = 20
	penaltyShoutedTitle = 15

	durationLongSeconds   = 2700
	durationMediumSeconds = 1200

	popularThinViews    = 1_000_000
	popularThinDescLen  = 120
	shoutedTitleMinLen  = 12
	shoutedUpperRatio   = 0.6
)

var (
	codeReferenceKeywords = []string{
		"github.com", "github repo", "source code", "colab", "notebook",
		"code along", "starter code",
	}
	documentationKeywords = []string{
		"documentation", "official docs", "reference guide", "cheat sheet",
		"walkthrough",
	}
	academicKeywords = []string{
		"lecture", "university", "course", "mit", "stanford", "professor",
		"research paper",
	}
	technicalDepthKeywords = []string{
		"deep dive", "internals", "from scratch", "implementation",
		"architecture", "under the hood", "explained",
	}
	clickbaitKeywords = []string{
		"you won't believe", "in 5 minutes", "in 10 minutes", "secret trick",
		"gone wrong", "top 10", "#shorts", "will blow your mind", "insane",
	}
)

// ScoreResult carries the density score and the provenance flags of every
// signal that fired. Flags are for explainability only.
type ScoreResult struct {
	Score int
	Flags []string
}

// ScoreCandidate computes the heuristic information-density score for one
// candidate. Pure, no I/O. Keyword signals check title+description, first
// match wins per category. A clickbait hit short-circuits the positive
// signals but the structural penalties still apply.
func ScoreCandidate(item CandidateItem) ScoreResult {
	var res ScoreResult
	text := strings.ToLower(item.Title + " " + item.Description)

	clickbait := containsAny(text, clickbaitKeywords)
	if clickbait {
		res.Score -= penaltyClickbait
		res.Flags = append(res.Flags, "clickbait")
	} else {
		if containsAny(text, codeReferenceKeywords) {
			res.Score += boostCodeReference
			res.Flags = append(res.Flags, "code_reference")
		}
		if containsAny(text, documentationKeywords) {
			res.Score += boostDocumentation
			res.Flags = append(res.Flags, "documentation")
		}
		if containsAny(text, academicKeywords) {
			res.Score += boostAcademic
			res.Flags = append(res.Flags, "academic")
		}
		if containsAny(text, technicalDepthKeywords) {
			res.Score += boostTechnicalDepth
			res.Flags = append(res.Flags, "technical_depth")
		}
		switch {
		case item.DurationSeconds >= durationLongSeconds:
			res.Score += boostDurationLong
			res.Flags = append(res.Flags, "duration_long")
		case item.DurationSeconds >= durationMediumSeconds:
			res.Score += boostDurationMedium
			res.Flags = append(res.Flags, "duration_medium")
		}
	}

	if item.ViewCount > popularThinViews && len(item.Description) < popularThinDescLen {
		res.Score -= penaltyPopularThin
		res.Flags = append(res.Flags, "popular_thin_description")
	}
	if isMostlyUppercase(item.Title) {
		res.Score -= penaltyShoutedTitle
		res.Flags = append(res.Flags, "shouted_title")
	}

	return res
}

// RankByDensity returns a new slice of scored copies sorted by density score
// descending, ties broken by original order. Re-ranking an already-ranked
// slice yields the same order.
func RankByDensity(items []CandidateItem) []CandidateItem {
	ranked := make([]CandidateItem, len(items))
	for i, item := range items {
		res := ScoreCandidate(item)
		item.DensityScore = res.Score
		item.DensityFlags = res.Flags
		ranked[i] = item
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DensityScore > ranked[j].DensityScore
	})
	return ranked
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func isMostlyUppercase(title string) bool {
	var letters, upper int
	for _, r := range title {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	if letters < shoutedTitleMinLen {
		return false
	}
	return float64(upper)/float64(letters) > shoutedUpperRatio
}
