package engine

import (
	"strings"
	"unicode"

	"github.com/xrash/smetrics"
)

// DefaultMatchThreshold is the distance at or above which a candidate does not
// count as a match.
const DefaultMatchThreshold = 0.4

// matchEpsilon: score deltas below this are ties, and ties are won by the
// earliest candidate in input order.
const matchEpsilon = 1e-9

// Matcher scores how far a topic string is from a candidate title. Scores are
// normalized to [0,1], lower is better. The same matcher instance is used for
// sequence coverage scoring and for topic-to-anchor mapping so the two can
// never disagree about what counts as matched.
type Matcher struct {
	threshold float64
}

func NewMatcher(threshold float64) *Matcher {
	if threshold <= 0 {
		threshold = DefaultMatchThreshold
	}
	return &Matcher{threshold: threshold}
}

func (m *Matcher) Threshold() float64 { return m.threshold }

// MatchResult identifies the winning candidate by its index in the input slice.
type MatchResult struct {
	Index int
	Title string
	Score float64
}

// Match returns the best candidate title strictly below the threshold, or
// ok=false when nothing qualifies. Iteration order is input order and only a
// strictly better score displaces the current best.
func (m *Matcher) Match(query string, titles []string) (MatchResult, bool) {
	best := MatchResult{Index: -1, Score: 1}
	for i, title := range titles {
		score := m.Distance(query, title)
		if score < best.Score-matchEpsilon {
			best = MatchResult{Index: i, Title: title, Score: score}
		}
	}
	if best.Index < 0 || best.Score >= m.threshold {
		return MatchResult{Index: -1, Score: 1}, false
	}
	return best, true
}

// Distance is a token-aware normalized edit distance. Both strings are
// lowercased and stripped of punctuation; each query token is matched against
// its closest title token by Wagner-Fischer distance (substitution cost 2, so
// the distance is normalized by the combined token length), and the per-token
// distances are averaged. A query wholly contained in the title is a
// near-exact match regardless of the surrounding words.
func (m *Matcher) Distance(query, title string) float64 {
	q := normalizeText(query)
	t := normalizeText(title)
	if q == "" || t == "" {
		return 1
	}
	if q == t {
		return 0
	}
	if strings.Contains(" "+t+" ", " "+q+" ") {
		return 0.05
	}

	qTokens := strings.Fields(q)
	tTokens := strings.Fields(t)
	var sum float64
	for _, qt := range qTokens {
		best := 1.0
		for _, tt := range tTokens {
			d := tokenDistance(qt, tt)
			if d < best {
				best = d
			}
			if best == 0 {
				break
			}
		}
		sum += best
	}
	return sum / float64(len(qTokens))
}

func tokenDistance(a, b string) float64 {
	if a == b {
		return 0
	}
	d := smetrics.WagnerFischer(a, b, 1, 1, 2)
	return float64(d) / float64(len(a)+len(b))
}

func normalizeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
