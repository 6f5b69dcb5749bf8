package engine

import "strings"

// Query-understanding keywords. A topic phrased as a concept gets an
// explanation-oriented decoration, a topic phrased as a task gets a
// tutorial-oriented one.
var (
	conceptCues   = []string{"introduction", "basics", "what is", "overview", "theory", "notation"}
	practicalCues = []string{"build", "implement", "using", "with", "setup", "deploy", "hands-on"}
)

// deriveIntent is a pure text transform classifying how a topic is phrased.
func deriveIntent(topic string) string {
	t := strings.ToLower(topic)
	for _, cue := range practicalCues {
		if strings.Contains(t, cue) {
			return "tutorial"
		}
	}
	for _, cue := range conceptCues {
		if strings.Contains(t, cue) {
			return "explained"
		}
	}
	return "tutorial"
}

// buildSearchQuery contextualizes a topic with the subject, the derived
// intent decoration, and the language suffix from the constraints.
func buildSearchQuery(topic, subject string, c Constraints) string {
	parts := []string{topic}
	if subject != "" && !strings.EqualFold(topic, subject) {
		parts = append(parts, subject)
	}
	parts = append(parts, deriveIntent(topic))
	if c.LanguageSuffix != "" {
		parts = append(parts, c.LanguageSuffix)
	}
	return strings.Join(parts, " ")
}
