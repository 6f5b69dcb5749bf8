package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ishitzzz/playlist-forge/internal/engine"
)

var rerankSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"winnerId": map[string]any{"type": "string"},
	},
	"required": []string{"winnerId"},
}

type rerankPayload struct {
	WinnerID string `json:"winnerId"`
}

// Rerank asks the model to pick the single best candidate for a learner.
// It implements engine.Reranker; the engine validates the returned id
// against what it submitted, so this method only reports what the model
// said.
func (c *Client) Rerank(ctx context.Context, candidates []engine.CandidateItem, rc engine.RerankContext) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Pick the best video for a %s learner studying %q", rc.ExperienceLabel, rc.Topic)
	if rc.Subject != "" {
		fmt.Fprintf(&b, " as part of %q", rc.Subject)
	}
	b.WriteString(". Answer with the winning video's id.\n\nCandidates:\n")
	for _, cand := range candidates {
		desc := cand.Description
		if len(desc) > 200 {
			desc = desc[:200]
		}
		fmt.Fprintf(&b, "- id=%s title=%q channel=%q duration=%ds description=%q\n",
			cand.ID, cand.Title, cand.AuthorName, cand.DurationSeconds, desc)
	}

	raw, err := c.generate(ctx, []genPart{{Text: b.String()}}, rerankSchema)
	if err != nil {
		return "", fmt.Errorf("rerank: %w", err)
	}

	var payload rerankPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", fmt.Errorf("rerank: decode: %w", err)
	}
	return payload.WinnerID, nil
}
