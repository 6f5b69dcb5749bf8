package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// The extraction output contract: an ordered table of contents. Topic order
// is treated as pedagogically meaningful downstream, so the prompt insists
// on document order.
var syllabusSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"subject": map[string]any{"type": "string"},
		"topics": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
	},
	"required": []string{"subject", "topics"},
}

const extractPrompt = `You are given a course syllabus. Extract the subject
title and the ordered list of learnable topics exactly in the order the
syllabus presents them. Topics are short noun phrases; skip administrative
sections (grading, office hours, prerequisites).`

type syllabusPayload struct {
	Subject string   `json:"subject"`
	Topics  []string `json:"topics"`
}

// ExtractText pulls the subject and ordered topic list from a syllabus given
// as plain text.
func (c *Client) ExtractText(ctx context.Context, text string) (string, []string, error) {
	parts := []genPart{
		{Text: extractPrompt},
		{Text: text},
	}
	return c.extract(ctx, parts)
}

// ExtractImage does the same for a syllabus photo or scan.
func (c *Client) ExtractImage(ctx context.Context, data []byte, mimeType string) (string, []string, error) {
	parts := []genPart{
		{Text: extractPrompt},
		inlinePart(data, mimeType),
	}
	return c.extract(ctx, parts)
}

func (c *Client) extract(ctx context.Context, parts []genPart) (string, []string, error) {
	raw, err := c.generate(ctx, parts, syllabusSchema)
	if err != nil {
		return "", nil, fmt.Errorf("extract syllabus: %w", err)
	}

	var payload syllabusPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", nil, fmt.Errorf("extract syllabus: decode: %w", err)
	}

	topics := make([]string, 0, len(payload.Topics))
	for _, t := range payload.Topics {
		if t = strings.TrimSpace(t); t != "" {
			topics = append(topics, t)
		}
	}
	if len(topics) == 0 {
		return "", nil, fmt.Errorf("extract syllabus: no topics found")
	}
	return strings.TrimSpace(payload.Subject), topics, nil
}
