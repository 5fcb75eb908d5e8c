package coach

import "github.com/bernhaaard/mental-math-trainer-sub002/internal/llm"

// WalkthroughSchema defines the JSON shape of a coached walkthrough.
var WalkthroughSchema = &llm.Schema{
	Name:        "derivation-walkthrough",
	Description: "A friendly step-by-step retelling of a mental multiplication derivation",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"intro": map[string]any{
				"type":        "string",
				"description": "One or two sentences on why this method fits the numbers",
			},
			"steps": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "One short sentence per derivation step, in order",
			},
			"tip": map[string]any{
				"type":        "string",
				"description": "How to spot this pattern next time (one sentence)",
			},
			"final_answer": map[string]any{
				"type":        "integer",
				"description": "The product the derivation arrives at",
			},
		},
		"required":             []any{"intro", "steps", "tip", "final_answer"},
		"additionalProperties": false,
	},
}

type walkthroughOutput struct {
	Intro       string   `json:"intro"`
	Steps       []string `json:"steps"`
	Tip         string   `json:"tip"`
	FinalAnswer int64    `json:"final_answer"`
}
