package llm

import "context"

// GenerationParams carries per-request sampling settings. Pointer fields
// are left at the backend's default when nil.
type GenerationParams struct {
	Temperature *float32 `json:"temperature"`
	TopP        *float32 `json:"top_p"`
	MaxTokens   *int     `json:"max_tokens"`
	Stop        []string `json:"stop"`

	// System is the system instruction sent alongside the prompt.
	System string `json:"system,omitempty"`
}

// LLMClient defines the standard interface for any LLM backend.
type LLMClient interface {
	Generate(ctx context.Context, prompt string, params GenerationParams) (string, error)
}
