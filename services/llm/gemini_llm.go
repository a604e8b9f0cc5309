package llm

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// GeminiClient is an LLMClient backed by Google Gemini via langchaingo.
//
// Harm-block thresholds are disabled at construction: article titles are
// arbitrary text and must never be suppressed by content filtering.
type GeminiClient struct {
	llm   *googleai.GoogleAI
	model string
}

// NewGeminiClient builds a Gemini client from the environment.
//
// GEMINI_API_KEY is read from the environment, falling back to the
// /run/secrets/gemini_api_key Podman secret. GEMINI_MODEL selects the
// model, defaulting to gemini-2.0-flash.
func NewGeminiClient(ctx context.Context) (*GeminiClient, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	model := os.Getenv("GEMINI_MODEL")
	if apiKey == "" {
		secretPath := "/run/secrets/gemini_api_key"
		apiKeyBytes, err := os.ReadFile(secretPath)
		if err == nil {
			apiKey = strings.TrimSpace(string(apiKeyBytes))
			slog.Info("Read the Gemini API Key from Podman Secrets")
		} else {
			slog.Error("GEMINI_API_KEY environment variable not set and secret not found", "path", secretPath)
			return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
		}
	}
	if model == "" {
		model = "gemini-2.0-flash"
		slog.Warn("GEMINI_MODEL not set, defaulting to gemini-2.0-flash")
	}

	slog.Info("Initializing Gemini client", "model", model)
	llmClient, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
		googleai.WithHarmThreshold(googleai.HarmBlockNone),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	return &GeminiClient{
		llm:   llmClient,
		model: model,
	}, nil
}

// Generate implements the LLMClient interface
func (g *GeminiClient) Generate(ctx context.Context, prompt string, params GenerationParams) (string, error) {
	slog.Debug("Generating text via Gemini", "model", g.model)

	var messages []llms.MessageContent
	if params.System != "" {
		messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, params.System))
	}
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, prompt))

	var opts []llms.CallOption
	if params.Temperature != nil {
		opts = append(opts, llms.WithTemperature(float64(*params.Temperature)))
	}
	if params.TopP != nil {
		opts = append(opts, llms.WithTopP(float64(*params.TopP)))
	}
	if params.MaxTokens != nil {
		opts = append(opts, llms.WithMaxTokens(*params.MaxTokens))
	}
	if len(params.Stop) > 0 {
		opts = append(opts, llms.WithStopWords(params.Stop))
	}

	resp, err := g.llm.GenerateContent(ctx, messages, opts...)
	if err != nil {
		slog.Error("Gemini API call failed", "error", err)
		return "", fmt.Errorf("Gemini API call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		slog.Warn("Gemini returned no choices")
		return "", fmt.Errorf("Gemini returned no choices")
	}

	slog.Debug("Received response from Gemini", "stop_reason", resp.Choices[0].StopReason)
	return resp.Choices[0].Content, nil
}
