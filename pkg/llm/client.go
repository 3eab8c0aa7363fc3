package llm

import (
	"context"
	"fmt"
)

const systemPrompt = "You are an expert AI news editor."

const DefaultEndpoint = "https://api.openai.com/v1/responses"

// Config carries everything needed to reach a generation endpoint.
type Config struct {
	APIKey   string
	Model    string
	Endpoint string
}

// Generator produces the brief text for a prompt. Streaming implementations
// deliver incremental text through onDelta; non-streaming ones deliver the
// whole document as a single delta. Both callbacks are invoked sequentially
// from a single goroutine, in arrival order.
type Generator interface {
	Generate(ctx context.Context, prompt string, onStatus func(string), onDelta func(string)) (string, error)
}

// NewGenerator selects a provider implementation by name. The raw streaming
// Responses client is the default.
func NewGenerator(provider string, cfg Config) (Generator, error) {
	switch provider {
	case "", "responses":
		return NewStreamClient(cfg), nil
	case "openai-chat":
		return NewChatClient(cfg.APIKey, cfg.Model), nil
	case "anthropic":
		return NewAnthropicClient(cfg.APIKey, cfg.Model), nil
	default:
		return nil, &GenerationError{Kind: KindConfig, Message: fmt.Sprintf("unknown provider %q", provider)}
	}
}
