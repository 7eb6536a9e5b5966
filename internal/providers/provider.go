package providers

import (
	"context"
	"fmt"
)

// CheckRequest contains the data sent to an LLM for one sentence check.
type CheckRequest struct {
	SystemPrompt string
	Sentence     string
	MaxTokens    int
	Temperature  float64
	TopP         float64
}

// CheckResponse contains the raw response from an LLM.
type CheckResponse struct {
	Content    string
	TokensUsed int
}

// Checker is the provider abstraction interface.
type Checker interface {
	Check(ctx context.Context, req CheckRequest) (CheckResponse, error)
	Name() string
}

// New creates a provider by name. maxRetries bounds retry attempts per
// request.
func New(provider, model string, maxRetries int) (Checker, error) {
	if maxRetries < 0 {
		maxRetries = 0
	}
	switch provider {
	case "ollama", "lmstudio":
		return NewOllama(model, maxRetries)
	case "openai":
		return NewOpenAI(model, maxRetries)
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}
