package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

const defaultOllamaURL = "http://localhost:11434"

// Ollama implements the Checker interface for Ollama and LM Studio
// (OpenAI-compatible API).
type Ollama struct {
	apiKey     string
	model      string
	baseURL    string
	maxRetries int
	client     *http.Client
}

// NewOllama creates a new Ollama provider. No API key is required by
// default.
func NewOllama(model string, maxRetries int) (*Ollama, error) {
	baseURL := os.Getenv("OLLAMA_HOST")
	if baseURL == "" {
		baseURL = defaultOllamaURL
	}

	// Normalize URL: strip trailing /, /v1, /v1/chat/completions
	baseURL = strings.TrimRight(baseURL, "/")
	baseURL = strings.TrimSuffix(baseURL, "/v1/chat/completions")
	baseURL = strings.TrimSuffix(baseURL, "/v1")

	// Optional API key for servers that require it (e.g., LM Studio)
	apiKey := os.Getenv("MDPROOF_OLLAMA_API_KEY")

	return &Ollama{
		apiKey:     apiKey,
		model:      model,
		baseURL:    baseURL + "/v1/chat/completions",
		maxRetries: maxRetries,
		client:     &http.Client{Timeout: 300 * time.Second},
	}, nil
}

func (o *Ollama) Name() string { return "ollama" }

func (o *Ollama) Check(ctx context.Context, req CheckRequest) (CheckResponse, error) {
	payload, err := json.Marshal(buildChatRequest(o.model, req))
	if err != nil {
		return CheckResponse{}, fmt.Errorf("marshaling request: %w", err)
	}

	var resp CheckResponse
	err = retryWithBackoff(ctx, o.maxRetries, func() error {
		httpReq, err := http.NewRequestWithContext(ctx, "POST", o.baseURL, bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}
		httpReq.Header.Set("Content-Type", "application/json")
		if o.apiKey != "" {
			httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)
		}

		result, err := doChat(o.client, httpReq)
		if err != nil {
			return err
		}
		resp = result
		return nil
	})

	return resp, err
}
