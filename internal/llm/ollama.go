package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// OllamaBackend is the local, self-hosted backend. It speaks the generate
// endpoint: {model, prompt, stream:false} in, {response} out.
type OllamaBackend struct {
	baseURL string
	model   string
	client  *http.Client
	logger  *slog.Logger
}

func NewOllama(baseURL, model string, timeout time.Duration, logger *slog.Logger) *OllamaBackend {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	return &OllamaBackend{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (b *OllamaBackend) Name() string { return "ollama" }

func (b *OllamaBackend) Generate(ctx context.Context, prompt string) (string, error) {
	body := map[string]any{
		"model":  b.model,
		"prompt": prompt,
		"stream": false,
	}
	raw, _, err := SendJSON(ctx, b.client, b.baseURL+"/api/generate", body, nil, b.logger)
	if err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}

	var out struct {
		Response string `json:"response"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("decode ollama response: %w", err)
	}
	return strings.TrimSpace(out.Response), nil
}
