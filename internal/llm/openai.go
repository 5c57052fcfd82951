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

const systemPrompt = "You are a helpful assistant that extracts structured data from documents."

// OpenAIBackend is the hosted backend, called over chat/completions with a
// chat-style message list.
type OpenAIBackend struct {
	apiKey      string
	baseURL     string
	model       string
	temperature float32
	client      *http.Client
	logger      *slog.Logger
}

func NewOpenAI(apiKey, baseURL, model string, temperature float32, timeout time.Duration, logger *slog.Logger) *OpenAIBackend {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	return &OpenAIBackend{
		apiKey:      apiKey,
		baseURL:     strings.TrimRight(baseURL, "/"),
		model:       model,
		temperature: temperature,
		client:      &http.Client{Timeout: timeout},
		logger:      logger,
	}
}

func (b *OpenAIBackend) Name() string { return "openai" }

func (b *OpenAIBackend) Generate(ctx context.Context, prompt string) (string, error) {
	body := map[string]any{
		"model":       b.model,
		"temperature": b.temperature,
		"max_tokens":  2000,
		"messages": []map[string]any{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": prompt},
		},
	}
	headers := map[string]string{"Authorization": "Bearer " + b.apiKey}

	raw, _, err := SendJSON(ctx, b.client, b.baseURL+"/chat/completions", body, headers, b.logger)
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		return "", fmt.Errorf("decode openai response: %w", err)
	}
	if len(cc.Choices) == 0 {
		return "", fmt.Errorf("no choices in openai response")
	}
	return strings.TrimSpace(cc.Choices[0].Message.Content), nil
}
