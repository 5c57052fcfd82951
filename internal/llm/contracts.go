package llm

import (
	"context"
	"time"
)

// Backend is a language-model execution endpoint. Implementations take a
// fully built prompt and return the raw generated text; they perform exactly
// one bounded request/response call, no retries.
type Backend interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// Config describes which backends are available for this process. It decides
// availability, not per-call preference: the hosted backend is attempted
// first whenever a credential is present.
type Config struct {
	OllamaBaseURL string
	OllamaModel   string

	OpenAIAPIKey  string // empty means the hosted backend is not available
	OpenAIBaseURL string
	OpenAIModel   string
	Temperature   float32

	Timeout time.Duration // per-call HTTP timeout for both backends
}

func (c Config) withDefaults() Config {
	if c.OllamaBaseURL == "" {
		c.OllamaBaseURL = "http://localhost:11434"
	}
	if c.OllamaModel == "" {
		c.OllamaModel = "llama2"
	}
	if c.OpenAIBaseURL == "" {
		c.OpenAIBaseURL = "https://api.openai.com/v1"
	}
	if c.OpenAIModel == "" {
		c.OpenAIModel = "gpt-3.5-turbo"
	}
	if c.Temperature == 0 {
		c.Temperature = 0.3
	}
	if c.Timeout <= 0 {
		c.Timeout = 45 * time.Second
	}
	return c
}
