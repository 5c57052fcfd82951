package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Catalog CatalogConfig
	Matcher MatcherConfig
	LLM     LLMConfig
}

// CatalogConfig holds rate-book configuration
type CatalogConfig struct {
	CSVPath string
}

// MatcherConfig holds similarity-matcher tunables. The defaults privilege
// description overlap over unit equality and reject low-overlap suggestions.
type MatcherConfig struct {
	DescriptionWeight float64
	UnitWeight        float64
	MinConfidence     float64
}

// LLMConfig holds language-model backend configuration
type LLMConfig struct {
	OllamaBaseURL string
	OllamaModel   string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
	Temperature   float32
	Timeout       time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			CSVPath: getEnv("RATES_CSV", "data/rates.csv"),
		},
		Matcher: MatcherConfig{
			DescriptionWeight: getEnvAsFloat64("MATCH_DESC_WEIGHT", 0.8),
			UnitWeight:        getEnvAsFloat64("MATCH_UNIT_WEIGHT", 0.2),
			MinConfidence:     getEnvAsFloat64("MATCH_MIN_CONFIDENCE", 0.3),
		},
		LLM: LLMConfig{
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:   getEnv("OLLAMA_MODEL", "llama2"),
			OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
			OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
			Temperature:   getEnvAsFloat32("OPENAI_TEMPERATURE", 0.3),
			Timeout:       getEnvAsDuration("LLM_TIMEOUT", 45*time.Second),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// ValidateConfig validates the loaded configuration
func (c *Config) Validate() error {
	if c.Catalog.CSVPath == "" {
		return NewAppError("CONFIG_ERROR", "RATES_CSV is required", ErrInvalidInput)
	}
	if c.Matcher.DescriptionWeight < 0 || c.Matcher.UnitWeight < 0 {
		return NewAppError("CONFIG_ERROR", "matcher weights must be non-negative", ErrInvalidInput)
	}
	if c.Matcher.MinConfidence < 0 || c.Matcher.MinConfidence > 1 {
		return NewAppError("CONFIG_ERROR", "MATCH_MIN_CONFIDENCE must be in [0,1]", ErrInvalidInput)
	}
	return nil
}
