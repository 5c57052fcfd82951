package common

import (
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig()

	if cfg.Catalog.CSVPath != "data/rates.csv" {
		t.Errorf("rates path default = %q", cfg.Catalog.CSVPath)
	}
	if cfg.Matcher.DescriptionWeight != 0.8 || cfg.Matcher.UnitWeight != 0.2 {
		t.Errorf("weight defaults = %v/%v, want 0.8/0.2", cfg.Matcher.DescriptionWeight, cfg.Matcher.UnitWeight)
	}
	if cfg.Matcher.MinConfidence != 0.3 {
		t.Errorf("confidence floor default = %v, want 0.3", cfg.Matcher.MinConfidence)
	}
	if cfg.LLM.OllamaBaseURL != "http://localhost:11434" {
		t.Errorf("ollama url default = %q", cfg.LLM.OllamaBaseURL)
	}
	if cfg.LLM.Timeout != 45*time.Second {
		t.Errorf("timeout default = %v", cfg.LLM.Timeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("RATES_CSV", "/tmp/custom.csv")
	t.Setenv("MATCH_MIN_CONFIDENCE", "0.5")
	t.Setenv("LLM_TIMEOUT", "10s")

	cfg := LoadConfig()
	if cfg.Catalog.CSVPath != "/tmp/custom.csv" {
		t.Errorf("rates path = %q", cfg.Catalog.CSVPath)
	}
	if cfg.Matcher.MinConfidence != 0.5 {
		t.Errorf("confidence floor = %v", cfg.Matcher.MinConfidence)
	}
	if cfg.LLM.Timeout != 10*time.Second {
		t.Errorf("timeout = %v", cfg.LLM.Timeout)
	}
}

func TestValidate_RejectsBadValues(t *testing.T) {
	cfg := LoadConfig()
	cfg.Matcher.MinConfidence = 1.5
	if err := cfg.Validate(); err == nil {
		t.Error("confidence floor above 1 must be rejected")
	}

	cfg = LoadConfig()
	cfg.Catalog.CSVPath = ""
	if err := cfg.Validate(); err == nil {
		t.Error("empty rates path must be rejected")
	}
}
