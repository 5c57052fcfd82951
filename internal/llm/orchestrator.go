// Package llm builds structured-extraction prompts, dispatches them to a
// preferred language-model backend with a single hosted-to-local fallback,
// and parses the response against a documented schema. Backend availability
// failures are retried across backends; parse failures degrade to an empty
// result, since a malformed response from a reachable backend is unlikely to
// self-correct on immediate retry.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/stammy5/ampere-docproc/internal/common"
	"github.com/stammy5/ampere-docproc/internal/entity"
)

// Orchestrator dispatches extraction prompts across an ordered list of
// backends. The order is fixed at construction: hosted first when a
// credential is configured, then local; a process without a hosted credential
// only ever calls the local backend.
type Orchestrator struct {
	backends []Backend
	logger   *slog.Logger
}

func NewOrchestrator(cfg Config, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	cfg = cfg.withDefaults()

	var backends []Backend
	if cfg.OpenAIAPIKey != "" {
		backends = append(backends, NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, cfg.Temperature, cfg.Timeout, logger))
	}
	backends = append(backends, NewOllama(cfg.OllamaBaseURL, cfg.OllamaModel, cfg.Timeout, logger))

	return &Orchestrator{backends: backends, logger: logger}
}

// NewOrchestratorWithBackends wires an explicit backend order.
func NewOrchestratorWithBackends(logger *slog.Logger, backends ...Backend) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{backends: backends, logger: logger}
}

// ExtractInvoice extracts structured invoice data from raw document text.
// Backend failures (after fallback) propagate; a response that cannot be
// parsed or does not match the schema yields the empty InvoiceData and a nil
// error; callers must treat that as "no extraction", not as an error.
func (o *Orchestrator) ExtractInvoice(ctx context.Context, text string) (entity.InvoiceData, error) {
	rid := requestID(ctx)
	start := time.Now()
	o.logger.Info("llm.extract_invoice.start", "req_id", rid, "text_len", len(text))

	raw, backend, err := o.generate(ctx, rid, BuildInvoicePrompt(text))
	if err != nil {
		return entity.InvoiceData{}, err
	}

	var out entity.InvoiceData
	if ok := o.parseStructured(rid, backend, raw, BuildInvoiceJSONSchema(), &out); !ok {
		return entity.InvoiceData{}, nil
	}

	o.logger.Info("llm.extract_invoice.ok",
		"req_id", rid,
		"backend", backend,
		"vendor", out.VendorName,
		"line_items", len(out.LineItems),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}

// SuggestRates asks the model for unit-rate suggestions for SOR/BOQ items.
// Same contract as ExtractInvoice: backend failure propagates, parse failure
// degrades to an empty sequence.
func (o *Orchestrator) SuggestRates(ctx context.Context, items []entity.Item) ([]entity.RateSuggestion, error) {
	rid := requestID(ctx)
	start := time.Now()
	o.logger.Info("llm.suggest_rates.start", "req_id", rid, "items", len(items))

	raw, backend, err := o.generate(ctx, rid, BuildSuggestPrompt(items))
	if err != nil {
		return nil, err
	}

	var out []entity.RateSuggestion
	if ok := o.parseStructured(rid, backend, raw, BuildSuggestionsJSONSchema(), &out); !ok {
		return []entity.RateSuggestion{}, nil
	}

	o.logger.Info("llm.suggest_rates.ok",
		"req_id", rid,
		"backend", backend,
		"suggestions", len(out),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}

// requestID reuses the pipeline's request ID when one is on the context, so
// log lines from both layers correlate; direct callers get a fresh one.
func requestID(ctx context.Context) string {
	if rid := common.RequestIDFromContext(ctx); rid != "" {
		return rid
	}
	return uuid.New().String()
}

// generate walks the backend order, falling through on any failure. Only when
// every backend has failed does the last failure propagate; no backend is
// retried against itself.
func (o *Orchestrator) generate(ctx context.Context, rid, prompt string) (raw, backend string, err error) {
	var lastErr error
	for _, b := range o.backends {
		resp, genErr := b.Generate(ctx, prompt)
		if genErr != nil {
			o.logger.Warn("llm.backend.failed", "req_id", rid, "backend", b.Name(), "error", genErr)
			lastErr = genErr
			continue
		}
		return resp, b.Name(), nil
	}
	if lastErr == nil {
		lastErr = common.ErrBackendUnavailable
	}
	return "", "", fmt.Errorf("all language model backends failed: %w", lastErr)
}

// parseStructured runs the response through lenient payload extraction,
// schema validation and unmarshalling. Any failure logs a warning and reports
// false; the caller substitutes the empty result.
func (o *Orchestrator) parseStructured(rid, backend string, raw string, schema map[string]any, dst any) bool {
	payload := ExtractJSONPayload(raw)
	if payload == "" {
		o.logger.Warn("llm.parse.no_json_payload", "req_id", rid, "backend", backend, "raw_len", len(raw))
		return false
	}
	if err := ValidateJSONAgainstSchema(schema, []byte(payload)); err != nil {
		o.logger.Warn("llm.parse.schema_validation_failed", "req_id", rid, "backend", backend, "error", err)
		return false
	}
	if err := json.Unmarshal([]byte(payload), dst); err != nil {
		o.logger.Warn("llm.parse.unmarshal_failed", "req_id", rid, "backend", backend, "error", err)
		return false
	}
	return true
}
