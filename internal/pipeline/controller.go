// Package pipeline composes extraction, normalization, matching and
// language-model suggestion into the two document flows: invoices and
// SOR/BOQ schedules. Requests are independent; the only shared state is the
// read path into the rate catalog and the orchestrator's backend descriptors.
package pipeline

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/stammy5/ampere-docproc/constants"
	"github.com/stammy5/ampere-docproc/internal/common"
	"github.com/stammy5/ampere-docproc/internal/entity"
	"github.com/stammy5/ampere-docproc/internal/extract"
	"github.com/stammy5/ampere-docproc/internal/normalize"
	"github.com/stammy5/ampere-docproc/internal/render"
)

// RateMatcher is the catalog-matching stage.
type RateMatcher interface {
	Match(items []entity.Item) []entity.MatchedItem
}

// Extractor is the language-model stage.
type Extractor interface {
	ExtractInvoice(ctx context.Context, text string) (entity.InvoiceData, error)
	SuggestRates(ctx context.Context, items []entity.Item) ([]entity.RateSuggestion, error)
}

// Deps are the explicitly constructed collaborators a Controller composes.
// Nothing here is ambient or global.
type Deps struct {
	PDFText    extract.TextExtractor
	ImageOCR   extract.TextExtractor
	Tables     extract.TableExtractor
	Pattern    *extract.PatternExtractor
	Normalizer *normalize.Normalizer
	Matcher    RateMatcher
	LLM        Extractor
	Renderer   render.Renderer
	Logger     *slog.Logger
}

// Controller drives one document through its processing states.
type Controller struct {
	deps   Deps
	logger *slog.Logger
}

func NewController(deps Deps) *Controller {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Pattern == nil {
		deps.Pattern = extract.NewPatternExtractor()
	}
	return &Controller{deps: deps, logger: deps.Logger}
}

// InvoiceResult is the outcome of one invoice request.
type InvoiceResult struct {
	Data             entity.InvoiceData `json:"data"`
	FileSize         int                `json:"file_size"`
	ContentType      string             `json:"content_type"`
	ExtractionMethod string             `json:"extraction_method"`
}

// SORResult is the outcome of one SOR/BOQ request. Excel is set only when
// the excel output format was requested.
type SORResult struct {
	Items            []entity.MatchedItem `json:"data"`
	Excel            []byte               `json:"excel_data,omitempty"`
	ExtractionMethod string               `json:"extraction_method"`
}

// ProcessInvoice extracts text from the document and pulls structured invoice
// fields out of it, via the language model when useLLM is set, otherwise via
// pattern matching. An unsupported content type rejects before any extraction.
func (c *Controller) ProcessInvoice(ctx context.Context, content []byte, contentType string, useLLM bool) (*InvoiceResult, error) {
	rid := uuid.New().String()
	ctx = common.WithRequestID(ctx, rid)
	start := time.Now()
	c.logger.Info("pipeline.invoice.start", "req_id", rid, "stage", constants.StageReceived,
		"content_type", contentType, "size", len(content), "use_llm", useLLM)

	if !constants.IsAllowedContentType(constants.KindInvoice, contentType) {
		return nil, common.NewAppError("UNSUPPORTED_CONTENT_TYPE",
			"unsupported file type; upload PDF, JPG, or PNG", common.ErrUnsupportedFormat)
	}

	var (
		text string
		err  error
	)
	if contentType == constants.ContentTypePDF {
		text, err = c.deps.PDFText.ExtractText(ctx, content)
	} else {
		text, err = c.deps.ImageOCR.ExtractText(ctx, content)
	}
	if err != nil {
		c.logger.Error("pipeline.invoice.extract_failed", "req_id", rid, "error", err)
		return nil, common.NewAppError("TEXT_EXTRACTION", "could not extract document text", err)
	}
	c.logger.Info("pipeline.invoice.extracted", "req_id", rid, "stage", constants.StageExtracted, "text_len", len(text))

	result := &InvoiceResult{
		FileSize:    len(content),
		ContentType: contentType,
	}
	if useLLM {
		result.Data, err = c.deps.LLM.ExtractInvoice(ctx, text)
		if err != nil {
			return nil, err
		}
		result.ExtractionMethod = constants.MethodLLM
		c.logger.Info("pipeline.invoice.llm_extracted", "req_id", rid, "stage", constants.StageLLMExtracted)
	} else {
		result.Data = c.deps.Pattern.ExtractInvoiceFields(text)
		result.ExtractionMethod = constants.MethodPattern
		c.logger.Info("pipeline.invoice.pattern_extracted", "req_id", rid, "stage", constants.StageMatched)
	}

	c.logger.Info("pipeline.invoice.ok", "req_id", rid, "stage", constants.StageFormatted,
		"elapsed_ms", time.Since(start).Milliseconds())
	return result, nil
}

// ProcessSOR extracts line items from a schedule-of-rates or bill-of-
// quantities document, annotates each with a rate suggestion (catalog match
// or language model), and optionally renders the result as a workbook.
func (c *Controller) ProcessSOR(ctx context.Context, content []byte, contentType string, useLLM bool, outputFormat string) (*SORResult, error) {
	rid := uuid.New().String()
	ctx = common.WithRequestID(ctx, rid)
	start := time.Now()
	c.logger.Info("pipeline.sor.start", "req_id", rid, "stage", constants.StageReceived,
		"content_type", contentType, "size", len(content), "use_llm", useLLM, "format", outputFormat)

	if !constants.IsAllowedContentType(constants.KindSOR, contentType) {
		return nil, common.NewAppError("UNSUPPORTED_CONTENT_TYPE",
			"unsupported file type; upload PDF or CSV", common.ErrUnsupportedFormat)
	}

	var items []entity.Item
	if contentType == constants.ContentTypePDF {
		tables, err := c.deps.Tables.ExtractTables(ctx, content)
		if err != nil {
			c.logger.Error("pipeline.sor.extract_failed", "req_id", rid, "error", err)
			return nil, common.NewAppError("TABLE_EXTRACTION", "could not extract document tables", err)
		}
		c.logger.Info("pipeline.sor.extracted", "req_id", rid, "stage", constants.StageExtracted, "tables", len(tables))
		items = c.deps.Normalizer.FromTables(tables)
	} else {
		items = c.deps.Normalizer.ParseCSV(content)
		c.logger.Info("pipeline.sor.extracted", "req_id", rid, "stage", constants.StageExtracted)
	}
	c.logger.Info("pipeline.sor.normalized", "req_id", rid, "stage", constants.StageNormalized, "items", len(items))

	result := &SORResult{}
	if useLLM {
		suggestions, err := c.deps.LLM.SuggestRates(ctx, items)
		if err != nil {
			return nil, err
		}
		result.Items = suggestionsToItems(items, suggestions)
		result.ExtractionMethod = constants.MethodLLM
		c.logger.Info("pipeline.sor.llm_suggested", "req_id", rid, "stage", constants.StageLLMExtracted,
			"suggestions", len(suggestions))
	} else {
		result.Items = c.deps.Matcher.Match(items)
		result.ExtractionMethod = constants.MethodCatalog
		c.logger.Info("pipeline.sor.matched", "req_id", rid, "stage", constants.StageMatched)
	}

	if outputFormat == constants.OutputExcel {
		excel, err := c.deps.Renderer.RenderSOR(result.Items)
		if err != nil {
			return nil, common.NewAppError("RENDER_FAILED", "could not render workbook", err)
		}
		result.Excel = excel
	}

	c.logger.Info("pipeline.sor.ok", "req_id", rid, "stage", constants.StageFormatted,
		"items", len(result.Items), "elapsed_ms", time.Since(start).Milliseconds())
	return result, nil
}

// suggestionsToItems folds model suggestions back into matched items. When
// the model answered item-for-item the source quantity and extra columns are
// kept; otherwise the suggestion stands alone.
func suggestionsToItems(items []entity.Item, suggestions []entity.RateSuggestion) []entity.MatchedItem {
	out := make([]entity.MatchedItem, 0, len(suggestions))
	zip := len(suggestions) == len(items)
	for i, s := range suggestions {
		var item entity.Item
		if zip {
			item = items[i].Clone()
		} else {
			item = entity.Item{Quantity: "1"}
		}
		if s.Description != "" {
			item.Description = s.Description
		}
		if item.Unit == "" {
			item.Unit = s.Unit
		}
		if s.Notes != "" {
			if item.Extra == nil {
				item.Extra = make(map[string]string)
			}
			item.Extra["notes"] = s.Notes
		}
		out = append(out, entity.MatchedItem{
			Item: item,
			Suggestion: &entity.Suggestion{
				Rate:     strconv.FormatFloat(s.SuggestedRate, 'f', 2, 64),
				Unit:     s.Unit,
				Category: s.SuggestedCategory,
			},
		})
	}
	return out
}
