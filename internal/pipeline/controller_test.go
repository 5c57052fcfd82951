package pipeline_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stammy5/ampere-docproc/constants"
	"github.com/stammy5/ampere-docproc/internal/catalog"
	"github.com/stammy5/ampere-docproc/internal/common"
	"github.com/stammy5/ampere-docproc/internal/entity"
	"github.com/stammy5/ampere-docproc/internal/matcher"
	"github.com/stammy5/ampere-docproc/internal/normalize"
	"github.com/stammy5/ampere-docproc/internal/pipeline"
	"github.com/stammy5/ampere-docproc/internal/render"
)

type stubText struct {
	text string
	err  error
}

func (s stubText) ExtractText(context.Context, []byte) (string, error) { return s.text, s.err }

type stubTables struct {
	tables [][][]string
	err    error
}

func (s stubTables) ExtractTables(context.Context, []byte) ([][][]string, error) {
	return s.tables, s.err
}

type stubLLM struct {
	invoice     entity.InvoiceData
	suggestions []entity.RateSuggestion
	err         error
}

func (s stubLLM) ExtractInvoice(context.Context, string) (entity.InvoiceData, error) {
	return s.invoice, s.err
}

func (s stubLLM) SuggestRates(context.Context, []entity.Item) ([]entity.RateSuggestion, error) {
	return s.suggestions, s.err
}

func newController(t *testing.T, deps pipeline.Deps) *pipeline.Controller {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	deps.Logger = logger
	if deps.Normalizer == nil {
		deps.Normalizer = normalize.New(logger)
	}
	if deps.Matcher == nil {
		c := catalog.New("", logger)
		c.Load() // sample set
		deps.Matcher = matcher.New(c, matcher.DefaultConfig(), logger)
	}
	if deps.Renderer == nil {
		deps.Renderer = render.NewExcelRenderer(logger)
	}
	if deps.PDFText == nil {
		deps.PDFText = stubText{}
	}
	if deps.ImageOCR == nil {
		deps.ImageOCR = stubText{}
	}
	if deps.Tables == nil {
		deps.Tables = stubTables{}
	}
	if deps.LLM == nil {
		deps.LLM = stubLLM{}
	}
	return pipeline.NewController(deps)
}

func TestProcessInvoice_RejectsUnsupportedContentType(t *testing.T) {
	failing := stubText{err: errors.New("must not be reached")}
	ctrl := newController(t, pipeline.Deps{PDFText: failing, ImageOCR: failing})

	_, err := ctrl.ProcessInvoice(context.Background(), []byte("x"), "text/plain", false)
	if err == nil {
		t.Fatal("expected a rejection for text/plain")
	}
	if !errors.Is(err, common.ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestProcessSOR_RejectsUnsupportedContentType(t *testing.T) {
	ctrl := newController(t, pipeline.Deps{})

	_, err := ctrl.ProcessSOR(context.Background(), []byte("x"), "image/png", false, constants.OutputJSON)
	if !errors.Is(err, common.ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestProcessInvoice_PatternPath(t *testing.T) {
	ctrl := newController(t, pipeline.Deps{
		PDFText: stubText{text: "Acme Builders\nInvoice #: INV-77\nTotal: $500.00"},
	})

	result, err := ctrl.ProcessInvoice(context.Background(), []byte("%PDF..."), constants.ContentTypePDF, false)
	if err != nil {
		t.Fatalf("process invoice: %v", err)
	}
	if result.ExtractionMethod != constants.MethodPattern {
		t.Errorf("method = %q, want %q", result.ExtractionMethod, constants.MethodPattern)
	}
	if result.Data.InvoiceNumber != "INV-77" || result.Data.TotalAmount != 500.00 {
		t.Errorf("pattern extraction wrong: %+v", result.Data)
	}
	if result.FileSize != len("%PDF...") || result.ContentType != constants.ContentTypePDF {
		t.Errorf("file metadata wrong: %+v", result)
	}
}

func TestProcessInvoice_LLMPath(t *testing.T) {
	want := entity.InvoiceData{InvoiceNumber: "INV-1", VendorName: "Acme"}
	ctrl := newController(t, pipeline.Deps{
		ImageOCR: stubText{text: "scanned text"},
		LLM:      stubLLM{invoice: want},
	})

	result, err := ctrl.ProcessInvoice(context.Background(), []byte("png bytes"), constants.ContentTypeJPEG, true)
	if err != nil {
		t.Fatalf("process invoice: %v", err)
	}
	if result.ExtractionMethod != constants.MethodLLM {
		t.Errorf("method = %q, want %q", result.ExtractionMethod, constants.MethodLLM)
	}
	if result.Data.InvoiceNumber != "INV-1" {
		t.Errorf("llm data not returned: %+v", result.Data)
	}
}

func TestProcessInvoice_ExtractionErrorPropagates(t *testing.T) {
	ctrl := newController(t, pipeline.Deps{
		PDFText: stubText{err: errors.New("corrupt document")},
	})

	_, err := ctrl.ProcessInvoice(context.Background(), []byte("x"), constants.ContentTypePDF, false)
	if err == nil {
		t.Fatal("collaborator failure must propagate")
	}
}

func TestProcessSOR_CSVMatchPath(t *testing.T) {
	ctrl := newController(t, pipeline.Deps{})

	csv := "Description,Unit,Quantity\nDemolition of brick wall,m2,10\nInstall solar panels,ea,4\n"
	result, err := ctrl.ProcessSOR(context.Background(), []byte(csv), constants.ContentTypeCSV, false, constants.OutputJSON)
	if err != nil {
		t.Fatalf("process sor: %v", err)
	}
	if result.ExtractionMethod != constants.MethodCatalog {
		t.Errorf("method = %q, want %q", result.ExtractionMethod, constants.MethodCatalog)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(result.Items))
	}
	if result.Items[0].Suggestion == nil || result.Items[0].Confidence != 1.0 {
		t.Errorf("known item should match with full confidence: %+v", result.Items[0])
	}
	if result.Items[1].Suggestion != nil || result.Items[1].Confidence != 0.0 {
		t.Errorf("unknown item should carry the null suggestion: %+v", result.Items[1])
	}
	if len(result.Excel) != 0 {
		t.Error("json output must not carry workbook bytes")
	}
}

func TestProcessSOR_PDFTablePath(t *testing.T) {
	ctrl := newController(t, pipeline.Deps{
		Tables: stubTables{tables: [][][]string{
			{
				{"Item", "UOM", "Qty"},
				{"Painting walls", "m2", "12"},
			},
		}},
	})

	result, err := ctrl.ProcessSOR(context.Background(), []byte("%PDF..."), constants.ContentTypePDF, false, constants.OutputJSON)
	if err != nil {
		t.Fatalf("process sor: %v", err)
	}
	if len(result.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(result.Items))
	}
	if result.Items[0].Suggestion == nil {
		t.Fatalf("expected a suggestion: %+v", result.Items[0])
	}
	if result.Items[0].Suggestion.Rate != "12.00" {
		t.Errorf("suggested rate = %q, want 12.00", result.Items[0].Suggestion.Rate)
	}
}

func TestProcessSOR_TableExtractionErrorPropagates(t *testing.T) {
	ctrl := newController(t, pipeline.Deps{
		Tables: stubTables{err: errors.New("encrypted pdf")},
	})

	_, err := ctrl.ProcessSOR(context.Background(), []byte("x"), constants.ContentTypePDF, false, constants.OutputJSON)
	if err == nil {
		t.Fatal("collaborator failure must propagate")
	}
}

func TestProcessSOR_LLMPathZipsSuggestions(t *testing.T) {
	ctrl := newController(t, pipeline.Deps{
		LLM: stubLLM{suggestions: []entity.RateSuggestion{
			{Description: "Demolition of brick wall", Unit: "m2", SuggestedRate: 26, SuggestedCategory: "Demolition", Notes: "incl debris"},
		}},
	})

	csv := "Description,Unit,Quantity\nDemolition of brick wall,m2,10\n"
	result, err := ctrl.ProcessSOR(context.Background(), []byte(csv), constants.ContentTypeCSV, true, constants.OutputJSON)
	if err != nil {
		t.Fatalf("process sor: %v", err)
	}
	if result.ExtractionMethod != constants.MethodLLM {
		t.Errorf("method = %q, want %q", result.ExtractionMethod, constants.MethodLLM)
	}
	if len(result.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(result.Items))
	}
	item := result.Items[0]
	if item.Quantity != "10" {
		t.Errorf("source quantity must survive the llm path, got %q", item.Quantity)
	}
	if item.Suggestion == nil || item.Suggestion.Rate != "26.00" || item.Suggestion.Category != "Demolition" {
		t.Errorf("suggestion wrong: %+v", item.Suggestion)
	}
	if item.Extra["notes"] != "incl debris" {
		t.Errorf("notes not carried: %v", item.Extra)
	}
}

func TestProcessSOR_LLMFailurePropagates(t *testing.T) {
	ctrl := newController(t, pipeline.Deps{
		LLM: stubLLM{err: errors.New("all backends failed")},
	})

	csv := "Description,Unit\nDemolition,m2\n"
	_, err := ctrl.ProcessSOR(context.Background(), []byte(csv), constants.ContentTypeCSV, true, constants.OutputJSON)
	if err == nil {
		t.Fatal("backend failure must propagate through the pipeline")
	}
}

func TestProcessSOR_ExcelOutput(t *testing.T) {
	ctrl := newController(t, pipeline.Deps{})

	csv := "Description,Unit,Quantity\nDemolition of brick wall,m2,10\n"
	result, err := ctrl.ProcessSOR(context.Background(), []byte(csv), constants.ContentTypeCSV, false, constants.OutputExcel)
	if err != nil {
		t.Fatalf("process sor: %v", err)
	}
	if len(result.Excel) == 0 {
		t.Fatal("expected workbook bytes for excel output")
	}
	if !bytes.HasPrefix(result.Excel, []byte("PK")) {
		t.Error("workbook bytes are not a zip container")
	}
}
