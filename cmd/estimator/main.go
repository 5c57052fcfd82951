package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/stammy5/ampere-docproc/constants"
	"github.com/stammy5/ampere-docproc/internal/catalog"
	"github.com/stammy5/ampere-docproc/internal/common"
	"github.com/stammy5/ampere-docproc/internal/extract"
	"github.com/stammy5/ampere-docproc/internal/llm"
	"github.com/stammy5/ampere-docproc/internal/matcher"
	"github.com/stammy5/ampere-docproc/internal/normalize"
	"github.com/stammy5/ampere-docproc/internal/pipeline"
	"github.com/stammy5/ampere-docproc/internal/render"
)

// plainText satisfies the text-extraction collaborator contract for inputs
// that are already text (pre-extracted PDFs, .txt dumps). Production
// deployments plug a real OCR/PDF service in here.
type plainText struct{}

func (plainText) ExtractText(_ context.Context, document []byte) (string, error) {
	return string(document), nil
}

// noTables rejects table extraction; SOR PDFs need the external extractor.
type noTables struct{}

func (noTables) ExtractTables(context.Context, []byte) ([][][]string, error) {
	return nil, fmt.Errorf("no table extraction collaborator configured; supply a CSV instead")
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	_ = godotenv.Load()

	var (
		kind        = flag.String("kind", "sor", "document kind: invoice or sor")
		file        = flag.String("file", "", "path to the document to process")
		contentType = flag.String("content-type", "", "content type; inferred from the file extension when empty")
		useLLM      = flag.Bool("llm", false, "refine with the language model backends")
		format      = flag.String("format", constants.OutputJSON, "output format for sor: json or excel")
		out         = flag.String("out", "", "write excel output here (default <file>.xlsx)")
	)
	flag.Parse()

	if *file == "" {
		logger.Error("usage: estimator -kind invoice|sor -file <path> [-content-type ct] [-llm] [-format json|excel] [-out path]")
		os.Exit(2)
	}

	content, err := os.ReadFile(*file)
	if err != nil {
		logger.Error("read input file", "path", *file, "error", err)
		os.Exit(1)
	}

	ct := *contentType
	if ct == "" {
		ct = constants.MapExtToContentType(filepath.Ext(*file))
		if ct == "" && strings.EqualFold(filepath.Ext(*file), ".txt") {
			// pre-extracted text rides the PDF text path
			ct = constants.ContentTypePDF
		}
	}

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	rates := catalog.New(cfg.Catalog.CSVPath, logger)
	rates.Load()

	ctrl := pipeline.NewController(pipeline.Deps{
		PDFText:    plainText{},
		ImageOCR:   plainText{},
		Tables:     noTables{},
		Pattern:    extract.NewPatternExtractor(),
		Normalizer: normalize.New(logger),
		Matcher:    matcher.New(rates, matcher.FromCommon(cfg.Matcher), logger),
		LLM: llm.NewOrchestrator(llm.Config{
			OllamaBaseURL: cfg.LLM.OllamaBaseURL,
			OllamaModel:   cfg.LLM.OllamaModel,
			OpenAIAPIKey:  cfg.LLM.OpenAIAPIKey,
			OpenAIBaseURL: cfg.LLM.OpenAIBaseURL,
			OpenAIModel:   cfg.LLM.OpenAIModel,
			Temperature:   cfg.LLM.Temperature,
			Timeout:       cfg.LLM.Timeout,
		}, logger),
		Renderer: render.NewExcelRenderer(logger),
		Logger:   logger,
	})

	// twice the backend timeout leaves room for the fallback call
	ctx, cancel := common.WithTimeout(context.Background(), 2*cfg.LLM.Timeout)
	defer cancel()

	switch strings.ToLower(*kind) {
	case "invoice":
		result, err := ctrl.ProcessInvoice(ctx, content, ct, *useLLM)
		if err != nil {
			logger.Error("invoice processing failed", "error", common.UserMessage(err))
			os.Exit(1)
		}
		printJSON(logger, result)
	case "sor":
		result, err := ctrl.ProcessSOR(ctx, content, ct, *useLLM, *format)
		if err != nil {
			logger.Error("sor processing failed", "error", common.UserMessage(err))
			os.Exit(1)
		}
		if len(result.Excel) > 0 {
			target := *out
			if target == "" {
				target = strings.TrimSuffix(*file, filepath.Ext(*file)) + ".xlsx"
			}
			if err := os.WriteFile(target, result.Excel, 0o644); err != nil {
				logger.Error("write workbook", "path", target, "error", err)
				os.Exit(1)
			}
			logger.Info("workbook written", "path", target, "bytes", len(result.Excel))
			result.Excel = nil
		}
		printJSON(logger, result)
	default:
		logger.Error("unknown kind", "kind", *kind)
		os.Exit(2)
	}
}

func printJSON(logger *slog.Logger, v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		logger.Error("encode result", "error", err)
		os.Exit(1)
	}
}
