// Package render turns matched SOR/BOQ items into an XLSX workbook. The
// pipeline only ever sees the resulting bytes.
package render

import (
	"bytes"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/stammy5/ampere-docproc/internal/entity"
)

// Renderer is the output-formatting collaborator the pipeline depends on.
type Renderer interface {
	RenderSOR(items []entity.MatchedItem) ([]byte, error)
}

// ExcelRenderer writes the SOR/BOQ workbook with excelize.
type ExcelRenderer struct {
	logger *slog.Logger
}

func NewExcelRenderer(logger *slog.Logger) *ExcelRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelRenderer{logger: logger}
}

var sorHeaders = []string{"Item No.", "Description", "Unit", "Quantity", "Rate", "Amount", "Category", "Notes"}

// RenderSOR produces a single-sheet workbook: one row per item, with the
// suggested rate and category when a match was accepted and the line amount
// computed where quantity and rate both parse as numbers.
func (r *ExcelRenderer) RenderSOR(items []entity.MatchedItem) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "SOR-BOQ"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"CCCCCC"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for i, h := range sorHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("style header: %w", err)
		}
	}

	for i, item := range items {
		row := i + 2

		rate := ""
		category := ""
		if item.Suggestion != nil {
			rate = item.Suggestion.Rate
			category = item.Suggestion.Category
		}
		if rate == "" {
			rate = item.Extra["rate"]
		}
		if category == "" {
			category = item.Extra["category"]
		}

		values := []any{
			i + 1,
			item.Description,
			item.Unit,
			item.Quantity,
			rate,
			lineAmount(item.Quantity, rate),
			category,
			item.Extra["notes"],
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("write row %d: %w", row, err)
			}
		}
	}

	// widen columns to fit the longest value, capped to keep the sheet sane
	widths := columnWidths(items)
	for col, w := range widths {
		name, _ := excelize.ColumnNumberToName(col + 1)
		if err := f.SetColWidth(sheet, name, name, w); err != nil {
			return nil, fmt.Errorf("set column width: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	r.logger.Info("render.sor.ok", "items", len(items), "bytes", buf.Len())
	return buf.Bytes(), nil
}

// lineAmount is quantity*rate formatted to two decimals, or "" when either
// side is not numeric.
func lineAmount(quantity, rate string) string {
	q, err := strconv.ParseFloat(quantity, 64)
	if err != nil {
		return ""
	}
	r, err := strconv.ParseFloat(rate, 64)
	if err != nil {
		return ""
	}
	return strconv.FormatFloat(q*r, 'f', 2, 64)
}

func columnWidths(items []entity.MatchedItem) []float64 {
	widths := make([]float64, len(sorHeaders))
	for i, h := range sorHeaders {
		widths[i] = float64(len(h)) + 2
	}
	grow := func(col int, s string) {
		if w := float64(len(s)) + 2; w > widths[col] {
			widths[col] = w
		}
	}
	for _, item := range items {
		grow(1, item.Description)
		grow(2, item.Unit)
		grow(3, item.Quantity)
		if item.Suggestion != nil {
			grow(4, item.Suggestion.Rate)
			grow(6, item.Suggestion.Category)
		}
		grow(7, item.Extra["notes"])
	}
	const maxWidth = 60
	for i := range widths {
		if widths[i] > maxWidth {
			widths[i] = maxWidth
		}
	}
	return widths
}
