package render_test

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/stammy5/ampere-docproc/internal/entity"
	"github.com/stammy5/ampere-docproc/internal/render"
)

func TestRenderSOR(t *testing.T) {
	r := render.NewExcelRenderer(slog.New(slog.NewTextHandler(io.Discard, nil)))

	items := []entity.MatchedItem{
		{
			Item: entity.Item{Description: "Demolition of brick wall", Unit: "m2", Quantity: "10"},
			Suggestion: &entity.Suggestion{
				Rate: "25.00", Unit: "m2", Category: "Demolition",
			},
			Confidence: 1.0,
		},
		{
			Item: entity.Item{Description: "Install solar panels", Unit: "ea", Quantity: "4"},
		},
	}

	blob, err := r.RenderSOR(items)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(blob) == 0 {
		t.Fatal("expected non-empty workbook")
	}

	f, err := excelize.OpenReader(bytes.NewReader(blob))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("SOR-BOQ")
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Item No." || rows[0][1] != "Description" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if rows[1][1] != "Demolition of brick wall" || rows[1][4] != "25.00" {
		t.Errorf("matched row wrong: %v", rows[1])
	}
	if rows[1][5] != "250.00" {
		t.Errorf("amount = %q, want quantity*rate 250.00", rows[1][5])
	}
	if len(rows[2]) > 4 && rows[2][4] != "" {
		t.Errorf("unmatched row must have no rate, got %v", rows[2])
	}
}

func TestRenderSOR_Empty(t *testing.T) {
	r := render.NewExcelRenderer(slog.New(slog.NewTextHandler(io.Discard, nil)))

	blob, err := r.RenderSOR(nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(blob))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("SOR-BOQ")
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("expected header only, got %d rows", len(rows))
	}
}
