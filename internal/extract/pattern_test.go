package extract_test

import (
	"testing"

	"github.com/stammy5/ampere-docproc/internal/extract"
)

const invoiceText = `Acme Builders Pte Ltd
123 Industrial Road

Invoice #: INV-2024-001
Date: 15/03/2024

Plastering walls          40 m2    $740.00
Site cleanup                        $60.00

Subtotal: $800.00
GST: $56.00
Total: $856.00
`

func TestExtractInvoiceFields(t *testing.T) {
	p := extract.NewPatternExtractor()
	data := p.ExtractInvoiceFields(invoiceText)

	if data.InvoiceNumber != "INV-2024-001" {
		t.Errorf("invoice number = %q, want INV-2024-001", data.InvoiceNumber)
	}
	if data.VendorName != "Acme Builders Pte Ltd" {
		t.Errorf("vendor name = %q", data.VendorName)
	}
	if data.TotalAmount != 856.00 {
		t.Errorf("total = %v, want 856.00 (the labelled total)", data.TotalAmount)
	}
	if data.IssueDate != "15/03/2024" {
		t.Errorf("date = %q", data.IssueDate)
	}
}

// The labelled pattern wins over bare dollar figures, even larger ones.
func TestExtractInvoiceFields_LabelledTotalBeatsBareAmounts(t *testing.T) {
	p := extract.NewPatternExtractor()
	data := p.ExtractInvoiceFields("Deposit $9,999.00\nAmount Due: $120.50\n")
	if data.TotalAmount != 120.50 {
		t.Errorf("total = %v, want 120.50 from the labelled pattern", data.TotalAmount)
	}
}

func TestExtractInvoiceFields_EmptyText(t *testing.T) {
	p := extract.NewPatternExtractor()
	data := p.ExtractInvoiceFields("")
	if data.InvoiceNumber != "" || data.VendorName != "" || data.TotalAmount != 0 || data.IssueDate != "" {
		t.Errorf("empty text must yield zero values, got %+v", data)
	}
}

func TestExtractInvoiceFields_CommaAmounts(t *testing.T) {
	p := extract.NewPatternExtractor()
	data := p.ExtractInvoiceFields("Balance Due: $12,345.67")
	if data.TotalAmount != 12345.67 {
		t.Errorf("total = %v, want 12345.67", data.TotalAmount)
	}
}
