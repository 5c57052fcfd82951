// Package extract defines the contracts for the external text/table
// extraction collaborators and provides the regex-based fallback used when
// language-model extraction is disabled.
package extract

import "context"

// TextExtractor returns best-effort plain text for PDF or image bytes. An
// empty string is a valid result; implementations never return partial text
// alongside an error.
type TextExtractor interface {
	ExtractText(ctx context.Context, document []byte) (string, error)
}

// TableExtractor returns the tables found in a document: each table a slice
// of rows, each row a slice of cell strings (possibly empty).
type TableExtractor interface {
	ExtractTables(ctx context.Context, document []byte) ([][][]string, error)
}
