package constants

import "strings"

// DocumentKind selects which processing pipeline a request runs through.
type DocumentKind string

const (
	KindInvoice DocumentKind = "INVOICE"
	KindSOR     DocumentKind = "SOR"
)

// Content types accepted per document kind.
const (
	ContentTypePDF  = "application/pdf"
	ContentTypeJPEG = "image/jpeg"
	ContentTypePNG  = "image/png"
	ContentTypeCSV  = "text/csv"
)

// InvoiceContentTypes holds the allowed content types for invoice processing.
var InvoiceContentTypes = map[string]struct{}{
	ContentTypePDF:  {},
	ContentTypeJPEG: {},
	ContentTypePNG:  {},
}

// SORContentTypes holds the allowed content types for SOR/BOQ processing.
var SORContentTypes = map[string]struct{}{
	ContentTypePDF: {},
	ContentTypeCSV: {},
}

// IsAllowedContentType reports whether ct is accepted for the given kind.
func IsAllowedContentType(kind DocumentKind, ct string) bool {
	ct = strings.ToLower(strings.TrimSpace(ct))
	switch kind {
	case KindInvoice:
		_, ok := InvoiceContentTypes[ct]
		return ok
	case KindSOR:
		_, ok := SORContentTypes[ct]
		return ok
	}
	return false
}

// MapExtToContentType maps a file extension to its content type, or "" if unknown.
func MapExtToContentType(ext string) string {
	switch NormalizeExt(ext) {
	case "pdf":
		return ContentTypePDF
	case "jpg", "jpeg":
		return ContentTypeJPEG
	case "png":
		return ContentTypePNG
	case "csv":
		return ContentTypeCSV
	}
	return ""
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
