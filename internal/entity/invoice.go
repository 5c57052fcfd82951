package entity

// InvoiceLineItem is one detail row of an extracted invoice.
type InvoiceLineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Total       float64 `json:"total"`
}

// InvoiceData is the structured shape we want from invoice extraction. The
// zero value is the "no extraction" outcome; callers must tolerate any field
// being absent.
type InvoiceData struct {
	InvoiceNumber string            `json:"invoice_number,omitempty"`
	VendorName    string            `json:"vendor_name,omitempty"`
	IssueDate     string            `json:"issue_date,omitempty"` // YYYY-MM-DD
	DueDate       string            `json:"due_date,omitempty"`   // YYYY-MM-DD
	TotalAmount   float64           `json:"total_amount,omitempty"`
	GSTAmount     float64           `json:"gst_amount,omitempty"`
	Subtotal      float64           `json:"subtotal,omitempty"`
	LineItems     []InvoiceLineItem `json:"line_items,omitempty"`
	VendorAddress string            `json:"vendor_address,omitempty"`
	VendorContact string            `json:"vendor_contact,omitempty"`
}

// IsEmpty reports whether extraction produced nothing usable.
func (d InvoiceData) IsEmpty() bool {
	return d.InvoiceNumber == "" && d.VendorName == "" && d.IssueDate == "" &&
		d.DueDate == "" && d.TotalAmount == 0 && d.GSTAmount == 0 &&
		d.Subtotal == 0 && len(d.LineItems) == 0 &&
		d.VendorAddress == "" && d.VendorContact == ""
}

// RateSuggestion is one model-proposed rate for a SOR/BOQ item.
type RateSuggestion struct {
	Description       string  `json:"description"`
	Unit              string  `json:"unit"`
	SuggestedRate     float64 `json:"suggested_rate"`
	SuggestedCategory string  `json:"suggested_category"`
	Notes             string  `json:"notes,omitempty"`
}
