package llm

import (
	"fmt"
	"strings"

	"github.com/stammy5/ampere-docproc/internal/entity"
)

// Prompts are pure functions of their input: same document text, same prompt.
// Each embeds the fixed output-schema description so the model has no hidden
// session state to rely on.

// BuildInvoicePrompt asks for structured invoice data as a single JSON object.
func BuildInvoicePrompt(text string) string {
	return fmt.Sprintf(`Extract the following information from the invoice text below:
- Invoice number
- Vendor name
- Issue date
- Due date
- Total amount
- GST amount
- Subtotal
- Line items (description, quantity, unit price, total)
- Vendor address
- Vendor contact information

Invoice text:
%s

Return the extracted information as a JSON object with the following structure:
{
    "invoice_number": "string",
    "vendor_name": "string",
    "issue_date": "string (YYYY-MM-DD)",
    "due_date": "string (YYYY-MM-DD)",
    "total_amount": number,
    "gst_amount": number,
    "subtotal": number,
    "line_items": [
        {
            "description": "string",
            "quantity": number,
            "unit_price": number,
            "total": number
        }
    ],
    "vendor_address": "string",
    "vendor_contact": "string"
}

If any information is not found, leave the field as null or empty array.
Only return the JSON object, nothing else.`, text)
}

// BuildSuggestPrompt asks for rate suggestions for SOR/BOQ items as a JSON array.
func BuildSuggestPrompt(items []entity.Item) string {
	var lines strings.Builder
	for _, item := range items {
		fmt.Fprintf(&lines, "- %s (Unit: %s)\n", item.Description, item.Unit)
	}

	return fmt.Sprintf(`For each of the following construction items, suggest appropriate rates in SGD:

%s
Return the results as a JSON array with the following structure for each item:
{
    "description": "string",
    "unit": "string",
    "suggested_rate": number,
    "suggested_category": "string",
    "notes": "string (optional)"
}

Base your suggestions on typical Singapore construction rates.
Only return the JSON array, nothing else.`, lines.String())
}
