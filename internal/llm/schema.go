package llm

// JSON Schemas (draft 2020-12 subset) built as generic maps, mirroring the
// structures the prompts document. They are used locally to validate backend
// output before it reaches a caller.

// BuildInvoiceJSONSchema describes the invoice extraction object. Every field
// is optional and nullable: the model is told to leave unknowns null.
func BuildInvoiceJSONSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"invoice_number": nullableProp("string"),
			"vendor_name":    nullableProp("string"),
			"issue_date":     nullableProp("string"),
			"due_date":       nullableProp("string"),
			"total_amount":   nullableProp("number"),
			"gst_amount":     nullableProp("number"),
			"subtotal":       nullableProp("number"),
			"line_items": map[string]any{
				"type": []string{"array", "null"},
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"description": nullableProp("string"),
						"quantity":    nullableProp("number"),
						"unit_price":  nullableProp("number"),
						"total":       nullableProp("number"),
					},
				},
			},
			"vendor_address": nullableProp("string"),
			"vendor_contact": nullableProp("string"),
		},
	}
}

// BuildSuggestionsJSONSchema describes the rate-suggestion array.
func BuildSuggestionsJSONSchema() map[string]any {
	return map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"description":        map[string]any{"type": "string"},
				"unit":               nullableProp("string"),
				"suggested_rate":     map[string]any{"type": "number", "minimum": 0},
				"suggested_category": nullableProp("string"),
				"notes":              nullableProp("string"),
			},
			"required": []string{"description", "suggested_rate"},
		},
	}
}

func nullableProp(t string) map[string]any {
	return map[string]any{"type": []string{t, "null"}}
}
