package entity

// Canonical item keys produced by normalization. Any other source column is
// preserved under Extra untouched.
const (
	KeyDescription = "description"
	KeyUnit        = "unit"
	KeyQuantity    = "quantity"
)

// Item is a canonicalized line item extracted from a document. After
// normalization, Description, Unit and Quantity are always set (Quantity falls
// back to "1").
type Item struct {
	Description string            `json:"description"`
	Unit        string            `json:"unit"`
	Quantity    string            `json:"quantity"`
	Extra       map[string]string `json:"extra,omitempty"`
}

// Clone returns a deep copy so downstream stages never mutate the caller's item.
func (it Item) Clone() Item {
	out := it
	if it.Extra != nil {
		out.Extra = make(map[string]string, len(it.Extra))
		for k, v := range it.Extra {
			out.Extra[k] = v
		}
	}
	return out
}

// Suggestion carries the rate-book fields proposed for an item.
type Suggestion struct {
	Rate     string `json:"suggested_rate"`
	Unit     string `json:"suggested_unit"`
	Category string `json:"suggested_category"`
}

// MatchedItem is an Item annotated with the matcher's (or the model's) best
// suggestion. A nil Suggestion with Confidence 0 means no acceptable match.
type MatchedItem struct {
	Item
	Suggestion *Suggestion `json:"suggestion,omitempty"`
	Confidence float64     `json:"confidence"`
}
