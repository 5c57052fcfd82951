package entity

// RateEntry is a rate-book record mapping a known work description and unit to
// a price and category. Rate stays a decimal-as-string; the catalog never does
// arithmetic on it.
type RateEntry struct {
	Item     string            `json:"item"`
	Unit     string            `json:"unit"`
	Rate     string            `json:"rate"`
	Category string            `json:"category"`
	Extra    map[string]string `json:"extra,omitempty"`
}

// Clone returns a copy safe to hand outside the catalog.
func (e RateEntry) Clone() RateEntry {
	out := e
	if e.Extra != nil {
		out.Extra = make(map[string]string, len(e.Extra))
		for k, v := range e.Extra {
			out.Extra[k] = v
		}
	}
	return out
}
