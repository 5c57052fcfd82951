// Package matcher scores normalized items against the rate book and decides
// whether the best candidate is trustworthy enough to suggest. Similarity is
// lexical token overlap, not semantic.
package matcher

import (
	"log/slog"
	"strings"

	"github.com/stammy5/ampere-docproc/internal/common"
	"github.com/stammy5/ampere-docproc/internal/entity"
)

// Config holds the scoring tunables. The defaults privilege description
// overlap over exact unit equality (unit mismatches are common data-entry
// noise) and require a combined score strictly above MinConfidence before a
// suggestion is accepted.
type Config struct {
	DescriptionWeight float64
	UnitWeight        float64
	MinConfidence     float64
}

// DefaultConfig returns the documented default weighting and accept floor.
func DefaultConfig() Config {
	return Config{
		DescriptionWeight: 0.8,
		UnitWeight:        0.2,
		MinConfidence:     0.3,
	}
}

// FromCommon adapts the env-backed configuration.
func FromCommon(mc common.MatcherConfig) Config {
	return Config{
		DescriptionWeight: mc.DescriptionWeight,
		UnitWeight:        mc.UnitWeight,
		MinConfidence:     mc.MinConfidence,
	}
}

// CatalogReader is the read-only view the matcher needs of the rate book.
type CatalogReader interface {
	All() []entity.RateEntry
}

// Matcher matches items against a rate catalog. It holds no per-request
// state; Match is a pure function of (items, catalog snapshot, config).
type Matcher struct {
	catalog CatalogReader
	cfg     Config
	logger  *slog.Logger
}

func New(catalog CatalogReader, cfg Config, logger *slog.Logger) *Matcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Matcher{catalog: catalog, cfg: cfg, logger: logger}
}

// Match attempts one match per item, independently and order-preserving. It
// never fails: the worst outcome for an item is a nil suggestion with
// confidence 0. Input items are copied, never mutated.
func (m *Matcher) Match(items []entity.Item) []entity.MatchedItem {
	entries := m.catalog.All()
	out := make([]entity.MatchedItem, 0, len(items))
	for _, item := range items {
		matched := entity.MatchedItem{Item: item.Clone()}
		if best, score := m.bestMatch(item, entries); best != nil {
			matched.Suggestion = &entity.Suggestion{
				Rate:     best.Rate,
				Unit:     best.Unit,
				Category: best.Category,
			}
			matched.Confidence = score
		}
		out = append(out, matched)
	}
	return out
}

// bestMatch tracks the maximum combined score across the whole catalog; ties
// resolve to the first maximum in catalog order. Returns nil unless the best
// score strictly exceeds the accept floor.
func (m *Matcher) bestMatch(item entity.Item, entries []entity.RateEntry) (*entity.RateEntry, float64) {
	itemDesc := strings.ToLower(item.Description)
	itemUnit := strings.ToLower(item.Unit)
	itemTokens := tokenSet(itemDesc)

	var best *entity.RateEntry
	bestScore := 0.0
	for i := range entries {
		score := m.score(itemTokens, itemUnit, entries[i])
		if score > bestScore {
			bestScore = score
			best = &entries[i]
		}
	}
	if bestScore > m.cfg.MinConfidence {
		return best, bestScore
	}
	return nil, 0.0
}

func (m *Matcher) score(itemTokens map[string]struct{}, itemUnit string, entry entity.RateEntry) float64 {
	descScore := 0.0
	entryTokens := tokenSet(strings.ToLower(entry.Item))
	if len(itemTokens) > 0 && len(entryTokens) > 0 {
		shared := 0
		for tok := range itemTokens {
			if _, ok := entryTokens[tok]; ok {
				shared++
			}
		}
		descScore = float64(shared) / float64(max(len(itemTokens), len(entryTokens)))
	}

	unitScore := 0.0
	if itemUnit == strings.ToLower(entry.Unit) {
		unitScore = 1.0
	}

	return m.cfg.DescriptionWeight*descScore + m.cfg.UnitWeight*unitScore
}

// tokenSet splits on whitespace into a set: order and duplicates are
// irrelevant to the overlap score.
func tokenSet(s string) map[string]struct{} {
	fields := strings.Fields(s)
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}
