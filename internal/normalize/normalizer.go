// Package normalize maps raw heterogeneous row/column data from extracted
// tables or CSV input into canonical line items. It is total: malformed input
// degrades to skipped rows, never an error.
package normalize

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/stammy5/ampere-docproc/internal/entity"
)

// Alias order for synthesizing required keys; first non-empty wins.
var (
	descriptionAliases = []string{entity.KeyDescription, "item", "work_description"}
	unitAliases        = []string{entity.KeyUnit, "uom", "units"}
	quantityAliases    = []string{entity.KeyQuantity, "qty"}
)

const defaultQuantity = "1"

// Normalizer builds canonical items out of raw tabular data.
type Normalizer struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{logger: logger}
}

// FromTables normalizes extracted tables. The first row of each table is its
// header; a table without at least a header and one data row is skipped with a
// warning. Rows shorter than the header silently drop the trailing keys.
func (n *Normalizer) FromTables(tables [][][]string) []entity.Item {
	items := make([]entity.Item, 0)
	for ti, table := range tables {
		if len(table) < 2 {
			n.logger.Warn("normalize.table.skipped", "table", ti, "rows", len(table))
			continue
		}
		header := make([]string, len(table[0]))
		for i, cell := range table[0] {
			header[i] = NormalizeKey(cell)
		}
		for _, row := range table[1:] {
			record := make(map[string]string, len(header))
			for i, cell := range row {
				if i >= len(header) {
					break
				}
				record[header[i]] = strings.TrimSpace(cell)
			}
			items = append(items, buildItem(record))
		}
	}
	return items
}

// FromRecords normalizes rows that are already key→value mappings. Keys are
// case-folded and underscored so both input paths share one canonical key space.
func (n *Normalizer) FromRecords(records []map[string]string) []entity.Item {
	items := make([]entity.Item, 0, len(records))
	for _, rec := range records {
		record := make(map[string]string, len(rec))
		for k, v := range rec {
			record[NormalizeKey(k)] = strings.TrimSpace(v)
		}
		items = append(items, buildItem(record))
	}
	return items
}

// ParseCSV decodes CSV bytes (header row required) and normalizes every row.
// Undecodable rows are skipped with a warning; a completely unreadable input
// yields an empty slice.
func (n *Normalizer) ParseCSV(data []byte) []entity.Item {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		n.logger.Warn("normalize.csv.no_header", "error", err)
		return []entity.Item{}
	}
	keys := make([]string, len(header))
	for i, cell := range header {
		keys[i] = NormalizeKey(cell)
	}

	items := make([]entity.Item, 0)
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			n.logger.Warn("normalize.csv.row_skipped", "error", err)
			continue
		}
		record := make(map[string]string, len(keys))
		for i, cell := range row {
			if i >= len(keys) {
				break
			}
			record[keys[i]] = strings.TrimSpace(cell)
		}
		items = append(items, buildItem(record))
	}
	return items
}

// NormalizeKey case-folds a header cell and joins its words with underscores,
// e.g. "Work Description" -> "work_description".
func NormalizeKey(key string) string {
	return strings.Join(strings.Fields(strings.ToLower(key)), "_")
}

// buildItem synthesizes the required keys from the alias table and keeps every
// source column in Extra unchanged.
func buildItem(record map[string]string) entity.Item {
	item := entity.Item{
		Description: firstNonEmpty(record, descriptionAliases),
		Unit:        firstNonEmpty(record, unitAliases),
		Quantity:    firstNonEmpty(record, quantityAliases),
	}
	if item.Quantity == "" {
		item.Quantity = defaultQuantity
	}
	for k, v := range record {
		switch k {
		case entity.KeyDescription, entity.KeyUnit, entity.KeyQuantity:
			continue
		}
		if item.Extra == nil {
			item.Extra = make(map[string]string)
		}
		item.Extra[k] = v
	}
	return item
}

func firstNonEmpty(record map[string]string, aliases []string) string {
	for _, key := range aliases {
		if v := record[key]; v != "" {
			return v
		}
	}
	return ""
}
