// Package catalog holds the in-memory rate book: known work descriptions with
// their unit, rate and category, persisted as a flat CSV file.
package catalog

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/stammy5/ampere-docproc/internal/common"
	"github.com/stammy5/ampere-docproc/internal/entity"
	"github.com/stammy5/ampere-docproc/internal/normalize"
)

// Fixed rate-book columns; any further CSV columns ride along in Extra.
var baseHeader = []string{"item", "unit", "rate", "category"}

// Catalog is the mutable shared rate book. Reads run concurrently; Add and
// Save take the write lock. Add never persists on its own.
type Catalog struct {
	path   string
	logger *slog.Logger

	mu      sync.RWMutex
	entries []entity.RateEntry
}

func New(path string, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{path: path, logger: logger}
}

// Load reads the persisted CSV rate book. A missing or unreadable file is not
// an error: the built-in sample set is installed and a warning logged.
func (c *Catalog) Load() {
	entries, err := c.readCSV()
	if err != nil {
		c.logger.Warn("catalog.load.fallback_sample", "path", c.path, "error", err)
		entries = SampleEntries()
	} else {
		c.logger.Info("catalog.load.ok", "path", c.path, "entries", len(entries))
	}

	c.mu.Lock()
	c.entries = entries
	c.mu.Unlock()
}

func (c *Catalog) readCSV() ([]entity.RateEntry, error) {
	f, err := os.Open(c.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read rate book: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("rate book %s has no header row", c.path)
	}

	header := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		header[i] = normalize.NormalizeKey(cell)
	}

	entries := make([]entity.RateEntry, 0, len(rows)-1)
	for _, row := range rows[1:] {
		var e entity.RateEntry
		for i, cell := range row {
			if i >= len(header) {
				break
			}
			switch header[i] {
			case "item":
				e.Item = cell
			case "unit":
				e.Unit = cell
			case "rate":
				e.Rate = cell
			case "category":
				e.Category = cell
			default:
				if e.Extra == nil {
					e.Extra = make(map[string]string)
				}
				e.Extra[header[i]] = cell
			}
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Add appends the entry in memory only; callers persist with an explicit Save.
func (c *Catalog) Add(entry entity.RateEntry) {
	c.mu.Lock()
	c.entries = append(c.entries, entry.Clone())
	c.mu.Unlock()
	c.logger.Info("catalog.add", "item", entry.Item, "category", entry.Category)
}

// All returns a snapshot of the entries. Mutating the result does not affect
// the catalog, and additions made after the call are not reflected in it.
func (c *Catalog) All() []entity.RateEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]entity.RateEntry, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.Clone()
	}
	return out
}

// Len reports the number of entries currently in memory.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Save writes the full in-memory set back to the CSV file. The column header
// is derived from the first entry's keys; a heterogeneous entry set or an
// unwritable target is a hard error, since silent partial persistence would
// corrupt the rate book. The file is replaced atomically via a temp file and
// rename so a crash cannot truncate it.
func (c *Catalog) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) == 0 {
		return common.NewAppError("CATALOG_EMPTY", "no entries to save", common.ErrPersistence)
	}

	extraKeys := sortedExtraKeys(c.entries[0])
	for i, e := range c.entries[1:] {
		if !sameKeys(extraKeys, sortedExtraKeys(e)) {
			return common.NewAppError("CATALOG_HETEROGENEOUS",
				fmt.Sprintf("entry %d has a different column set than entry 0", i+1),
				common.ErrPersistence)
		}
	}
	header := append(append([]string{}, baseHeader...), extraKeys...)

	if dir := filepath.Dir(c.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create rate book directory: %w", err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(c.path), ".rates-*.csv")
	if err != nil {
		return fmt.Errorf("create temp rate book: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		tmp.Close()
		return fmt.Errorf("write rate book header: %w", err)
	}
	for _, e := range c.entries {
		row := []string{e.Item, e.Unit, e.Rate, e.Category}
		for _, k := range extraKeys {
			row = append(row, e.Extra[k])
		}
		if err := w.Write(row); err != nil {
			tmp.Close()
			return fmt.Errorf("write rate book row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush rate book: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp rate book: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.path); err != nil {
		return fmt.Errorf("replace rate book: %w", err)
	}

	c.logger.Info("catalog.save.ok", "path", c.path, "entries", len(c.entries))
	return nil
}

func sortedExtraKeys(e entity.RateEntry) []string {
	keys := make([]string, 0, len(e.Extra))
	for k := range e.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sameKeys(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
