package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// defaultMarker is the substring that selects the default language
const defaultMarker = "English"

// LanguageEntry is one language offered by the synthesis service
type LanguageEntry struct {
	Code string // Stable key passed to the synthesizer, e.g. "en", "zh-TW"
	Name string // Human-readable name as provided by the source
}

// Label returns the display string used by the view, e.g. "English [en]"
func (e LanguageEntry) Label() string {
	return fmt.Sprintf("%s [%s]", e.Name, e.Code)
}

// Source provides the raw code -> display name table
type Source interface {
	Languages(ctx context.Context) (map[string]string, error)
}

// Catalog is an immutable list of languages ordered by display name
type Catalog struct {
	entries []LanguageEntry
	index   map[string]int
}

// ErrEmptyCatalog is returned when a source yields no languages
var ErrEmptyCatalog = errors.New("language catalog is empty")

// Load fetches the table from src and builds a sorted catalog
func Load(ctx context.Context, src Source) (*Catalog, error) {
	langs, err := src.Languages(ctx)
	if err != nil {
		return nil, err
	}
	if len(langs) == 0 {
		return nil, ErrEmptyCatalog
	}
	return New(langs), nil
}

// New builds a catalog from a code -> name map.
// Entries are sorted by name; equal names keep code order so the result is deterministic.
func New(langs map[string]string) *Catalog {
	entries := make([]LanguageEntry, 0, len(langs))
	for code, name := range langs {
		entries = append(entries, LanguageEntry{Code: code, Name: name})
	}

	// Map iteration order is random, so establish a base order before the stable sort.
	sort.Slice(entries, func(i, j int) bool { return entries[i].Code < entries[j].Code })
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	index := make(map[string]int, len(entries))
	for i, e := range entries {
		index[e.Code] = i
	}

	return &Catalog{entries: entries, index: index}
}

// Entries returns a copy of the sorted entries
func (c *Catalog) Entries() []LanguageEntry {
	out := make([]LanguageEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len returns the number of languages
func (c *Catalog) Len() int {
	return len(c.entries)
}

// At returns the entry at position i in sorted order
func (c *Catalog) At(i int) LanguageEntry {
	return c.entries[i]
}

// Lookup returns the entry for code
func (c *Catalog) Lookup(code string) (LanguageEntry, bool) {
	i, ok := c.index[code]
	if !ok {
		return LanguageEntry{}, false
	}
	return c.entries[i], true
}

// Contains reports whether code is in the catalog
func (c *Catalog) Contains(code string) bool {
	_, ok := c.index[code]
	return ok
}

// Index returns the sorted position of code, or -1
func (c *Catalog) Index(code string) int {
	if i, ok := c.index[code]; ok {
		return i
	}
	return -1
}

// Default returns the position of the first entry whose name contains
// "English", or 0 if there is none. The catalog must not be empty.
func (c *Catalog) Default() int {
	for i, e := range c.entries {
		if strings.Contains(e.Name, defaultMarker) {
			return i
		}
	}
	return 0
}

// Preferred returns the position of code if present, else Default()
func (c *Catalog) Preferred(code string) int {
	if i := c.Index(code); i >= 0 {
		return i
	}
	return c.Default()
}
