package ui

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/lexiqai/ttsdesk/internal/catalog"
	"github.com/lexiqai/ttsdesk/internal/converter"
)

// Form holds the user's current choices. The selected language is kept as a
// catalog position so the code is always a catalog key.
type Form struct {
	catalog   *catalog.Catalog
	langIndex int
	slow      bool
	text      string
}

// NewForm creates a form with the language at index selected
func NewForm(cat *catalog.Catalog, index int) Form {
	f := Form{catalog: cat}
	f.SelectLanguage(index)
	return f
}

// Language returns the selected entry
func (f Form) Language() catalog.LanguageEntry {
	return f.catalog.At(f.langIndex)
}

// LanguageIndex returns the selected catalog position
func (f Form) LanguageIndex() int {
	return f.langIndex
}

// SelectLanguage selects position i, clamped to the catalog bounds
func (f *Form) SelectLanguage(i int) {
	switch {
	case i < 0:
		i = 0
	case i >= f.catalog.Len():
		i = f.catalog.Len() - 1
	}
	f.langIndex = i
}

// MoveLanguage moves the selection by delta, wrapping around
func (f *Form) MoveLanguage(delta int) {
	n := f.catalog.Len()
	f.langIndex = ((f.langIndex+delta)%n + n) % n
}

// JumpToLanguage selects the next entry after the current one whose name
// starts with r, ignoring case. It reports whether the selection changed.
func (f *Form) JumpToLanguage(r rune) bool {
	n := f.catalog.Len()
	want := unicode.ToLower(r)
	for step := 1; step <= n; step++ {
		i := (f.langIndex + step) % n
		first, _ := utf8.DecodeRuneInString(f.catalog.At(i).Name)
		if unicode.ToLower(first) == want {
			changed := i != f.langIndex
			f.langIndex = i
			return changed
		}
	}
	return false
}

// Slow reports whether slow mode is on
func (f Form) Slow() bool {
	return f.slow
}

// ToggleSlow flips slow mode and nothing else
func (f *Form) ToggleSlow() {
	f.slow = !f.slow
}

// Text returns the raw input buffer
func (f Form) Text() string {
	return f.text
}

// SetText replaces the raw input buffer
func (f *Form) SetText(s string) {
	f.text = s
}

// CharCount is the number of characters in the trimmed buffer
func (f Form) CharCount() int {
	return utf8.RuneCountInString(strings.TrimSpace(f.text))
}

// Request builds a fresh conversion request from the current state
func (f Form) Request() converter.Request {
	return converter.Request{
		Text:         f.text,
		LanguageCode: f.Language().Code,
		Slow:         f.slow,
	}
}
