package tts

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxChunkChars is the longest text the service accepts in one request
const MaxChunkChars = 100

// toneMarks end a chunk and stay attached to it, they change intonation
const toneMarks = "?!？！"

// separators end a chunk and are dropped
const separators = "¡()[]¿…‥،;:—。，、：\n"

// softSeparators end a chunk only when followed by whitespace or the end of
// the text, so decimals and host names stay whole
const softSeparators = ".,"

// Tokenize splits text into chunks of at most maxChars runes. Text that fits
// in one chunk is sent as is. Longer text breaks at punctuation first and
// then at the last space before the limit.
func Tokenize(text string, maxChars int) []string {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) <= maxChars {
		if !isSpeakable(text) {
			return nil
		}
		return []string{text}
	}

	var (
		chunks  []string
		current strings.Builder
	)

	flush := func() {
		for _, part := range minimize(current.String(), maxChars) {
			if isSpeakable(part) {
				chunks = append(chunks, part)
			}
		}
		current.Reset()
	}

	runes := []rune(text)
	for i, r := range runes {
		switch {
		case strings.ContainsRune(toneMarks, r):
			current.WriteRune(r)
			flush()
		case strings.ContainsRune(separators, r):
			flush()
		case strings.ContainsRune(softSeparators, r) && (i+1 == len(runes) || unicode.IsSpace(runes[i+1])):
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()

	return chunks
}

// minimize recursively splits s at the last space that keeps each part
// within maxChars runes, hard-splitting when there is no space.
func minimize(s string, maxChars int) []string {
	runes := []rune(strings.TrimSpace(s))
	var parts []string

	for len(runes) > maxChars {
		cut := -1
		for i := maxChars; i > 0; i-- {
			if runes[i] == ' ' {
				cut = i
				break
			}
		}
		if cut <= 0 {
			cut = maxChars
		}
		parts = append(parts, strings.TrimSpace(string(runes[:cut])))
		runes = []rune(strings.TrimSpace(string(runes[cut:])))
	}

	if len(runes) > 0 {
		parts = append(parts, string(runes))
	}
	return parts
}

// isSpeakable reports whether s has anything other than punctuation and space
func isSpeakable(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) && !unicode.IsPunct(r) {
			return true
		}
	}
	return false
}
