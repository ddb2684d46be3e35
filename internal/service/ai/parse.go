package ai

import (
	"strings"
	"unicode/utf8"

	"github.com/ChaudharyUsman/Transcript-Generate/internal/model"
)

// Parsers normalizing free-form oracle text into typed shapes. The model
// output format is not stable, so all of these tolerate extra whitespace,
// alternate bullet glyphs and casing.

// bulletCutset covers the bullet glyphs models commonly emit
const bulletCutset = "-•* \t"

// ParseBulletList splits text into lines, strips leading bullet markers
// and drops blank lines
func ParseBulletList(text string) []string {
	var items []string
	for _, line := range strings.Split(text, "\n") {
		item := strings.Trim(strings.TrimSpace(line), bulletCutset)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// ParseCommaList splits comma-separated text, trimming each entry and
// dropping empties
func ParseCommaList(text string) []string {
	var items []string
	for _, part := range strings.Split(text, ",") {
		item := strings.TrimSpace(part)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// ParseEnumeratedList extracts entries from a numbered or bulleted list,
// stripping leading enumerators and surrounding quote characters
func ParseEnumeratedList(text string) []string {
	var items []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		// Decode the full rune; bullet glyphs like • are multi-byte
		first, _ := utf8.DecodeRuneInString(line)
		if !(first >= '0' && first <= '9') && !strings.ContainsRune("-•*", first) {
			continue
		}
		item := strings.TrimLeft(line, "0123456789.)-•* \t")
		item = strings.Trim(item, "\"'“”‘’")
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// ParseSentiment coerces arbitrary oracle output into one of the three
// sentiment values; anything unrecognized becomes neutral
func ParseSentiment(text string) model.Sentiment {
	normalized := strings.ToLower(strings.TrimSpace(text))
	normalized = strings.TrimRight(normalized, ".!")
	switch model.Sentiment(normalized) {
	case model.SentimentPositive:
		return model.SentimentPositive
	case model.SentimentNegative:
		return model.SentimentNegative
	default:
		return model.SentimentNeutral
	}
}

// ParsePersonName normalizes a free-text name response. Responses matching
// a sentinel ("none", "no host", ...) case-insensitively, or empty, are
// treated as absent.
func ParsePersonName(text string, sentinels ...string) *string {
	name := strings.TrimSpace(text)
	if name == "" {
		return nil
	}
	lower := strings.ToLower(name)
	for _, sentinel := range append(sentinels, "none") {
		if lower == sentinel {
			return nil
		}
	}
	return &name
}
