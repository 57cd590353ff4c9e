package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/scriptura/internal/core/domain"
)

// Context assembly limits.
const (
	// SnippetMaxChars is the per-chunk truncation applied before a
	// chunk enters the context. The cut may fall mid-sentence but never
	// mid-rune.
	SnippetMaxChars = 1000

	// ContextMaxChars is the cumulative snippet budget. The chunk that
	// crosses it is still included in full before assembly stops.
	ContextMaxChars = 1500
)

// BuildContext turns retrieved chunks into a numbered context string
// the model can cite, plus the reference list for the included chunks.
//
// Chunks are taken in rank order. Each snippet is truncated to
// SnippetMaxChars, newlines flattened to spaces, and emitted as a
// "[n] snippet" block; blocks are joined by blank lines. Reference
// indices are dense and 1-based, matching the bracket numbers in the
// context exactly.
func BuildContext(chunks []domain.ScoredChunk, maxChars int) (string, []domain.Reference) {
	if maxChars <= 0 {
		maxChars = ContextMaxChars
	}

	var parts []string
	var references []domain.Reference
	total := 0

	for i, sc := range chunks {
		snippet := truncateSnippet(sc.Chunk.Content, SnippetMaxChars)
		snippet = strings.TrimSpace(strings.ReplaceAll(snippet, "\n", " "))

		idx := i + 1
		references = append(references, domain.Reference{
			Index:       idx,
			Description: describeSource(sc.Chunk),
		})
		parts = append(parts, fmt.Sprintf("[%d] %s", idx, snippet))

		total += len(snippet)
		if total >= maxChars {
			break
		}
	}

	return strings.Join(parts, "\n\n"), references
}

// truncateSnippet cuts text to at most maxBytes, backing off to the
// nearest rune boundary so the result is always valid UTF-8.
func truncateSnippet(text string, maxBytes int) string {
	if len(text) <= maxBytes {
		return text
	}
	cut := maxBytes
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

// describeSource builds a human-readable source description from the
// chunk's provenance: the source name, suffixed with "(ch:v)",
// "(chapter N)" or "(verse N)" depending on which locators are present.
func describeSource(c domain.Chunk) string {
	source := c.Source
	if source == "" {
		source = "unknown"
	}

	switch {
	case c.Chapter != "" && c.Verse != "":
		return fmt.Sprintf("%s (%s:%s)", source, c.Chapter, c.Verse)
	case c.Chapter != "":
		return fmt.Sprintf("%s (chapter %s)", source, c.Chapter)
	case c.Verse != "":
		return fmt.Sprintf("%s (verse %s)", source, c.Verse)
	default:
		return source
	}
}
