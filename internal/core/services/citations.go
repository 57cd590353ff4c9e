package services

import (
	"regexp"
	"strconv"

	"github.com/custodia-labs/scriptura/internal/core/domain"
)

// citationPattern matches bracketed citation markers like [3] anywhere
// in generated text.
var citationPattern = regexp.MustCompile(`\[(\d+)\]`)

// ExtractCitations returns the set of integers cited in bracket
// notation in the text. Duplicates collapse.
func ExtractCitations(text string) map[int]struct{} {
	cited := make(map[int]struct{})
	for _, m := range citationPattern.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		cited[n] = struct{}{}
	}
	return cited
}

// ReconcileCitations filters references down to those the answer
// actually cites, in ascending reference order. When the answer
// contains no bracketed markers it returns every reference and
// fallback=true so callers can show an explicit notice.
func ReconcileCitations(answer string, references []domain.Reference) (refs []domain.Reference, fallback bool) {
	cited := ExtractCitations(answer)
	if len(cited) == 0 {
		return references, true
	}

	filtered := make([]domain.Reference, 0, len(cited))
	for _, ref := range references {
		if _, ok := cited[ref.Index]; ok {
			filtered = append(filtered, ref)
		}
	}
	return filtered, false
}
