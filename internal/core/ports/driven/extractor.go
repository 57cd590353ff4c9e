package driven

import (
	"context"

	"github.com/custodia-labs/scriptura/internal/core/domain"
)

// Extractor parses one source format into plain-text passages with
// provenance locators. Extraction has no side effects beyond the
// returned slice.
type Extractor interface {
	// SourceType returns the format this extractor handles.
	SourceType() domain.SourceType

	// Extract reads the source file and returns its passages in
	// document order. A malformed or unreadable source returns an
	// error; callers contain it to that source.
	Extract(ctx context.Context, path string) ([]domain.Passage, error)
}
