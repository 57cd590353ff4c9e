// Package driving provides interfaces for application entry points (primary/inbound ports).
package driving

import (
	"context"

	"github.com/custodia-labs/scriptura/internal/core/domain"
)

// Indexer builds the persistent vector index from the configured sources.
type Indexer interface {
	// EnsureIndexed makes the index ready for queries. When the store
	// partition already holds entries and rebuild is false it performs
	// zero writes. With rebuild true it clears the partition first, then
	// indexes the CSV source followed by the EPUB source.
	// The returned results report the outcome per source; a nil slice
	// means indexing was not needed.
	EnsureIndexed(ctx context.Context, rebuild bool) ([]domain.IngestResult, error)
}
