package driven

import (
	"context"

	"github.com/custodia-labs/scriptura/internal/core/domain"
)

// VectorStore persists chunks with their embeddings and serves
// similarity queries. The backing partition is exclusively dedicated to
// this pipeline: nothing else writes into it, and Clear removes all of
// it.
type VectorStore interface {
	// Add inserts chunks with their embeddings. Chunk i pairs with
	// embeddings[i].
	Add(ctx context.Context, chunks []domain.Chunk, embeddings [][]float32) error

	// Search returns up to k stored chunks ranked by cosine similarity
	// to the query vector, descending. Tie order is store-default.
	Search(ctx context.Context, query []float32, k int) ([]domain.ScoredChunk, error)

	// Count returns the number of stored chunks. Zero means the
	// partition is empty and indexing is required.
	Count(ctx context.Context) (int, error)

	// Clear removes every entry and all files under the partition.
	// Destructive and non-atomic: an interrupted clear may leave the
	// partition partially populated.
	Clear(ctx context.Context) error

	// Close releases resources.
	Close() error
}
