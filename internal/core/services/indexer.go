package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/custodia-labs/scriptura/internal/chunker"
	"github.com/custodia-labs/scriptura/internal/core/domain"
	"github.com/custodia-labs/scriptura/internal/core/ports/driven"
	"github.com/custodia-labs/scriptura/internal/core/ports/driving"
	"github.com/custodia-labs/scriptura/internal/logger"
)

// Ensure Indexer implements the interface.
var _ driving.Indexer = (*Indexer)(nil)

// Chunk identifier prefixes per source type.
const (
	csvIDPrefix  = "csv_"
	epubIDPrefix = "epub_"
)

// Indexer orchestrates ingestion: extract, chunk, embed, store.
// Failures are contained per source; a bad CSV never prevents the
// EPUB from being indexed, and vice versa.
type Indexer struct {
	cfg        domain.Config
	extractors map[domain.SourceType]driven.Extractor
	chunker    *chunker.Chunker
	embedder   driven.EmbeddingService
	store      driven.VectorStore
}

// NewIndexer creates an indexer over the given sources and services.
func NewIndexer(
	cfg domain.Config,
	extractors []driven.Extractor,
	ch *chunker.Chunker,
	embedder driven.EmbeddingService,
	store driven.VectorStore,
) *Indexer {
	byType := make(map[domain.SourceType]driven.Extractor, len(extractors))
	for _, e := range extractors {
		byType[e.SourceType()] = e
	}
	return &Indexer{
		cfg:        cfg,
		extractors: byType,
		chunker:    ch,
		embedder:   embedder,
		store:      store,
	}
}

// EnsureIndexed indexes both sources unless the store partition already
// holds entries. The partition's non-emptiness is the sole idempotency
// signal: a second call with rebuild=false performs zero writes.
// With rebuild=true the partition is cleared first; the clear is
// destructive and not atomic.
func (ix *Indexer) EnsureIndexed(ctx context.Context, rebuild bool) ([]domain.IngestResult, error) {
	logger.Section("Indexing")

	if rebuild {
		logger.Info("Rebuild requested, clearing index partition")
		if err := ix.store.Clear(ctx); err != nil {
			return nil, fmt.Errorf("clear index: %w", err)
		}
	}

	count, err := ix.store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count index entries: %w", err)
	}
	if count > 0 {
		logger.Info("Index partition holds %d chunks, skipping (use rebuild to force)", count)
		return nil, nil
	}

	// Fixed order: CSV first, then EPUB.
	results := make([]domain.IngestResult, 0, 2)
	for _, src := range ix.cfg.Sources() {
		results = append(results, ix.ingest(ctx, src))
	}
	return results, nil
}

// ingest processes one source end to end. Any failure is folded into a
// skipped result so the caller can report it without aborting the run.
func (ix *Indexer) ingest(ctx context.Context, src domain.Source) domain.IngestResult {
	result := domain.IngestResult{Source: src}

	skip := func(reason string) domain.IngestResult {
		logger.Warn("Skipping %s source %s: %s", src.Type, src.Path, reason)
		result.Status = domain.IngestSkipped
		result.Reason = reason
		return result
	}

	if src.Path == "" {
		return skip("no path configured")
	}
	info, err := os.Stat(src.Path)
	if err != nil || info.IsDir() {
		return skip("not a readable file")
	}

	extractor, ok := ix.extractors[src.Type]
	if !ok {
		return skip(fmt.Sprintf("%v: %s", domain.ErrUnsupportedType, src.Type))
	}

	passages, err := extractor.Extract(ctx, src.Path)
	if err != nil {
		return skip(err.Error())
	}

	chunks := ix.buildChunks(src, passages)
	if len(chunks) == 0 {
		logger.Info("No chunks produced from %s; nothing added", src.Path)
		result.Status = domain.IngestEmpty
		return result
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}

	logger.Debug("Embedding %d chunks from %s", len(chunks), src.Path)
	embeddings, err := ix.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return skip(fmt.Sprintf("embed chunks: %v", err))
	}

	if err := ix.store.Add(ctx, chunks, embeddings); err != nil {
		return skip(fmt.Sprintf("store chunks: %v", err))
	}

	logger.Info("Indexed %d chunks from %s", len(chunks), src.Path)
	result.Status = domain.IngestIndexed
	result.Chunks = len(chunks)
	return result
}

// buildChunks converts passages into store-ready chunks.
//
// CSV rows index one-to-one, keyed by their row position. EPUB
// paragraphs are merged by the chunker and keyed by a random token,
// since paragraph positions do not survive merging.
func (ix *Indexer) buildChunks(src domain.Source, passages []domain.Passage) []domain.Chunk {
	base := filepath.Base(src.Path)

	if src.Type == domain.SourceTypeCSV {
		chunks := make([]domain.Chunk, 0, len(passages))
		for _, p := range passages {
			source := base
			if p.Book != "" {
				source = p.Book
			}
			chunks = append(chunks, domain.Chunk{
				ID:      fmt.Sprintf("%s%d", csvIDPrefix, p.Row),
				Content: p.Text,
				Source:  source,
				Chapter: p.Chapter,
				Verse:   p.Verse,
			})
		}
		return chunks
	}

	texts := ix.chunker.Chunk(passages)
	chunks := make([]domain.Chunk, 0, len(texts))
	for _, text := range texts {
		chunks = append(chunks, domain.Chunk{
			ID:      epubIDPrefix + uuid.New().String(),
			Content: text,
			Source:  base,
		})
	}
	return chunks
}
