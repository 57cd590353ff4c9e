package services

import (
	"context"
	"errors"
	"math"
	"sort"

	"github.com/custodia-labs/scriptura/internal/core/domain"
	"github.com/custodia-labs/scriptura/internal/core/ports/driven"
)

// In-memory test doubles for the driven ports.

type fakeEmbedder struct {
	failBatch bool
	batches   int
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	return embedText(text), nil
}

func (f *fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	if f.failBatch {
		return nil, errors.New("embedding backend down")
	}
	f.batches++
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = embedText(t)
	}
	return out, nil
}

func (f *fakeEmbedder) ModelName() string            { return "fake-embed" }
func (f *fakeEmbedder) Ping(_ context.Context) error { return nil }
func (f *fakeEmbedder) Close() error                 { return nil }

// embedText maps text to a tiny deterministic vector so equal inputs
// retrieve each other with similarity 1.
func embedText(text string) []float32 {
	v := make([]float32, 4)
	for i, r := range text {
		v[i%4] += float32(r)
	}
	return v
}

type storedChunk struct {
	chunk     domain.Chunk
	embedding []float32
}

type fakeStore struct {
	entries  []storedChunk
	failAdd  bool
	clears   int
	searches int
}

func (f *fakeStore) Add(_ context.Context, chunks []domain.Chunk, embeddings [][]float32) error {
	if f.failAdd {
		return errors.New("store write failed")
	}
	for i, c := range chunks {
		f.entries = append(f.entries, storedChunk{chunk: c, embedding: embeddings[i]})
	}
	return nil
}

func (f *fakeStore) Search(_ context.Context, query []float32, k int) ([]domain.ScoredChunk, error) {
	f.searches++
	results := make([]domain.ScoredChunk, 0, len(f.entries))
	for _, e := range f.entries {
		results = append(results, domain.ScoredChunk{
			Chunk:      e.chunk,
			Similarity: cosine(query, e.embedding),
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

func (f *fakeStore) Count(_ context.Context) (int, error) {
	return len(f.entries), nil
}

func (f *fakeStore) Clear(_ context.Context) error {
	f.clears++
	f.entries = nil
	return nil
}

func (f *fakeStore) Close() error { return nil }

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

type fakeLLM struct {
	response   string
	err        error
	lastPrompt string
}

func (f *fakeLLM) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	f.lastPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeLLM) ModelName() string            { return "fake-llm" }
func (f *fakeLLM) Ping(_ context.Context) error { return nil }
func (f *fakeLLM) Close() error                 { return nil }

type fakePromptStore struct {
	prompt string
	err    error
}

func (f *fakePromptStore) Load(_ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.prompt, nil
}

func (f *fakePromptStore) Reload() {}

type fakeExtractor struct {
	sourceType domain.SourceType
	passages   []domain.Passage
	err        error
}

func (f *fakeExtractor) SourceType() domain.SourceType {
	return f.sourceType
}

func (f *fakeExtractor) Extract(_ context.Context, _ string) ([]domain.Passage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.passages, nil
}
