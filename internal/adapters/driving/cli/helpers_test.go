package cli

import (
	"context"
	"errors"

	"github.com/custodia-labs/scriptura/internal/core/domain"
)

// Test doubles for the pipeline and config store, swapped in via
// setupTestServices.

type memConfigStore struct {
	cfg   domain.Config
	saved int
}

func (m *memConfigStore) Load() (domain.Config, error) {
	cfg := m.cfg
	cfg.Normalise()
	return cfg, nil
}

func (m *memConfigStore) Save(cfg domain.Config) error {
	m.cfg = cfg
	m.saved++
	return nil
}

type fakeIndexer struct {
	results []domain.IngestResult
	err     error
	calls   int
	rebuild bool
}

func (f *fakeIndexer) EnsureIndexed(_ context.Context, rebuild bool) ([]domain.IngestResult, error) {
	f.calls++
	f.rebuild = rebuild
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

type fakeAsker struct {
	answer *domain.Answer
	err    error
	asked  string
}

func (f *fakeAsker) Ask(_ context.Context, question string) (*domain.Answer, error) {
	f.asked = question
	if f.err != nil {
		return nil, f.err
	}
	return f.answer, nil
}

type testServices struct {
	config  *memConfigStore
	indexer *fakeIndexer
	asker   *fakeAsker
}

// setupTestServices swaps the pipeline factory and config store for
// in-memory fakes. The returned cleanup restores the real wiring.
func setupTestServices() (*testServices, func()) {
	svc := &testServices{
		config: &memConfigStore{},
		indexer: &fakeIndexer{
			results: []domain.IngestResult{
				{
					Source: domain.Source{Path: "/data/bible.csv", Type: domain.SourceTypeCSV},
					Status: domain.IngestIndexed,
					Chunks: 3,
				},
				{
					Source: domain.Source{Path: "/data/commentary.epub", Type: domain.SourceTypeEPUB},
					Status: domain.IngestIndexed,
					Chunks: 2,
				},
			},
		},
		asker: &fakeAsker{
			answer: &domain.Answer{
				Text: "In the beginning God created the heaven and the earth [1].",
				References: []domain.Reference{
					{Index: 1, Description: "bible.csv (1:1)"},
				},
			},
		},
	}

	oldFactory := pipelineFactory
	oldStore := configStore

	configStore = svc.config
	pipelineFactory = func(_ domain.Config, withLLM bool) (*pipeline, error) {
		p := &pipeline{indexer: svc.indexer, cleanup: func() {}}
		if withLLM {
			p.asker = svc.asker
		}
		return p, nil
	}

	cleanup := func() {
		pipelineFactory = oldFactory
		configStore = oldStore
		indexRebuild = false
		askTopK = 0
		flagCSVPath = ""
		flagEPUB = ""
		flagDataDir = ""
	}
	return svc, cleanup
}

// failingFactory makes every pipeline build fail.
func failingFactory(msg string) func(domain.Config, bool) (*pipeline, error) {
	return func(domain.Config, bool) (*pipeline, error) {
		return nil, errors.New(msg)
	}
}
