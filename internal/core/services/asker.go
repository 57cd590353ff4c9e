package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/scriptura/internal/core/domain"
	"github.com/custodia-labs/scriptura/internal/core/ports/driven"
	"github.com/custodia-labs/scriptura/internal/core/ports/driving"
	"github.com/custodia-labs/scriptura/internal/logger"
)

// Ensure Asker implements the interface.
var _ driving.Asker = (*Asker)(nil)

// defaultAnswerPrompt is the fallback template when no PromptStore is
// configured. Placeholders: numbered context, then the question.
const defaultAnswerPrompt = `You are an expert on the Bible. Use the Context to answer the Question.

The Context contains numbered snippets like [1], [2], ... When you use information from the Context, cite the snippet number inline (for example: [1]). At the end of your answer include a 'References' section that lists each referenced number and the corresponding source (as given in the reference mapping).

Context:
%s

Question:
%s`

// Asker runs the per-question flow: retrieve, assemble a numbered
// context, generate, reconcile citations. Service failures are not
// retried; they surface directly to the caller.
type Asker struct {
	embedder driven.EmbeddingService
	store    driven.VectorStore
	llm      driven.LLMService
	prompts  driven.PromptStore
	topK     int
}

// NewAsker creates an asker. The prompt store is optional; when nil the
// embedded default template is used.
func NewAsker(
	embedder driven.EmbeddingService,
	store driven.VectorStore,
	llm driven.LLMService,
	topK int,
) *Asker {
	if topK <= 0 {
		topK = domain.DefaultTopK
	}
	return &Asker{
		embedder: embedder,
		store:    store,
		llm:      llm,
		topK:     topK,
	}
}

// SetPromptStore sets the prompt store for loading the customisable
// answer template.
func (a *Asker) SetPromptStore(store driven.PromptStore) {
	a.prompts = store
}

// Retrieve returns the topK stored chunks most similar to the query.
func (a *Asker) Retrieve(ctx context.Context, query string) ([]domain.ScoredChunk, error) {
	embedding, err := a.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	logger.Debug("Query embedding: %d dimensions", len(embedding))

	hits, err := a.store.Search(ctx, embedding, a.topK)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}
	logger.Debug("Retrieved %d chunks", len(hits))
	return hits, nil
}

// Ask answers one question against the index.
func (a *Asker) Ask(ctx context.Context, question string) (*domain.Answer, error) {
	logger.Section("Question")
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: empty question", domain.ErrInvalidInput)
	}
	logger.Debug("Question: %q", question)

	hits, err := a.Retrieve(ctx, question)
	if err != nil {
		return nil, err
	}

	contextStr, references := BuildContext(hits, ContextMaxChars)
	logger.Debug("Context: %d chars, %d references", len(contextStr), len(references))

	prompt := fmt.Sprintf(a.loadPrompt(), contextStr, question)
	out, err := a.llm.Generate(ctx, prompt, driven.GenerateOptions{})
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	refs, fallback := ReconcileCitations(out, references)
	if fallback {
		logger.Info("No bracketed citations detected, showing all candidates")
	}

	return &domain.Answer{
		Text:        out,
		References:  refs,
		NoCitations: fallback,
	}, nil
}

// loadPrompt returns the answer template, preferring the user-editable
// prompt file over the embedded default.
func (a *Asker) loadPrompt() string {
	if a.prompts == nil {
		return defaultAnswerPrompt
	}
	prompt, err := a.prompts.Load(driven.PromptAnswer)
	if err != nil {
		return defaultAnswerPrompt
	}
	return prompt
}
