// Package chunker merges consecutive paragraphs into bounded-size chunks.
package chunker

import (
	"strings"

	"github.com/custodia-labs/scriptura/internal/core/domain"
)

// DefaultMaxChars is the default chunk budget in characters.
const DefaultMaxChars = 1200

// Chunker accumulates consecutive paragraphs greedily: a chunk grows
// until adding the next paragraph would exceed the budget, then a new
// chunk starts. A single paragraph larger than the budget passes
// through whole. Order is preserved and no paragraph is dropped or
// duplicated.
type Chunker struct {
	maxChars int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithMaxChars sets the chunk budget in characters.
func WithMaxChars(n int) Option {
	return func(c *Chunker) {
		if n > 0 {
			c.maxChars = n
		}
	}
}

// New creates a chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{maxChars: DefaultMaxChars}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// MaxChars returns the configured budget.
func (c *Chunker) MaxChars() int {
	return c.maxChars
}

// Chunk merges the passages into bounded chunks. Each paragraph costs
// its length plus one joiner character against the budget; merged
// paragraphs are joined with a single space.
func (c *Chunker) Chunk(passages []domain.Passage) []string {
	var chunks []string
	var cur []string
	curLen := 0

	for _, p := range passages {
		if curLen+len(p.Text)+1 <= c.maxChars {
			cur = append(cur, p.Text)
			curLen += len(p.Text) + 1
			continue
		}
		if len(cur) > 0 {
			chunks = append(chunks, strings.Join(cur, " "))
		}
		cur = []string{p.Text}
		curLen = len(p.Text) + 1
	}
	if len(cur) > 0 {
		chunks = append(chunks, strings.Join(cur, " "))
	}
	return chunks
}
