package driving

import (
	"context"

	"github.com/custodia-labs/scriptura/internal/core/domain"
)

// Asker answers a question from the indexed sources.
type Asker interface {
	// Ask retrieves relevant chunks, assembles a numbered context,
	// generates an answer, and reconciles its citations against the
	// reference list. Service failures surface directly to the caller.
	Ask(ctx context.Context, question string) (*domain.Answer, error)
}
