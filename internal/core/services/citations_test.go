package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/scriptura/internal/core/domain"
)

func refList(indices ...int) []domain.Reference {
	refs := make([]domain.Reference, len(indices))
	for i, idx := range indices {
		refs[i] = domain.Reference{Index: idx, Description: "source"}
	}
	return refs
}

func TestExtractCitations(t *testing.T) {
	cited := ExtractCitations("As stated in [1], and repeated in [3] and [1] again.")

	assert.Len(t, cited, 2)
	assert.Contains(t, cited, 1)
	assert.Contains(t, cited, 3)
}

func TestExtractCitations_NoMarkers(t *testing.T) {
	assert.Empty(t, ExtractCitations("An answer without any bracketed numbers."))
}

func TestExtractCitations_IgnoresNonNumeric(t *testing.T) {
	cited := ExtractCitations("See [abc] and [ 2 ] but also [4].")

	assert.Len(t, cited, 1)
	assert.Contains(t, cited, 4)
}

func TestExtractCitations_MultiDigit(t *testing.T) {
	cited := ExtractCitations("Deep cut [12].")

	assert.Contains(t, cited, 12)
}

func TestReconcileCitations_FiltersToCited(t *testing.T) {
	refs, fallback := ReconcileCitations("Per [2] and [5].", refList(1, 2, 3, 4, 5))

	assert.False(t, fallback)
	require.Len(t, refs, 2)
	assert.Equal(t, 2, refs[0].Index)
	assert.Equal(t, 5, refs[1].Index)
}

func TestReconcileCitations_AscendingOrder(t *testing.T) {
	// Citation order in the text does not matter; output follows the
	// reference list order.
	refs, fallback := ReconcileCitations("First [4], then [1].", refList(1, 2, 3, 4))

	assert.False(t, fallback)
	require.Len(t, refs, 2)
	assert.Equal(t, 1, refs[0].Index)
	assert.Equal(t, 4, refs[1].Index)
}

func TestReconcileCitations_FallbackWhenNoneCited(t *testing.T) {
	all := refList(1, 2, 3)

	refs, fallback := ReconcileCitations("No brackets here.", all)

	assert.True(t, fallback)
	assert.Equal(t, all, refs)
}

func TestReconcileCitations_UnknownIndexDropped(t *testing.T) {
	refs, fallback := ReconcileCitations("Invented [9].", refList(1, 2))

	assert.False(t, fallback)
	assert.Empty(t, refs)
}
