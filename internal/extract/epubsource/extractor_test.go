package epubsource

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/scriptura/internal/core/domain"
)

// writeEPUB builds a minimal EPUB-shaped archive from name/content pairs.
func writeEPUB(t *testing.T, entries map[string]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "book.epub")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	for name, content := range entries {
		entry, err := w.Create(name)
		require.NoError(t, err)
		_, err = entry.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return path
}

func TestSourceType(t *testing.T) {
	assert.Equal(t, domain.SourceTypeEPUB, New().SourceType())
}

func TestExtract_ParagraphsFromMarkup(t *testing.T) {
	path := writeEPUB(t, map[string]string{
		"OEBPS/ch1.xhtml": `<html><head><title>Ch 1</title></head><body>
<p>First paragraph of the commentary.</p>
<p>Second paragraph, with <em>emphasis</em> kept as text.</p>
</body></html>`,
	})

	passages, err := New().Extract(context.Background(), path)

	require.NoError(t, err)
	require.Len(t, passages, 2)
	assert.Equal(t, "First paragraph of the commentary.", passages[0].Text)
	assert.Equal(t, "Second paragraph, with emphasis kept as text.", passages[1].Text)
}

func TestExtract_FilesInNameOrder(t *testing.T) {
	path := writeEPUB(t, map[string]string{
		"OEBPS/ch2.xhtml": "<body><p>second chapter</p></body>",
		"OEBPS/ch1.xhtml": "<body><p>first chapter</p></body>",
	})

	passages, err := New().Extract(context.Background(), path)

	require.NoError(t, err)
	require.Len(t, passages, 2)
	assert.Equal(t, "first chapter", passages[0].Text)
	assert.Equal(t, "second chapter", passages[1].Text)
}

func TestExtract_IgnoresNonContentEntries(t *testing.T) {
	path := writeEPUB(t, map[string]string{
		"mimetype":               "application/epub+zip",
		"META-INF/container.xml": "<container/>",
		"OEBPS/style.css":        "p { margin: 0 }",
		"OEBPS/ch1.xhtml":        "<body><p>only real content</p></body>",
	})

	passages, err := New().Extract(context.Background(), path)

	require.NoError(t, err)
	require.Len(t, passages, 1)
	assert.Equal(t, "only real content", passages[0].Text)
}

func TestExtract_EntitiesUnescaped(t *testing.T) {
	path := writeEPUB(t, map[string]string{
		"ch1.xhtml": "<body><p>Alpha &amp; Omega&nbsp;&mdash; the beginning</p></body>",
	})

	passages, err := New().Extract(context.Background(), path)

	require.NoError(t, err)
	require.Len(t, passages, 1)
	assert.Contains(t, passages[0].Text, "Alpha & Omega")
}

func TestExtract_ScriptStyleHeadDropped(t *testing.T) {
	path := writeEPUB(t, map[string]string{
		"ch1.html": `<html><head><title>dropped</title></head><body>
<script>var x = "dropped";</script>
<style>p { color: red }</style>
<p>kept paragraph</p>
</body></html>`,
	})

	passages, err := New().Extract(context.Background(), path)

	require.NoError(t, err)
	require.Len(t, passages, 1)
	assert.Equal(t, "kept paragraph", passages[0].Text)
}

func TestExtract_InternalWhitespaceCollapsed(t *testing.T) {
	path := writeEPUB(t, map[string]string{
		"ch1.xhtml": "<body><p>spread   across\n   lines</p></body>",
	})

	passages, err := New().Extract(context.Background(), path)

	require.NoError(t, err)
	require.Len(t, passages, 1)
	assert.Equal(t, "spread across lines", passages[0].Text)
}

func TestExtract_NotAZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.epub")
	require.NoError(t, os.WriteFile(path, []byte("not an archive"), 0600))

	_, err := New().Extract(context.Background(), path)

	assert.Error(t, err)
}

func TestSplitParagraphs(t *testing.T) {
	paras := splitParagraphs("one\n\n\n  two  words \n\n")

	assert.Equal(t, []string{"one", "two words"}, paras)
}
