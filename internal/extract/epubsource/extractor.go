// Package epubsource extracts paragraphs from an EPUB book archive.
//
// An EPUB is a ZIP container holding XHTML content documents. Each
// content document is reduced to plain prose and split into paragraphs
// on blank-line boundaries.
package epubsource

import (
	"archive/zip"
	"context"
	"fmt"
	"html"
	"io"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/custodia-labs/scriptura/internal/core/domain"
	"github.com/custodia-labs/scriptura/internal/core/ports/driven"
	"github.com/custodia-labs/scriptura/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor reads an EPUB file and produces one passage per paragraph,
// in spine-file order.
type Extractor struct{}

// New creates a new EPUB extractor.
func New() *Extractor {
	return &Extractor{}
}

// SourceType returns the format this extractor handles.
func (e *Extractor) SourceType() domain.SourceType {
	return domain.SourceTypeEPUB
}

// contentExtensions are the markup document extensions found inside
// EPUB archives.
var contentExtensions = map[string]bool{
	".xhtml": true,
	".html":  true,
	".htm":   true,
}

// Extract opens the archive and returns the paragraphs of every
// content document. Internal whitespace is collapsed to single spaces.
func (e *Extractor) Extract(_ context.Context, filePath string) ([]domain.Passage, error) {
	reader, err := zip.OpenReader(filePath)
	if err != nil {
		return nil, fmt.Errorf("open epub: %w", err)
	}
	defer reader.Close()

	files := contentFiles(&reader.Reader)

	var passages []domain.Passage
	for _, f := range files {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open epub entry %s: %w", f.Name, err)
		}
		raw, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read epub entry %s: %w", f.Name, err)
		}

		for _, para := range splitParagraphs(stripMarkup(string(raw))) {
			passages = append(passages, domain.Passage{Text: para})
		}
	}

	logger.Info("Extracted %d paragraphs from EPUB %s", len(passages), filePath)
	return passages, nil
}

// contentFiles returns the archive's markup documents in a stable
// order. ZIP entry order is preserved for ties at the same directory
// depth; entries are otherwise sorted by name so chapter files
// (typically numbered) come out in reading order.
func contentFiles(r *zip.Reader) []*zip.File {
	var files []*zip.File
	for _, f := range r.File {
		if contentExtensions[strings.ToLower(path.Ext(f.Name))] {
			files = append(files, f)
		}
	}
	sort.SliceStable(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})
	return files
}

// Pre-compiled regular expressions for markup stripping.
var (
	scriptTag     = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag      = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	headTag       = regexp.MustCompile(`(?is)<head[^>]*>.*?</head>`)
	comments      = regexp.MustCompile(`(?s)<!--.*?-->`)
	blockBoundary = regexp.MustCompile(`(?i)</?(p|div|h[1-6]|li|tr|blockquote|pre|table|section|article)[^>]*>`)
	brTags        = regexp.MustCompile(`(?i)<(br|hr)\s*/?>`)
	allTags       = regexp.MustCompile(`<[^>]+>`)
	blankLines    = regexp.MustCompile(`\n\s*\n`)
)

// stripMarkup reduces an XHTML document to plain text. Block element
// boundaries become blank lines so paragraph structure survives the
// tag removal.
func stripMarkup(content string) string {
	content = scriptTag.ReplaceAllString(content, "")
	content = styleTag.ReplaceAllString(content, "")
	content = headTag.ReplaceAllString(content, "")
	content = comments.ReplaceAllString(content, "")
	content = blockBoundary.ReplaceAllString(content, "\n\n")
	content = brTags.ReplaceAllString(content, "\n")
	content = allTags.ReplaceAllString(content, "")
	return html.UnescapeString(content)
}

// splitParagraphs splits text on blank-line boundaries, collapsing
// internal whitespace and dropping empty paragraphs.
func splitParagraphs(text string) []string {
	var paragraphs []string
	for _, block := range blankLines.Split(text, -1) {
		para := strings.Join(strings.Fields(block), " ")
		if para != "" {
			paragraphs = append(paragraphs, para)
		}
	}
	return paragraphs
}
