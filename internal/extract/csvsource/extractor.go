// Package csvsource extracts passages from a delimited verse table.
package csvsource

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/custodia-labs/scriptura/internal/core/domain"
	"github.com/custodia-labs/scriptura/internal/core/ports/driven"
	"github.com/custodia-labs/scriptura/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Column name candidates, checked in priority order. The first header
// that matches wins.
var (
	textColumns    = []string{"Text", "text", "Content", "content", "body", "Body"}
	bookColumns    = []string{"Book", "book", "Source", "source", "Title", "title"}
	chapterColumns = []string{"chapter", "Chapter"}
	verseColumns   = []string{"verse", "Verse"}
)

// Extractor reads a CSV file with a header row and produces one passage
// per data row. The passage text is the label column (when present)
// concatenated with the text column. Chapter and verse columns are
// carried as locators.
type Extractor struct{}

// New creates a new CSV extractor.
func New() *Extractor {
	return &Extractor{}
}

// SourceType returns the format this extractor handles.
func (e *Extractor) SourceType() domain.SourceType {
	return domain.SourceTypeCSV
}

// Extract parses the file at path. A missing text column fails the
// whole source with domain.ErrNoTextColumn; rows whose combined text is
// empty are skipped but still consume their row index.
func (e *Extractor) Extract(_ context.Context, path string) ([]domain.Passage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tolerate ragged rows

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	cols := indexColumns(header)
	textCol, ok := pickColumn(cols, textColumns)
	if !ok {
		return nil, fmt.Errorf("%w in %v", domain.ErrNoTextColumn, header)
	}
	bookCol, hasBook := pickColumn(cols, bookColumns)
	chapterCol, hasChapter := pickColumn(cols, chapterColumns)
	verseCol, hasVerse := pickColumn(cols, verseColumns)

	var passages []domain.Passage
	for row := 0; ; row++ {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", row, err)
		}

		text := field(record, textCol)
		book := ""
		if hasBook {
			book = field(record, bookCol)
		}
		content := strings.TrimSpace(strings.TrimSpace(book) + " " + text)
		if content == "" {
			continue
		}

		p := domain.Passage{Text: content, Row: row, Book: book}
		if hasChapter {
			p.Chapter = field(record, chapterCol)
		}
		if hasVerse {
			p.Verse = field(record, verseCol)
		}
		passages = append(passages, p)
	}

	logger.Info("Extracted %d rows from CSV %s", len(passages), path)
	return passages, nil
}

// indexColumns maps header names to their positions. The first
// occurrence of a duplicated name wins.
func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, ok := cols[name]; !ok {
			cols[name] = i
		}
	}
	return cols
}

// pickColumn returns the position of the first candidate present.
func pickColumn(cols map[string]int, candidates []string) (int, bool) {
	for _, name := range candidates {
		if i, ok := cols[name]; ok {
			return i, true
		}
	}
	return 0, false
}

// field returns the trimmed value at position i, or "" when the row is
// too short.
func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
