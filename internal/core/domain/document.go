package domain

// SourceType identifies the format of an input source.
type SourceType string

const (
	// SourceTypeCSV is a delimited verse table with a header row.
	SourceTypeCSV SourceType = "csv"

	// SourceTypeEPUB is an EPUB book archive.
	SourceTypeEPUB SourceType = "epub"
)

// IsValid returns true if the source type is recognised.
func (t SourceType) IsValid() bool {
	switch t {
	case SourceTypeCSV, SourceTypeEPUB:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t SourceType) String() string {
	return string(t)
}

// Source is an input file to be indexed.
type Source struct {
	// Path is the location of the file on disk.
	Path string

	// Type identifies the extractor that handles this source.
	Type SourceType
}

// Passage is a plain-text unit produced by extraction, before chunking.
// For CSV sources there is one passage per row; for EPUB sources one per
// paragraph.
type Passage struct {
	// Text is the extracted content with whitespace collapsed.
	Text string

	// Row is the zero-based data row this passage came from. Only
	// meaningful for tabular sources, where it forms the chunk
	// identifier; rows skipped during extraction leave gaps.
	Row int

	// Book is the label column value for tabular sources, empty
	// otherwise. When set it names the chunk's source in references.
	Book string

	// Chapter is the chapter locator, empty when the source carries none.
	Chapter string

	// Verse is the verse locator, empty when the source carries none.
	Verse string
}

// Chunk is the unit of indexing and retrieval.
// Chunks are created during ingestion and never mutated; a rebuild clears
// and recreates the whole set.
type Chunk struct {
	// ID is the stable identifier within an index run.
	// CSV chunks use "csv_<row>", EPUB chunks "epub_<uuid>".
	ID string

	// Content is the chunk text.
	Content string

	// Source names the origin for reference descriptions: the row's
	// book label when the table carries one, else the base filename.
	Source string

	// Chapter is the chapter locator, empty when absent.
	Chapter string

	// Verse is the verse locator, empty when absent.
	Verse string
}

// ScoredChunk is a chunk paired with its similarity to a query.
type ScoredChunk struct {
	Chunk Chunk

	// Similarity is the cosine similarity score (0-1).
	Similarity float64
}
