package domain

// IngestStatus describes the outcome of ingesting a single source.
type IngestStatus string

const (
	// IngestIndexed means the source was extracted and written to the store.
	IngestIndexed IngestStatus = "indexed"

	// IngestSkipped means the source could not be used and was left out.
	// The rest of the run continues; Reason carries the cause.
	IngestSkipped IngestStatus = "skipped"

	// IngestEmpty means extraction succeeded but produced no chunks.
	IngestEmpty IngestStatus = "empty"
)

// IngestResult reports what happened to one source during indexing.
// Sources are never allowed to abort the run: a failure becomes a
// skipped result and the remaining sources are still processed.
type IngestResult struct {
	// Source is the input this result describes.
	Source Source

	// Status is the ingestion outcome.
	Status IngestStatus

	// Chunks is the number of chunks written for this source.
	Chunks int

	// Reason explains a skipped status. Empty otherwise.
	Reason string
}
