package domain

// Reference maps a context number to a human-readable source description.
// Indices are dense and 1-based in retrieval order: the generator only
// ever sees numbers that exist in the reference list.
type Reference struct {
	// Index is the bracket number used in the assembled context.
	Index int

	// Description identifies the source, e.g. "KJV.csv (1:3)" or
	// "commentary.epub".
	Description string
}

// Answer is the result of one question through the pipeline.
type Answer struct {
	// Text is the generated answer, possibly containing [n] markers.
	Text string

	// References are the sources to display. When the answer contains
	// bracketed citations this holds only the cited entries, in ascending
	// index order; otherwise it holds every candidate.
	References []Reference

	// NoCitations is true when the answer contained no bracketed markers
	// and References fell back to the full candidate list.
	NoCitations bool
}
