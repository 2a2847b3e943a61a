// Package domain holds the core entities shared across services and adapters.
package domain

// SourceFile is a single source-code file fetched from a repository.
// It exists only between fetching and chunking.
type SourceFile struct {
	// Name is the base file name, e.g. "main.go".
	Name string

	// Path is the path within the repository.
	Path string

	// Ext is the file extension including the leading dot.
	Ext string

	// Content is the raw UTF-8 file text.
	Content string
}

// Chunk is a contiguous fragment of a source file's content together
// with its provenance metadata. Chunks are immutable once created.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// Repo is the "owner/name" identifier of the owning repository.
	Repo string

	// FileName is the base name of the originating file.
	FileName string

	// FilePath is the repository path of the originating file.
	FilePath string

	// FileExt is the originating file's extension.
	FileExt string

	// Ordinal is the zero-based position of this chunk within its file.
	// Ordinals are unique per file, not globally.
	Ordinal int

	// Content is the chunk text.
	Content string
}

// QueryResult is the outcome of answering a single question.
// Query-time failures are reported in-band: Answer carries a readable
// message and Evidence is empty.
type QueryResult struct {
	// Answer is the natural-language answer text.
	Answer string

	// Evidence lists the chunks used as supporting context,
	// most similar first.
	Evidence []Chunk
}
