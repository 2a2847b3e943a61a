// Package chunker splits source-file text into overlapping fragments.
//
// Splitting walks an ordered list of separators from most semantic
// (class and function boundaries) to least (blank line, newline, space,
// character cut). Fragments that still exceed the target size after a
// split are re-split with the next separator in the list. Adjacent
// fragments share a configurable overlap so that context spanning a
// boundary (a signature split from its body) survives retrieval.
package chunker

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/arroyo-labs/repoqa-cli/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk,
// large enough to capture full functions and classes.
const DefaultChunkSize = 3000

// DefaultChunkOverlap is the default number of overlapping characters
// between adjacent chunks.
const DefaultChunkOverlap = 500

// DefaultSeparators is the ordered candidate separator list, most
// semantic first. The final empty string forces a plain character cut
// for text with no structure at all.
var DefaultSeparators = []string{
	// Class and function definitions.
	"\nclass ", "\ndef ", "\nfunction ", "\nasync def ",
	// Decorators and indented methods.
	"\n@", "\n    def ", "\n    async def ",
	// JavaScript/TypeScript declarations.
	"\nconst ", "\nlet ", "\nvar ", "\nexport ", "\nimport ",
	// Common code blocks.
	"\nif __name__ == ", "\ntry:", "\nfor ", "\nwhile ",
	// General structure.
	"\n\n", "\n", " ", "",
}

// Splitter splits file content into overlapping chunks.
type Splitter struct {
	chunkSize  int
	overlap    int
	separators []string
}

// Option configures the splitter.
type Option func(*Splitter)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(s *Splitter) {
		if size > 0 {
			s.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(s *Splitter) {
		if overlap >= 0 {
			s.overlap = overlap
		}
	}
}

// WithSeparators replaces the separator list.
func WithSeparators(seps []string) Option {
	return func(s *Splitter) {
		if len(seps) > 0 {
			s.separators = seps
		}
	}
}

// New creates a splitter with the given options.
func New(opts ...Option) *Splitter {
	s := &Splitter{
		chunkSize:  DefaultChunkSize,
		overlap:    DefaultChunkOverlap,
		separators: DefaultSeparators,
	}

	for _, opt := range opts {
		opt(s)
	}

	// Ensure overlap doesn't exceed chunk size
	if s.overlap >= s.chunkSize {
		s.overlap = s.chunkSize / 4
	}

	return s
}

// ChunkFile splits a source file into chunks tagged with provenance
// metadata. A file shorter than the chunk size yields exactly one chunk
// equal to the whole content; empty content yields no chunks.
func (s *Splitter) ChunkFile(file domain.SourceFile, repo domain.Repo) []domain.Chunk {
	texts := s.SplitText(file.Content)
	chunks := make([]domain.Chunk, 0, len(texts))
	for i, text := range texts {
		chunks = append(chunks, domain.Chunk{
			ID:       uuid.New().String(),
			Repo:     repo.String(),
			FileName: file.Name,
			FilePath: file.Path,
			FileExt:  file.Ext,
			Ordinal:  i,
			Content:  text,
		})
	}
	return chunks
}

// SplitText splits raw text into overlapping fragments. Every character
// of the input appears in the output: separators stay attached to the
// fragment they introduce, and each fragment after the first starts
// with the trailing overlap characters of its predecessor.
func (s *Splitter) SplitText(text string) []string {
	if text == "" {
		return nil
	}
	if len(text) <= s.chunkSize {
		return []string{text}
	}
	pieces := s.split(text, s.separators)
	return s.merge(pieces)
}

// split recursively cuts text into pieces no longer than chunkSize,
// trying each separator in order.
func (s *Splitter) split(text string, separators []string) []string {
	if len(text) <= s.chunkSize {
		return []string{text}
	}
	if len(separators) == 0 {
		return s.hardCut(text)
	}

	sep := separators[0]
	rest := separators[1:]

	if sep == "" {
		return s.hardCut(text)
	}
	if !strings.Contains(text, sep) {
		return s.split(text, rest)
	}

	var pieces []string
	for _, part := range splitKeepSeparator(text, sep) {
		if len(part) <= s.chunkSize {
			pieces = append(pieces, part)
			continue
		}
		pieces = append(pieces, s.split(part, rest)...)
	}
	return pieces
}

// hardCut slices text into chunkSize runs with no regard for
// structure. Cut points snap back to rune boundaries so multi-byte
// characters are never split.
func (s *Splitter) hardCut(text string) []string {
	var pieces []string
	for start := 0; start < len(text); {
		end := start + s.chunkSize
		if end >= len(text) {
			end = len(text)
		} else {
			end = runeStart(text, end)
			if end <= start {
				// Degenerate chunk size smaller than one rune.
				end = start + s.chunkSize
			}
		}
		pieces = append(pieces, text[start:end])
		start = end
	}
	return pieces
}

// runeStart returns the largest index at or before i that begins a
// rune in s.
func runeStart(s string, i int) int {
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}

// splitKeepSeparator splits text on sep, keeping the separator attached
// to the start of the following part so no characters are lost.
func splitKeepSeparator(text, sep string) []string {
	parts := strings.Split(text, sep)
	out := make([]string, 0, len(parts))
	for i, part := range parts {
		if i > 0 {
			part = sep + part
		}
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// merge greedily packs pieces into chunks up to chunkSize, seeding each
// new chunk with the trailing overlap characters of the previous one.
func (s *Splitter) merge(pieces []string) []string {
	var chunks []string
	var cur strings.Builder
	seedOnly := true // cur holds nothing but the overlap seed

	for _, piece := range pieces {
		if !seedOnly && cur.Len()+len(piece) > s.chunkSize {
			chunk := cur.String()
			chunks = append(chunks, chunk)
			cur.Reset()

			seed := chunk
			if len(seed) > s.overlap {
				// Advance past any partial rune so the seed stays
				// within the overlap and is valid UTF-8.
				cut := len(seed) - s.overlap
				for cut < len(seed) && !utf8.RuneStart(seed[cut]) {
					cut++
				}
				seed = seed[cut:]
			}
			cur.WriteString(seed)
			seedOnly = true
		}
		cur.WriteString(piece)
		seedOnly = false
	}

	if cur.Len() > 0 {
		chunks = append(chunks, cur.String())
	}
	return chunks
}
