package chunker

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arroyo-labs/repoqa-cli/internal/core/domain"
)

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		s := New()
		assert.Equal(t, DefaultChunkSize, s.chunkSize)
		assert.Equal(t, DefaultChunkOverlap, s.overlap)
	})

	t.Run("custom size and overlap", func(t *testing.T) {
		s := New(WithChunkSize(500), WithOverlap(100))
		assert.Equal(t, 500, s.chunkSize)
		assert.Equal(t, 100, s.overlap)
	})

	t.Run("overlap exceeding chunk size is reduced", func(t *testing.T) {
		s := New(WithChunkSize(100), WithOverlap(150))
		assert.Less(t, s.overlap, s.chunkSize)
	})

	t.Run("zero values ignored", func(t *testing.T) {
		s := New(WithChunkSize(0), WithOverlap(-1))
		assert.Equal(t, DefaultChunkSize, s.chunkSize)
		assert.Equal(t, DefaultChunkOverlap, s.overlap)
	})
}

func TestSplitText_ShortInput(t *testing.T) {
	s := New(WithChunkSize(100), WithOverlap(20))

	text := "def hello():\n    return 42\n"
	chunks := s.SplitText(text)

	require.Len(t, chunks, 1)
	assert.Equal(t, text, chunks[0])
}

func TestSplitText_EmptyInput(t *testing.T) {
	s := New()
	assert.Nil(t, s.SplitText(""))
}

func TestSplitText_SplitsOnFunctionBoundaries(t *testing.T) {
	s := New(WithChunkSize(80), WithOverlap(10))

	text := "def first():\n    return 1\n" +
		"\ndef second():\n    return 2\n" +
		"\ndef third():\n    return 3\n"
	chunks := s.SplitText(text)

	require.Greater(t, len(chunks), 1)
	// Fragments after the first should begin at a def boundary once the
	// overlap seed is stripped.
	for i := 1; i < len(chunks); i++ {
		prev := chunks[i-1]
		seedLen := 10
		if len(prev) < seedLen {
			seedLen = len(prev)
		}
		assert.True(t, strings.HasPrefix(chunks[i][seedLen:], "\ndef "),
			"chunk %d does not start at a def boundary: %q", i, chunks[i])
	}
}

// seedLen returns the overlap seed length of chunk i given its
// predecessor, mirroring the merge step.
func seedLen(prev string, overlap int) int {
	if len(prev) < overlap {
		return len(prev)
	}
	return overlap
}

func TestSplitText_NoCharactersLost(t *testing.T) {
	const overlap = 25
	s := New(WithChunkSize(120), WithOverlap(overlap))

	var b strings.Builder
	for i := 0; i < 40; i++ {
		b.WriteString("def fn")
		b.WriteByte(byte('a' + i%26))
		b.WriteString("():\n    return value\n\n")
	}
	text := b.String()

	chunks := s.SplitText(text)
	require.Greater(t, len(chunks), 1)

	var rebuilt strings.Builder
	rebuilt.WriteString(chunks[0])
	for i := 1; i < len(chunks); i++ {
		rebuilt.WriteString(chunks[i][seedLen(chunks[i-1], overlap):])
	}
	assert.Equal(t, text, rebuilt.String())
}

func TestSplitText_ConsecutiveChunksOverlap(t *testing.T) {
	const overlap = 30
	s := New(WithChunkSize(150), WithOverlap(overlap))

	text := strings.Repeat("const value = compute(input)\n", 40)
	chunks := s.SplitText(text)
	require.Greater(t, len(chunks), 1)

	for i := 1; i < len(chunks); i++ {
		n := seedLen(chunks[i-1], overlap)
		tail := chunks[i-1][len(chunks[i-1])-n:]
		assert.True(t, strings.HasPrefix(chunks[i], tail),
			"chunk %d does not begin with the tail of chunk %d", i, i-1)
	}
}

func TestSplitText_UnstructuredTextHardCut(t *testing.T) {
	s := New(WithChunkSize(50), WithOverlap(10))

	// No separators at all: one long run of the same character.
	text := strings.Repeat("x", 220)
	chunks := s.SplitText(text)

	require.Greater(t, len(chunks), 1)
	for i, c := range chunks {
		assert.LessOrEqual(t, len(c), 50+10, "chunk %d too large", i)
	}

	var rebuilt strings.Builder
	rebuilt.WriteString(chunks[0])
	for i := 1; i < len(chunks); i++ {
		rebuilt.WriteString(chunks[i][seedLen(chunks[i-1], 10):])
	}
	assert.Equal(t, text, rebuilt.String())
}

func TestSplitText_MultiByteRunesStayIntact(t *testing.T) {
	s := New(WithChunkSize(100))

	// 150 three-byte runes with no separators force hard cuts that do
	// not land on byte multiples of the rune width.
	text := strings.Repeat("世", 150)
	chunks := s.SplitText(text)

	require.Greater(t, len(chunks), 1)
	for i, c := range chunks {
		assert.True(t, utf8.ValidString(c), "chunk %d is not valid UTF-8: %q", i, c)
		assert.Empty(t, strings.Trim(c, "世"), "chunk %d contains stray bytes: %q", i, c)
	}
}

func TestSplitText_MixedWidthTextValidChunks(t *testing.T) {
	s := New(WithChunkSize(60), WithOverlap(15))

	text := strings.Repeat("def graph():\n    return \"日本語のコメント\"\n\n", 12)
	chunks := s.SplitText(text)

	require.Greater(t, len(chunks), 1)
	for i, c := range chunks {
		assert.True(t, utf8.ValidString(c), "chunk %d is not valid UTF-8: %q", i, c)
	}
}

func TestSplitText_FallsThroughSeparators(t *testing.T) {
	s := New(WithChunkSize(60), WithOverlap(0))

	// Only blank lines, no function boundaries.
	text := strings.Repeat("some plain prose paragraph\n\n", 10)
	chunks := s.SplitText(text)

	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 60)
	}
	assert.Equal(t, text, strings.Join(chunks, ""))
}

func TestChunkFile_Metadata(t *testing.T) {
	s := New(WithChunkSize(40), WithOverlap(5))
	repo := domain.Repo{Owner: "octo", Name: "demo"}
	file := domain.SourceFile{
		Name:    "main.py",
		Path:    "src/main.py",
		Ext:     ".py",
		Content: strings.Repeat("def f():\n    pass\n\n", 10),
	}

	chunks := s.ChunkFile(file, repo)
	require.Greater(t, len(chunks), 1)

	for i, c := range chunks {
		assert.NotEmpty(t, c.ID)
		assert.Equal(t, "octo/demo", c.Repo)
		assert.Equal(t, "main.py", c.FileName)
		assert.Equal(t, "src/main.py", c.FilePath)
		assert.Equal(t, ".py", c.FileExt)
		assert.Equal(t, i, c.Ordinal)
	}
}

func TestChunkFile_ShortFileSingleChunk(t *testing.T) {
	s := New()
	repo := domain.Repo{Owner: "octo", Name: "demo"}
	file := domain.SourceFile{
		Name:    "tiny.go",
		Path:    "tiny.go",
		Ext:     ".go",
		Content: "package tiny\n",
	}

	chunks := s.ChunkFile(file, repo)
	require.Len(t, chunks, 1)
	assert.Equal(t, file.Content, chunks[0].Content)
	assert.Equal(t, 0, chunks[0].Ordinal)
}

func TestChunkFile_EmptyFileNoChunks(t *testing.T) {
	s := New()
	chunks := s.ChunkFile(domain.SourceFile{Name: "empty.go"}, domain.Repo{Owner: "o", Name: "r"})
	assert.Empty(t, chunks)
}
