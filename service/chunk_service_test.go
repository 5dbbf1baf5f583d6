package service

import (
	"strings"
	"testing"

	"github.com/reco-ai/knowledge-be/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reassemble strips the overlap prefix from every chunk after the first and
// concatenates, which must reproduce the input exactly.
func reassemble(chunks []string, overlap int) string {
	var b strings.Builder
	for i, chunk := range chunks {
		if i == 0 {
			b.WriteString(chunk)
			continue
		}
		b.WriteString(string([]rune(chunk)[overlap:]))
	}
	return b.String()
}

func TestSplitEmptyInput(t *testing.T) {
	s := NewChunkService(DefaultDocumentServiceConfig)
	assert.Nil(t, s.Split(""))
	assert.Nil(t, s.Split("   \n\t  "))
}

func TestSplitShortTextSingleChunk(t *testing.T) {
	s := NewChunkService(DefaultDocumentServiceConfig)
	text := "A short paragraph that fits in one chunk."
	chunks := s.Split(text)
	require.Len(t, chunks, 1)
	assert.Equal(t, text, chunks[0])
}

func TestSplitRespectsMaxSize(t *testing.T) {
	s := NewChunkService(types.DocumentServiceConfig{MaxChunkSize: 100, OverlapSize: 20})
	text := strings.Repeat("The procedure requires care. ", 60)
	chunks := s.Split(text)
	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len([]rune(chunk)), 100)
	}
}

func TestSplitRoundTripModuloOverlap(t *testing.T) {
	s := NewChunkService(types.DocumentServiceConfig{MaxChunkSize: 120, OverlapSize: 30})
	text := "First paragraph with some content.\n\n" +
		strings.Repeat("A sentence about maintenance schedules. ", 20) +
		"\nFinal line without trailing newline"
	chunks := s.Split(text)
	require.Greater(t, len(chunks), 1)
	assert.Equal(t, text, reassemble(chunks, 30))
}

func TestSplitRoundTripMultibyte(t *testing.T) {
	s := NewChunkService(types.DocumentServiceConfig{MaxChunkSize: 50, OverlapSize: 10})
	text := strings.Repeat("Quy trình bảo dưỡng động cơ. ", 30)
	chunks := s.Split(text)
	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len([]rune(chunk)), 50)
	}
	assert.Equal(t, text, reassemble(chunks, 10))
}

func TestSplitPrefersParagraphBreak(t *testing.T) {
	s := NewChunkService(types.DocumentServiceConfig{MaxChunkSize: 100, OverlapSize: 10})
	text := strings.Repeat("a", 50) + "\n\n" + strings.Repeat("b", 100)
	chunks := s.Split(text)
	require.Greater(t, len(chunks), 1)
	assert.True(t, strings.HasSuffix(chunks[0], "\n\n"), "first chunk should end at the paragraph break")
}

func TestSplitOverlapClampedToHalfMax(t *testing.T) {
	s := NewChunkService(types.DocumentServiceConfig{MaxChunkSize: 100, OverlapSize: 80})
	assert.Equal(t, 50, s.overlapSize)

	// still makes progress and round-trips under the clamped overlap
	text := strings.Repeat("word after word. ", 40)
	chunks := s.Split(text)
	require.Greater(t, len(chunks), 1)
	assert.Equal(t, text, reassemble(chunks, 50))
}

func TestSplitZeroConfigUsesDefaults(t *testing.T) {
	s := NewChunkService(types.DocumentServiceConfig{})
	assert.Equal(t, DefaultDocumentServiceConfig.MaxChunkSize, s.maxChunkSize)
}
