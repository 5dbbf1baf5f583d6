package service

import (
	"strings"

	"github.com/reco-ai/knowledge-be/types"
)

var DefaultDocumentServiceConfig = types.DocumentServiceConfig{
	MaxChunkSize: 1000,
	OverlapSize:  200,
}

// ChunkService splits annotated text into overlapping bounded-size chunks.
// Deterministic and stateless beyond its configuration. Lengths are measured
// in runes.
type ChunkService struct {
	maxChunkSize int
	overlapSize  int
}

// NewChunkService creates a new chunk service with configurable sizes.
// Overlap is clamped to half the maximum chunk size so splitting always
// makes progress.
func NewChunkService(cfg types.DocumentServiceConfig) *ChunkService {
	maxSize := cfg.MaxChunkSize
	if maxSize <= 0 {
		maxSize = DefaultDocumentServiceConfig.MaxChunkSize
	}
	overlap := cfg.OverlapSize
	if overlap < 0 {
		overlap = 0
	}
	if overlap > maxSize/2 {
		overlap = maxSize / 2
	}
	return &ChunkService{
		maxChunkSize: maxSize,
		overlapSize:  overlap,
	}
}

// Split produces the ordered chunk sequence. Each chunk after the first
// begins with exactly overlapSize runes copied from the previous chunk's
// tail, so stripping that prefix from every chunk after the first
// reconstructs the input exactly. Empty input yields an empty sequence.
func (s *ChunkService) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	runes := []rune(text)
	if len(runes) <= s.maxChunkSize {
		return []string{text}
	}

	var chunks []string
	start := 0
	for {
		if len(runes)-start <= s.maxChunkSize {
			chunks = append(chunks, string(runes[start:]))
			break
		}
		end := s.findSplit(runes, start)
		chunks = append(chunks, string(runes[start:end]))
		start = end - s.overlapSize
	}
	return chunks
}

// findSplit picks the end of the chunk starting at start. Boundaries are
// tried in priority order: paragraph break, line break, sentence terminator,
// space, raw cut at the maximum. Only boundaries past start+overlapSize are
// accepted, so the next chunk always begins after the current one.
func (s *ChunkService) findSplit(runes []rune, start int) int {
	limit := start + s.maxChunkSize
	floor := start + s.overlapSize

	// paragraph break: chunk ends just after a blank line
	for i := limit; i > floor && i >= 2; i-- {
		if runes[i-1] == '\n' && runes[i-2] == '\n' {
			return i
		}
	}
	// single line break
	for i := limit; i > floor; i-- {
		if runes[i-1] == '\n' {
			return i
		}
	}
	// sentence terminator
	for i := limit; i > floor; i-- {
		if c := runes[i-1]; c == '.' || c == '!' || c == '?' {
			return i
		}
	}
	// word boundary
	for i := limit; i > floor; i-- {
		if runes[i-1] == ' ' {
			return i
		}
	}
	return limit
}
