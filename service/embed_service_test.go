package service

import (
	"context"
	"errors"
	"testing"

	"github.com/reco-ai/knowledge-be/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedEmbedder fails on one configured input and succeeds on everything
// else.
type scriptedEmbedder struct {
	dimension int
	failOn    string
}

func (e scriptedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == e.failOn {
		return nil, errors.New("provider unavailable")
	}
	vector := make([]float32, e.dimension)
	if e.dimension > 0 {
		vector[0] = 1
	}
	return vector, nil
}

func (e scriptedEmbedder) Dimension() int { return e.dimension }

func TestEmbedChunksDropsFailedChunks(t *testing.T) {
	s := NewEmbedService(scriptedEmbedder{dimension: 4, failOn: "bad"})
	metadata := types.Metadata{Title: "doc", Source: "doc.pdf"}

	units := s.EmbedChunks(context.Background(), []string{"first", "bad", "third"}, metadata)
	require.Len(t, units, 2)
	assert.Equal(t, "first", units[0].Content)
	assert.Equal(t, "third", units[1].Content)
	for _, unit := range units {
		assert.Len(t, unit.Embedding, 4)
		assert.Equal(t, metadata, unit.Metadata)
	}
}

func TestEmbedQueryFailureIsFatal(t *testing.T) {
	s := NewEmbedService(scriptedEmbedder{dimension: 4, failOn: "query"})
	_, err := s.EmbedQuery(context.Background(), "query")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrQueryEmbedding)
}

func TestEmbedQueryEmptyVectorIsFatal(t *testing.T) {
	s := NewEmbedService(scriptedEmbedder{dimension: 0})
	_, err := s.EmbedQuery(context.Background(), "query")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrQueryEmbedding)
}

func TestMockEmbeddingIsDeterministic(t *testing.T) {
	e := NewMockEmbedding(8)
	first, err := e.Embed(context.Background(), "anything")
	require.NoError(t, err)
	second, err := e.Embed(context.Background(), "something else")
	require.NoError(t, err)

	assert.Len(t, first, 8)
	assert.Equal(t, first, second)
	assert.Equal(t, 8, e.Dimension())
}
