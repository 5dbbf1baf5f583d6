package service

import (
	"context"
	"errors"
	"testing"

	"github.com/reco-ai/knowledge-be/config"
	"github.com/reco-ai/knowledge-be/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeKnowledgeStore struct {
	candidates []types.Candidate
	err        error
	gotVector  []float32
	gotTopN    int
}

func (s *fakeKnowledgeStore) Insert(ctx context.Context, units []types.KnowledgeUnit) error {
	return nil
}

func (s *fakeKnowledgeStore) Search(ctx context.Context, vector []float32, topN int) ([]types.Candidate, error) {
	s.gotVector = vector
	s.gotTopN = topN
	return s.candidates, s.err
}

func (s *fakeKnowledgeStore) Reset(ctx context.Context) error { return nil }

func offlineReranker(topN int) *RerankService {
	return NewRerankService(config.RerankConfig{Threshold: 0.1, TopN: topN}, true)
}

func TestRetrieveReturnsRankedResults(t *testing.T) {
	store := &fakeKnowledgeStore{candidates: makeCandidates("a", "b", "c")}
	s := NewRetrieveService(NewEmbedService(NewMockEmbedding(4)), store, offlineReranker(2), 10)

	results, err := s.Retrieve(context.Background(), "pump maintenance", 3)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].Content)
	assert.Equal(t, "b", results[1].Content)

	assert.Len(t, store.gotVector, 4)
	assert.Equal(t, 3, store.gotTopN)
}

func TestRetrieveDefaultsSearchTopN(t *testing.T) {
	store := &fakeKnowledgeStore{}
	s := NewRetrieveService(NewEmbedService(NewMockEmbedding(4)), store, offlineReranker(5), 7)

	_, err := s.Retrieve(context.Background(), "q", 0)
	require.NoError(t, err)
	assert.Equal(t, 7, store.gotTopN)
}

func TestRetrieveEmptyStoreSkipsReranker(t *testing.T) {
	store := &fakeKnowledgeStore{}
	// a nil reranker would panic if invoked on an empty candidate set
	s := NewRetrieveService(NewEmbedService(NewMockEmbedding(4)), store, nil, 0)

	results, err := s.Retrieve(context.Background(), "q", 5)
	require.NoError(t, err)
	require.NotNil(t, results)
	assert.Empty(t, results)
}

func TestRetrieveSearchErrorDegradesToEmpty(t *testing.T) {
	store := &fakeKnowledgeStore{err: errors.New("store unreachable")}
	s := NewRetrieveService(NewEmbedService(NewMockEmbedding(4)), store, offlineReranker(5), 0)

	results, err := s.Retrieve(context.Background(), "q", 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRetrieveQueryEmbeddingFailureIsFatal(t *testing.T) {
	store := &fakeKnowledgeStore{candidates: makeCandidates("a")}
	s := NewRetrieveService(NewEmbedService(scriptedEmbedder{dimension: 4, failOn: "q"}), store, offlineReranker(5), 0)

	_, err := s.Retrieve(context.Background(), "q", 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrQueryEmbedding)
	assert.Nil(t, store.gotVector, "search must not run without a query vector")
}
