package service

import (
	"context"
	"log"

	"github.com/reco-ai/knowledge-be/database"
	"github.com/reco-ai/knowledge-be/types"
)

const DefaultSearchTopN = 50

// RetrieveService answers a query: embed it, search the knowledge store for
// nearest neighbors, rerank the candidates. Transient store failures degrade
// to an empty result list; only a query-embedding failure surfaces as an
// error, because no search is possible without a query vector.
type RetrieveService struct {
	embedder   *EmbedService
	store      database.KnowledgeStore
	reranker   *RerankService
	searchTopN int
}

func NewRetrieveService(embedder *EmbedService, store database.KnowledgeStore, reranker *RerankService, searchTopN int) *RetrieveService {
	if searchTopN <= 0 {
		searchTopN = DefaultSearchTopN
	}
	return &RetrieveService{
		embedder:   embedder,
		store:      store,
		reranker:   reranker,
		searchTopN: searchTopN,
	}
}

// Retrieve returns the ranked results for a query. topN bounds the candidate
// search; the reranker applies its own cap on the final set.
func (s *RetrieveService) Retrieve(ctx context.Context, query string, topN int) ([]types.RankedResult, error) {
	if topN <= 0 {
		topN = s.searchTopN
	}

	log.Printf("Embedding query and retrieving documents for: '%s'", query)
	vector, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, err
	}

	candidates, err := s.store.Search(ctx, vector, topN)
	if err != nil {
		log.Printf("Error searching knowledge store: %v", err)
		return []types.RankedResult{}, nil
	}
	if len(candidates) == 0 {
		return []types.RankedResult{}, nil
	}

	return s.reranker.Rerank(ctx, query, candidates), nil
}
