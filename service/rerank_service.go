package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/reco-ai/knowledge-be/config"
	"github.com/reco-ai/knowledge-be/types"
)

// RerankService re-scores a candidate set against the query with one batched
// relevance request, filters by threshold, and caps the final set. Any
// failure of the rerank call degrades to the store's original order:
// retrieval availability is prioritized over ranking quality.
type RerankService struct {
	endpoint  string
	apiKey    string
	model     string
	threshold float64
	topN      int
	mock      bool
	client    *http.Client
}

func NewRerankService(cfg config.RerankConfig, mock bool) *RerankService {
	threshold := cfg.Threshold
	topN := cfg.TopN
	if topN <= 0 {
		topN = 5
	}
	return &RerankService{
		endpoint:  cfg.Endpoint,
		apiKey:    cfg.APIKey,
		model:     cfg.Model,
		threshold: threshold,
		topN:      topN,
		mock:      mock,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

type rerankRequest struct {
	Model     string   `json:"model"`
	Query     string   `json:"query"`
	Documents []string `json:"documents"`
	TopN      int      `json:"top_n"`
}

type rerankResponse struct {
	Results []struct {
		Index          int     `json:"index"`
		RelevanceScore float64 `json:"relevance_score"`
	} `json:"results"`
}

// Rerank scores candidates against the query. Results below the relevance
// threshold are filtered out; the rest are ordered by score descending and
// capped. On any rerank failure the first topN candidates are returned in
// the store's original order, unranked and unfiltered.
func (s *RerankService) Rerank(ctx context.Context, query string, candidates []types.Candidate) []types.RankedResult {
	if len(candidates) == 0 {
		return []types.RankedResult{}
	}
	if s.mock {
		log.Println("Skipping reranking in mock mode.")
		return s.fallback(candidates)
	}

	log.Println("Reranking documents...")
	results, err := s.rerankRequest(ctx, query, candidates)
	if err != nil {
		log.Printf("Error reranking documents: %v", err)
		return s.fallback(candidates)
	}
	return results
}

func (s *RerankService) rerankRequest(ctx context.Context, query string, candidates []types.Candidate) ([]types.RankedResult, error) {
	documents := make([]string, len(candidates))
	for i, candidate := range candidates {
		documents[i] = candidate.Content
	}
	topN := s.topN
	if topN > len(documents) {
		topN = len(documents)
	}

	body, err := json.Marshal(rerankRequest{
		Model:     s.model,
		Query:     query,
		Documents: documents,
		TopN:      topN,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("rerank request failed: %s", resp.Status)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var parsed rerankResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return nil, err
	}

	ranked := make([]types.RankedResult, 0, len(parsed.Results))
	for _, hit := range parsed.Results {
		if hit.Index < 0 || hit.Index >= len(documents) {
			return nil, fmt.Errorf("rerank response index %d out of range", hit.Index)
		}
		if hit.RelevanceScore < s.threshold {
			continue
		}
		ranked = append(ranked, types.RankedResult{
			Content: documents[hit.Index],
			Score:   hit.RelevanceScore,
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	log.Printf("Reranked %d documents.", len(ranked))
	return ranked, nil
}

// fallback returns the first topN candidates in the store's order with zero
// scores. Used for both the degraded mode and the rerank-failure path.
func (s *RerankService) fallback(candidates []types.Candidate) []types.RankedResult {
	limit := s.topN
	if limit > len(candidates) {
		limit = len(candidates)
	}
	results := make([]types.RankedResult, 0, limit)
	for _, candidate := range candidates[:limit] {
		results = append(results, types.RankedResult{
			Content: candidate.Content,
		})
	}
	return results
}
