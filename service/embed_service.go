package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/reco-ai/knowledge-be/types"
	"github.com/sashabaranov/go-openai"
)

// OpenAIEmbedding produces embeddings through an OpenAI-compatible endpoint.
type OpenAIEmbedding struct {
	client    *openai.Client
	model     string
	dimension int
}

func NewOpenAIEmbedding(baseURL, apiKey, model string, dimension int) *OpenAIEmbedding {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	client := openai.NewClientWithConfig(config)
	return &OpenAIEmbedding{
		client:    client,
		model:     model,
		dimension: dimension,
	}
}

func (e *OpenAIEmbedding) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(e.model),
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, errors.New("no embedding returned")
	}
	return resp.Data[0].Embedding, nil
}

func (e *OpenAIEmbedding) Dimension() int {
	return e.dimension
}

// EmbedService turns chunks and queries into vectors through a single
// EmbeddingProvider, so both sides of the pipeline share one model and
// dimensionality.
type EmbedService struct {
	provider EmbeddingProvider
}

func NewEmbedService(provider EmbeddingProvider) *EmbedService {
	return &EmbedService{provider: provider}
}

// EmbedChunks embeds each chunk into a KnowledgeUnit. A failing chunk is
// logged and dropped rather than aborting the document: partial knowledge is
// preferable to none. N chunks with k failures yield N-k units.
func (s *EmbedService) EmbedChunks(ctx context.Context, chunks []string, metadata types.Metadata) []types.KnowledgeUnit {
	log.Printf("Generating embeddings for %d chunks...", len(chunks))
	units := make([]types.KnowledgeUnit, 0, len(chunks))
	for _, chunk := range chunks {
		embedding, err := s.provider.Embed(ctx, chunk)
		if err != nil {
			log.Printf("Error generating embedding for chunk: %v", err)
			continue
		}
		units = append(units, types.KnowledgeUnit{
			Content:   chunk,
			Embedding: embedding,
			Metadata:  metadata,
		})
	}
	return units
}

// EmbedQuery embeds a retrieval query. Failure here is fatal to the
// retrieval call and surfaces as an explicit error; it is never swallowed
// into an empty result.
func (s *EmbedService) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	embedding, err := s.provider.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrQueryEmbedding, err)
	}
	if len(embedding) == 0 {
		return nil, types.ErrQueryEmbedding
	}
	return embedding, nil
}

// Dimension reports the provider's configured vector dimensionality.
func (s *EmbedService) Dimension() int {
	return s.provider.Dimension()
}
