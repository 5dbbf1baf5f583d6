package database

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/reco-ai/knowledge-be/config"
	"github.com/reco-ai/knowledge-be/types"
	"github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/auth"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"
)

const BATCH_SIZE = 200

// WeaviateStore implements KnowledgeStore on a Weaviate instance. Vectors are
// produced by the pipeline's own embedder, so the class is created with
// vectorizer "none" and every object carries an explicit vector of the
// configured dimensionality.
type WeaviateStore struct {
	client    *weaviate.Client
	className string
	dimension int
}

func NewWeaviateStore(cfg config.WeaviateStoreConfig, dimension int) (*WeaviateStore, error) {
	var scheme string
	if strings.Contains(cfg.Host, "https") {
		scheme = "https"
	} else {
		scheme = "http"
	}
	host := strings.TrimPrefix(cfg.Host, scheme+"://")
	clientCfg := weaviate.Config{
		Host:   host,
		Scheme: scheme,
	}
	if cfg.APIKey != "" {
		clientCfg.AuthConfig = auth.ApiKey{
			Value: cfg.APIKey,
		}
	}
	client, err := weaviate.NewClient(clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create weaviate client: %v", err)
	}

	className := cfg.ClassName
	if className == "" {
		className = "KnowledgeUnit"
	}
	store := &WeaviateStore{
		client:    client,
		className: className,
		dimension: dimension,
	}
	if err := store.ensureClass(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

// ensureClass creates the collection class if it is absent. An existing class
// is loaded and reused as-is, never re-created or migrated.
func (s *WeaviateStore) ensureClass(ctx context.Context) error {
	schema, err := s.client.Schema().Getter().Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to get schema: %v", err)
	}

	for _, class := range schema.Classes {
		if class.Class == s.className {
			log.Printf("Class '%s' already exists", s.className)
			return nil
		}
	}

	log.Printf("Class '%s' not found. Creating new class...", s.className)
	err = s.client.Schema().ClassCreator().WithClass(s.classObject()).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to create class %s: %v", s.className, err)
	}
	return nil
}

func (s *WeaviateStore) classObject() *models.Class {
	return &models.Class{
		Class: s.className,
		Properties: []*models.Property{
			{Name: "content", DataType: []string{"text"}},
			{Name: "title", DataType: []string{"text"}},
			{Name: "source", DataType: []string{"text"}},
			{Name: "tags", DataType: []string{"text[]"}},
			{Name: "custom", DataType: []string{"object"},
				NestedProperties: []*models.NestedProperty{
					{Name: "page", DataType: []string{"text"}},
				},
			},
			{Name: "createdAt", DataType: []string{"int"}},
		},
		Vectorizer:      "none",
		VectorIndexType: "hnsw",
	}
}

// Insert stores units in batches of BATCH_SIZE with their explicit vectors.
// An empty input returns immediately without a store call.
func (s *WeaviateStore) Insert(ctx context.Context, units []types.KnowledgeUnit) error {
	if len(units) == 0 {
		return nil
	}
	for _, unit := range units {
		if err := s.validateVector(unit.Embedding); err != nil {
			return err
		}
	}

	total := len(units)
	for i := 0; i < total; i += BATCH_SIZE {
		end := i + BATCH_SIZE
		if end > total {
			end = total
		}

		batcher := s.client.Batch().ObjectsBatcher()
		for j := i; j < end; j++ {
			properties := map[string]interface{}{
				"content":   units[j].Content,
				"title":     units[j].Metadata.Title,
				"source":    units[j].Metadata.Source,
				"tags":      units[j].Metadata.Tags,
				"custom":    units[j].Metadata.Custom,
				"createdAt": 0,
			}
			batcher = batcher.WithObjects(&models.Object{
				Class:      s.className,
				Properties: properties,
				Vector:     units[j].Embedding,
			})
		}

		if _, err := batcher.Do(ctx); err != nil {
			return fmt.Errorf("failed to insert batch %d-%d: %v", i, end, err)
		}
		log.Printf("Inserted batch %d-%d of %d units", i, end, total)
	}

	return nil
}

// Search runs a nearVector query and returns candidates in the store's
// distance order.
func (s *WeaviateStore) Search(ctx context.Context, vector []float32, topN int) ([]types.Candidate, error) {
	if len(vector) == 0 {
		log.Println("No query vector provided. Skipping search.")
		return []types.Candidate{}, nil
	}
	if err := s.validateVector(vector); err != nil {
		return nil, err
	}

	fields := []graphql.Field{
		{Name: "content"},
		{Name: "title"},
		{Name: "source"},
		{Name: "tags"},
		{Name: "custom", Fields: []graphql.Field{{Name: "page"}}},
		{Name: "_additional", Fields: []graphql.Field{{Name: "distance"}, {Name: "id"}}},
	}
	nearVector := s.client.GraphQL().NearVectorArgBuilder().WithVector(vector)

	result, err := s.client.GraphQL().Get().
		WithClassName(s.className).
		WithFields(fields...).
		WithNearVector(nearVector).
		WithLimit(topN).
		Do(ctx)
	if err != nil {
		return nil, err
	}
	if result.Errors != nil {
		return nil, fmt.Errorf("search failed: %v", result.Errors[0].Message)
	}

	var candidates []types.Candidate
	if data, ok := result.Data["Get"].(map[string]interface{})[s.className].([]interface{}); ok {
		for _, item := range data {
			if obj, ok := item.(map[string]interface{}); ok {
				candidate := types.Candidate{
					Content: obj["content"].(string),
					Metadata: types.Metadata{
						Title:  obj["title"].(string),
						Source: obj["source"].(string),
						Tags:   parseStringArray(obj["tags"]),
						Custom: parseStringMap(obj["custom"]),
					},
				}
				if additional, ok := obj["_additional"].(map[string]interface{}); ok {
					if distance, ok := additional["distance"].(float64); ok {
						candidate.Distance = float32(distance)
					}
				}
				candidates = append(candidates, candidate)
			}
		}
	}

	return candidates, nil
}

// Reset drops the class and recreates it empty. Destructive; maintenance only.
func (s *WeaviateStore) Reset(ctx context.Context) error {
	err := s.client.Schema().ClassDeleter().WithClassName(s.className).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete class %s: %v", s.className, err)
	}
	err = s.client.Schema().ClassCreator().WithClass(s.classObject()).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to create class %s: %v", s.className, err)
	}
	return nil
}

// validateVector enforces the dimensionality contract between the embedding
// model configuration and the store schema.
func (s *WeaviateStore) validateVector(vector []float32) error {
	if s.dimension > 0 && len(vector) != s.dimension {
		return fmt.Errorf("%w: got %d, store expects %d", types.ErrDimensionMismatch, len(vector), s.dimension)
	}
	return nil
}

// Helper functions
func parseStringArray(v interface{}) []string {
	if v == nil {
		return nil
	}
	arr, ok := v.([]interface{})
	if !ok {
		return nil
	}
	result := make([]string, len(arr))
	for i, item := range arr {
		result[i] = item.(string)
	}
	return result
}

func parseStringMap(v interface{}) map[string]string {
	if v == nil {
		return nil
	}
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil
	}
	result := make(map[string]string)
	for k, val := range m {
		if str, ok := val.(string); ok {
			result[k] = str
		}
	}
	return result
}
