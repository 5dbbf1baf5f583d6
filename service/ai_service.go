package service

import (
	"context"
	"log"
)

// The fixed instruction, generation bound and sampling temperature used for
// every image description request, regardless of provider.
const (
	describeInstruction = "Describe this image in detail."
	describeMaxTokens   = 300
	describeTemperature = 0.5
)

// ImageDescriber produces a natural-language description of an image.
type ImageDescriber interface {
	Describe(ctx context.Context, filename string, data []byte) (string, error)
}

// EmbeddingProvider converts text into a fixed-length vector. The same
// provider serves both chunk and query embedding within one deployment.
type EmbeddingProvider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimension() int
}

// MockDescriber is the degraded/offline describer.
type MockDescriber struct{}

func NewMockDescriber() *MockDescriber {
	return &MockDescriber{}
}

func (d *MockDescriber) Describe(ctx context.Context, filename string, data []byte) (string, error) {
	log.Println("Getting mock description for an image...")
	return "A mock description for the provided image.", nil
}

// MockEmbedding is the degraded/offline embedder: a fixed-length zero vector,
// deterministic for testing.
type MockEmbedding struct {
	dimension int
}

func NewMockEmbedding(dimension int) *MockEmbedding {
	return &MockEmbedding{dimension: dimension}
}

func (e *MockEmbedding) Embed(ctx context.Context, text string) ([]float32, error) {
	return make([]float32, e.dimension), nil
}

func (e *MockEmbedding) Dimension() int {
	return e.dimension
}
