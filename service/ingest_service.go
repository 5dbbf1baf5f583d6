package service

import (
	"context"
	"log"

	"github.com/reco-ai/knowledge-be/types"
)

// IngestService runs the ingestion pipeline for one document:
// extraction, annotation, chunking, embedding. Strictly sequential; each
// external call is a single blocking round trip with no retry. The caller is
// responsible for persisting the returned units via the knowledge store.
type IngestService struct {
	extractor *ExtractService
	annotator *AnnotateService
	chunker   *ChunkService
	embedder  *EmbedService
}

func NewIngestService(
	extractor *ExtractService,
	annotator *AnnotateService,
	chunker *ChunkService,
	embedder *EmbedService,
) *IngestService {
	return &IngestService{
		extractor: extractor,
		annotator: annotator,
		chunker:   chunker,
		embedder:  embedder,
	}
}

// IngestResult carries the produced units plus the counts the transport
// layer reports.
type IngestResult struct {
	Units  []types.KnowledgeUnit
	Chunks int
	Images int
}

// Ingest processes a single document into knowledge units. An unsupported
// format or an unresolved placeholder aborts the document; a document that
// yields no chunks is a warning, not an error.
func (s *IngestService) Ingest(ctx context.Context, filePath string) (*IngestResult, error) {
	log.Println("Processing document:", filePath)

	text, images, err := s.extractor.Extract(filePath)
	if err != nil {
		return nil, err
	}

	annotated, err := s.annotator.Annotate(ctx, text, images)
	if err != nil {
		return nil, err
	}

	chunks := s.chunker.Split(annotated)
	if len(chunks) == 0 {
		log.Printf("Warning: document %s produced no chunks", filePath)
		return &IngestResult{Images: len(images)}, nil
	}

	metadata := types.Metadata{
		Title:  GetFileNameWithoutExt(filePath),
		Source: filePath,
	}
	units := s.embedder.EmbedChunks(ctx, chunks, metadata)
	log.Printf("Successfully processed %d of %d chunks from %s", len(units), len(chunks), filePath)

	return &IngestResult{
		Units:  units,
		Chunks: len(chunks),
		Images: len(images),
	}, nil
}
