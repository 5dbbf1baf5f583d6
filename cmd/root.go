package cmd

import (
	"context"
	"os"

	"github.com/reco-ai/knowledge-be/config"
	"github.com/reco-ai/knowledge-be/database"
	"github.com/reco-ai/knowledge-be/service"
	"github.com/reco-ai/knowledge-be/types"
	"github.com/spf13/cobra"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "knowledge-be",
	Short: "Document knowledge base: ingestion and retrieval pipeline",
	Long: `knowledge-be ingests PDF and DOCX documents into a vector knowledge
store and answers natural-language queries against it.

Ingestion extracts text and images, annotates images with generated
descriptions, chunks the text, embeds each chunk, and stores the
resulting knowledge units. Retrieval embeds the query, searches for
nearest neighbors, and reranks the candidates by relevance.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config/config.yaml", "config file")
}

func loadConfig() (*config.Config, error) {
	return config.LoadConfig(cfgFile)
}

func buildStore(cfg *config.Config) (database.KnowledgeStore, error) {
	return database.NewWeaviateStore(cfg.Weaviate, cfg.EmbeddingDimension)
}

func buildEmbedService(cfg *config.Config) *service.EmbedService {
	var provider service.EmbeddingProvider
	if cfg.Mock {
		provider = service.NewMockEmbedding(cfg.EmbeddingDimension)
	} else {
		provider = service.NewOpenAIEmbedding(cfg.AIEndpoint, cfg.OpenAIAPIKey, cfg.EmbeddingModel, cfg.EmbeddingDimension)
	}
	return service.NewEmbedService(provider)
}

// buildIngestService wires the full ingestion pipeline. The mock flag selects
// the degraded implementation of every external-call stage at construction.
func buildIngestService(ctx context.Context, cfg *config.Config, embedder *service.EmbedService) (*service.IngestService, error) {
	var imageStore service.ImageStore
	var describer service.ImageDescriber

	if cfg.Mock {
		imageStore = service.NewMockImageStore()
		describer = service.NewMockDescriber()
	} else {
		var err error
		imageStore, err = service.NewMinioImageStore(cfg.Minio)
		if err != nil {
			return nil, err
		}
		switch cfg.VisionProvider {
		case "gemini":
			describer, err = service.NewGeminiDescriber(ctx, cfg.GeminiAPIKey, cfg.VisionModel)
			if err != nil {
				return nil, err
			}
		default:
			describer = service.NewOpenAIDescriber(cfg.AIEndpoint, cfg.OpenAIAPIKey, cfg.VisionModel)
		}
	}

	extractor := service.NewExtractService()
	annotator := service.NewAnnotateService(imageStore, describer)
	chunker := service.NewChunkService(types.DocumentServiceConfig{
		MaxChunkSize: cfg.Chunk.MaxSize,
		OverlapSize:  cfg.Chunk.Overlap,
	})
	return service.NewIngestService(extractor, annotator, chunker, embedder), nil
}
