package cmd

import (
	"context"
	"log"

	"github.com/reco-ai/knowledge-be/utils"
	"github.com/spf13/cobra"
)

// ingestDocumentCmd represents the ingest-document command
var ingestDocumentCmd = &cobra.Command{
	Use:   "ingest-document",
	Short: "Ingest a single document into the knowledge store",
	Run: func(cmd *cobra.Command, args []string) {
		filePath, _ := cmd.Flags().GetString("file")
		tags, _ := cmd.Flags().GetStringArray("tags")
		reset, _ := cmd.Flags().GetBool("reset")

		cfg, err := loadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		store, err := buildStore(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to knowledge store: %v", err)
		}
		if reset {
			if err := store.Reset(context.Background()); err != nil {
				log.Fatalf("Failed to reset knowledge store: %v", err)
			}
		}

		embedder := buildEmbedService(cfg)
		ingestService, err := buildIngestService(context.Background(), cfg, embedder)
		if err != nil {
			log.Fatalf("Failed to build ingestion pipeline: %v", err)
		}

		// keep a copy under the upload dir so the server can serve it later
		destPath, err := utils.CopyFileWithTimestamp(filePath, cfg.UploadDir)
		if err != nil {
			log.Fatalf("Failed to copy document to upload dir: %v", err)
		}

		result, err := ingestService.Ingest(context.Background(), destPath)
		if err != nil {
			log.Fatalf("Failed to ingest document: %v", err)
		}
		for i := range result.Units {
			result.Units[i].Metadata.Tags = tags
		}
		if err := store.Insert(context.Background(), result.Units); err != nil {
			log.Fatalf("Failed to insert knowledge units: %v", err)
		}
		log.Printf("Ingested %s: %d units (%d chunks, %d images)", destPath, len(result.Units), result.Chunks, result.Images)
	},
}

func init() {
	rootCmd.AddCommand(ingestDocumentCmd)

	ingestDocumentCmd.Flags().StringP("file", "f", "", "Path to the document to ingest")
	ingestDocumentCmd.Flags().StringArrayP("tags", "g", []string{}, "Tags for the document")
	ingestDocumentCmd.Flags().BoolP("reset", "r", false, "Reset the knowledge store before ingesting")
	ingestDocumentCmd.MarkFlagRequired("file")
}
