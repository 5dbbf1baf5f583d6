package cmd

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// batchIngestCmd represents the batch-ingest command
var batchIngestCmd = &cobra.Command{
	Use:   "batch-ingest",
	Short: "Ingest every document in a directory",
	Run: func(cmd *cobra.Command, args []string) {
		directory, _ := cmd.Flags().GetString("directory")
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

		files, err := os.ReadDir(directory)
		if err != nil {
			log.Fatalf("Failed to read directory: %v", err)
		}
		for _, file := range files {
			if file.IsDir() {
				continue
			}
			filePath := filepath.Join(directory, file.Name())
			result, err := ingestService.Ingest(context.Background(), filePath)
			if err != nil {
				log.Printf("Failed to ingest document %s: %v", filePath, err)
				continue
			}
			for i := range result.Units {
				result.Units[i].Metadata.Tags = tags
			}
			if err := store.Insert(context.Background(), result.Units); err != nil {
				log.Printf("Failed to insert units for %s: %v", filePath, err)
				continue
			}
			log.Printf("Ingested %s: %d units (%d chunks, %d images)", filePath, len(result.Units), result.Chunks, result.Images)
		}
	},
}

func init() {
	rootCmd.AddCommand(batchIngestCmd)

	batchIngestCmd.Flags().String("directory", "", "Path to the directory to ingest")
	batchIngestCmd.Flags().StringArrayP("tags", "g", []string{}, "Tags for the documents")
	batchIngestCmd.Flags().BoolP("reset", "r", false, "Reset the knowledge store before ingesting")
	batchIngestCmd.MarkFlagRequired("directory")
}
