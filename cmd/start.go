package cmd

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/reco-ai/knowledge-be/database"
	"github.com/reco-ai/knowledge-be/handler"
	"github.com/reco-ai/knowledge-be/repository"
	"github.com/reco-ai/knowledge-be/service"
	"github.com/spf13/cobra"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the knowledge base HTTP server",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		if err := os.MkdirAll(cfg.UploadDir, 0755); err != nil {
			log.Fatalf("Failed to create upload directory: %v", err)
		}

		ctx := context.Background()

		store, err := buildStore(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to knowledge store: %v", err)
		}

		var recordRepo repository.IngestRecordRepo
		if cfg.MongoURI != "" {
			mongoClient, err := database.NewMongoClient(ctx, cfg.MongoURI)
			if err != nil {
				log.Fatalf("Failed to connect to MongoDB: %v", err)
			}
			defer mongoClient.Disconnect(ctx)
			recordRepo = repository.NewIngestRecordRepo(mongoClient.Database("knowledge"))
		} else {
			log.Println("MongoDB URI not set, ingest records disabled")
		}

		embedder := buildEmbedService(cfg)
		ingestService, err := buildIngestService(ctx, cfg, embedder)
		if err != nil {
			log.Fatalf("Failed to build ingestion pipeline: %v", err)
		}
		reranker := service.NewRerankService(cfg.Rerank, cfg.Mock)
		retrieveService := service.NewRetrieveService(embedder, store, reranker, cfg.SearchTopN)
		progress := service.NewWebSocketService()

		ingestHandler := handler.NewIngestHandler(cfg.UploadDir, ingestService, store, recordRepo, progress)
		retrieveHandler := handler.NewRetrieveHandler(retrieveService)
		documentHandler := handler.NewDocumentHandler(cfg.UploadDir)
		cors := handler.NewCorsHandler()

		mux := http.NewServeMux()
		mux.Handle("/api/v1/ingest", ingestHandler.HandleIngest())
		mux.Handle("/api/v1/retrieve", retrieveHandler.HandleRetrieve())
		mux.Handle("/api/v1/document", documentHandler.ServeDocument())
		if recordRepo != nil {
			recordsHandler := handler.NewRecordsHandler(recordRepo)
			mux.Handle("/api/v1/records", recordsHandler.HandleList())
		}
		mux.HandleFunc("/ws/progress", progress.HandleProgress)
		mux.Handle("/healthz", progress.Health())

		addr := ":" + cfg.Port
		log.Printf("Starting server on %s (mock=%v)", addr, cfg.Mock)
		if err := http.ListenAndServe(addr, cors.Wrap(mux)); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
