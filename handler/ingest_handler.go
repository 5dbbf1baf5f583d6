package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"path/filepath"

	"github.com/reco-ai/knowledge-be/database"
	"github.com/reco-ai/knowledge-be/repository"
	"github.com/reco-ai/knowledge-be/service"
	"github.com/reco-ai/knowledge-be/types"
	"github.com/reco-ai/knowledge-be/utils"
)

const maxUploadSize = 50 << 20 // 50MB

type IngestHandler struct {
	uploadDir     string
	ingestService *service.IngestService
	store         database.KnowledgeStore
	recordRepo    repository.IngestRecordRepo
	progress      *service.WebSocketService
}

func NewIngestHandler(
	uploadDir string,
	ingestService *service.IngestService,
	store database.KnowledgeStore,
	recordRepo repository.IngestRecordRepo,
	progress *service.WebSocketService,
) *IngestHandler {
	return &IngestHandler{
		uploadDir:     uploadDir,
		ingestService: ingestService,
		store:         store,
		recordRepo:    recordRepo,
		progress:      progress,
	}
}

func (h *IngestHandler) HandleIngest() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if r.Method != http.MethodPost {
			h.sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			h.sendError(w, "Invalid file", http.StatusBadRequest)
			return
		}
		file.Close()
		if header.Size > maxUploadSize {
			h.sendError(w, "File too large", http.StatusBadRequest)
			return
		}

		destPath, err := utils.SaveUploadedFile(header, h.uploadDir)
		if err != nil {
			h.sendError(w, "Failed to store upload: "+err.Error(), http.StatusInternalServerError)
			return
		}

		// optional metadata fields alongside the file part
		meta := types.IngestRequest{
			Title: r.FormValue("title"),
			Tags:  r.Form["tags"],
		}

		recordID := ""
		if h.recordRepo != nil {
			recordID, err = h.recordRepo.CreateRecord(r.Context(), &types.IngestRecord{
				Source: header.Filename,
				Status: types.IngestStatusProcessing,
			})
			if err != nil {
				log.Printf("Failed to create ingest record: %v", err)
			}
		}

		h.notify(types.ProcessingDocumentStatus{
			Status:  types.IngestStatusProcessing,
			Message: "Processing document",
			Source:  header.Filename,
		})

		result, err := h.ingestService.Ingest(r.Context(), destPath)
		if err == nil && len(result.Units) > 0 {
			for i := range result.Units {
				if meta.Title != "" {
					result.Units[i].Metadata.Title = meta.Title
				}
				result.Units[i].Metadata.Tags = meta.Tags
			}
			err = h.store.Insert(r.Context(), result.Units)
		}
		if err != nil {
			h.finishRecord(r, recordID, types.IngestStatusFailed, result)
			h.notify(types.ProcessingDocumentStatus{
				Status:  types.IngestStatusFailed,
				Message: err.Error(),
				Source:  header.Filename,
			})
			h.sendError(w, err.Error(), http.StatusInternalServerError)
			return
		}

		h.finishRecord(r, recordID, types.IngestStatusCompleted, result)
		h.notify(types.ProcessingDocumentStatus{
			Status:   types.IngestStatusCompleted,
			Message:  "Done processing document",
			Source:   header.Filename,
			Progress: 1,
		})

		json.NewEncoder(w).Encode(types.DataResponse{
			Status: "success",
			Data: types.IngestResponse{
				OriginalName: filepath.Base(header.Filename),
				Chunks:       result.Chunks,
				Images:       result.Images,
			},
		})
	})
}

func (h *IngestHandler) finishRecord(r *http.Request, recordID, status string, result *service.IngestResult) {
	if h.recordRepo == nil || recordID == "" {
		return
	}
	chunks, images := 0, 0
	if result != nil {
		chunks, images = result.Chunks, result.Images
	}
	if err := h.recordRepo.UpdateRecord(r.Context(), recordID, status, chunks, images); err != nil {
		log.Printf("Failed to update ingest record: %v", err)
	}
}

func (h *IngestHandler) notify(status types.ProcessingDocumentStatus) {
	if h.progress != nil {
		h.progress.Broadcast(status)
	}
}

func (h *IngestHandler) sendError(w http.ResponseWriter, message string, status int) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(types.DataResponse{
		Status:  "error",
		Message: message,
	})
}
