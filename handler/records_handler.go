package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/reco-ai/knowledge-be/repository"
	"github.com/reco-ai/knowledge-be/types"
)

type RecordsHandler struct {
	recordRepo repository.IngestRecordRepo
}

func NewRecordsHandler(recordRepo repository.IngestRecordRepo) *RecordsHandler {
	return &RecordsHandler{
		recordRepo: recordRepo,
	}
}

func (h *RecordsHandler) HandleList() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if r.Method != http.MethodGet {
			h.sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		status := r.URL.Query().Get("status")
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		if limit <= 0 {
			limit = 50
		}
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

		records, err := h.recordRepo.ListRecords(r.Context(), status, limit, offset)
		if err != nil {
			h.sendError(w, "Failed to list records: "+err.Error(), http.StatusInternalServerError)
			return
		}

		json.NewEncoder(w).Encode(types.DataResponse{
			Status: "success",
			Data:   records,
		})
	})
}

func (h *RecordsHandler) sendError(w http.ResponseWriter, message string, status int) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(types.DataResponse{
		Status:  "error",
		Message: message,
	})
}
