package handler

import (
	"encoding/json"
	"net/http"

	"github.com/reco-ai/knowledge-be/service"
	"github.com/reco-ai/knowledge-be/types"
)

type RetrieveHandler struct {
	retrieveService *service.RetrieveService
}

func NewRetrieveHandler(retrieveService *service.RetrieveService) *RetrieveHandler {
	return &RetrieveHandler{
		retrieveService: retrieveService,
	}
}

func (h *RetrieveHandler) HandleRetrieve() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if r.Method != http.MethodPost {
			h.sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req types.RetrieveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.sendError(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.Query == "" {
			h.sendError(w, "Missing query", http.StatusBadRequest)
			return
		}

		results, err := h.retrieveService.Retrieve(r.Context(), req.Query, req.TopN)
		if err != nil {
			h.sendError(w, "Retrieve failed: "+err.Error(), http.StatusInternalServerError)
			return
		}

		json.NewEncoder(w).Encode(types.DataResponse{
			Status: "success",
			Data: types.RetrieveResponse{
				Query:   req.Query,
				Results: results,
			},
		})
	})
}

func (h *RetrieveHandler) sendError(w http.ResponseWriter, message string, status int) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(types.DataResponse{
		Status:  "error",
		Message: message,
	})
}
