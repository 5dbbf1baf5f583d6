package handler

import (
	"net/http"
	"path/filepath"
	"strings"
)

// DocumentHandler serves previously uploaded source files back to the
// transport layer (e.g. to show the document a result came from).
type DocumentHandler struct {
	uploadDir string
}

func NewDocumentHandler(uploadDir string) *DocumentHandler {
	return &DocumentHandler{
		uploadDir: uploadDir,
	}
}

func (h *DocumentHandler) ServeDocument() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		name := r.URL.Query().Get("file")
		if name == "" {
			http.Error(w, "Missing file parameter", http.StatusBadRequest)
			return
		}
		// Refuse anything that escapes the upload directory
		if strings.Contains(name, "..") || filepath.Base(name) != name {
			http.Error(w, "Invalid file name", http.StatusBadRequest)
			return
		}

		http.ServeFile(w, r, filepath.Join(h.uploadDir, name))
	})
}
