package handlers

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/longregen/pipegen/internal/application/services"
)

// DownloadHandler serves generated artifact files. Only the four known
// artifact names are served; anything else is rejected before touching the
// filesystem.
type DownloadHandler struct {
	persist *services.PersistenceService
}

func NewDownloadHandler(persist *services.PersistenceService) *DownloadHandler {
	return &DownloadHandler{persist: persist}
}

// Handle serves GET /api/download/{filename}.
func (h *DownloadHandler) Handle(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	if !services.IsAllowedArtifact(filename) {
		respondError(w, "invalid_request", "File not available for download: "+filename, http.StatusBadRequest)
		return
	}

	path := h.persist.Path(filename)
	if _, err := os.Stat(path); err != nil {
		respondError(w, "not_found", "File has not been generated yet: "+filename, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	http.ServeFile(w, r, path)
}
