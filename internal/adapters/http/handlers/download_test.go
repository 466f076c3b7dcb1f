package handlers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/longregen/pipegen/internal/application/services"
)

func downloadRouter(persist *services.PersistenceService) *chi.Mux {
	h := NewDownloadHandler(persist)
	r := chi.NewRouter()
	r.Get("/api/download/{filename}", h.Handle)
	return r
}

func TestDownload_RejectsUnknownFilename(t *testing.T) {
	router := downloadRouter(services.NewPersistenceService(t.TempDir()))

	for _, name := range []string{
		"secrets.txt",
		"generated_pipeline.go.bak",
		"config.json",
	} {
		req := httptest.NewRequest("GET", "/api/download/"+name, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Errorf("%s: expected status 400, got %d", name, rr.Code)
		}
	}
}

func TestDownload_MissingArtifact(t *testing.T) {
	router := downloadRouter(services.NewPersistenceService(t.TempDir()))

	req := httptest.NewRequest("GET", "/api/download/task_config.json", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rr.Code)
	}
}

func TestDownload_ServesArtifact(t *testing.T) {
	dir := t.TempDir()
	content := `{"task_info": {}}`
	if err := os.WriteFile(filepath.Join(dir, services.TaskConfigFile), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write artifact: %v", err)
	}

	router := downloadRouter(services.NewPersistenceService(dir))

	req := httptest.NewRequest("GET", "/api/download/task_config.json", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if rr.Body.String() != content {
		t.Errorf("expected body %q, got %q", content, rr.Body.String())
	}
	if cd := rr.Header().Get("Content-Disposition"); cd != "attachment; filename=task_config.json" {
		t.Errorf("unexpected Content-Disposition: %q", cd)
	}
}
