package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/longregen/pipegen/internal/adapters/http/dto"
	"github.com/longregen/pipegen/internal/adapters/session"
	"github.com/longregen/pipegen/internal/application/services"
	"github.com/longregen/pipegen/internal/config"
	"github.com/longregen/pipegen/internal/domain"
	"github.com/longregen/pipegen/internal/domain/models"
	"github.com/longregen/pipegen/internal/llm"
	"github.com/longregen/pipegen/internal/ports"
)

// PipelineHandler serves generation and test requests. Each generation binds
// a fresh model client so the request can select a model; everything else is
// shared.
type PipelineHandler struct {
	cfg     *config.Config
	store   ports.SessionStore
	opt     *services.OptimizationService
	persist *services.PersistenceService

	// newClient builds a model client for the given model name, falling back
	// to the configured default when empty. Swappable in tests.
	newClient func(model string) ports.ModelClient
}

func NewPipelineHandler(cfg *config.Config, store ports.SessionStore, opt *services.OptimizationService, persist *services.PersistenceService) *PipelineHandler {
	return &PipelineHandler{
		cfg:     cfg,
		store:   store,
		opt:     opt,
		persist: persist,
		newClient: func(model string) ports.ModelClient {
			if model == "" {
				model = cfg.Model.Name
			}
			return llm.NewClient(cfg.Model.BaseURL, model, cfg.Model.MaxTokens, cfg.Model.Temperature)
		},
	}
}

// Generate handles POST /api/generate-pipeline: build, optimize, persist and
// register a session.
func (h *PipelineHandler) Generate(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJSON[dto.GeneratePipelineRequest](r, w)
	if !ok {
		return
	}

	task, err := models.NewTaskSpec(req.TaskDescription, req.InputType, req.OutputType)
	if err != nil {
		respondError(w, "invalid_request", err.Error(), http.StatusBadRequest)
		return
	}

	examples := make([]models.Example, 0, len(req.Examples))
	for _, ex := range req.Examples {
		examples = append(examples, models.Example{
			Input:          ex.Input,
			ExpectedOutput: ex.Output,
			Description:    ex.Description,
		})
	}
	if len(examples) == 0 {
		respondError(w, "invalid_request", "at least one example is required", http.StatusBadRequest)
		return
	}

	client := h.newClient(req.OllamaModel)
	gen := services.NewGenerationService(client)

	out, err := gen.Generate(r.Context(), task, examples)
	if err != nil {
		if errors.Is(err, domain.ErrModelUnavailable) {
			respondErrorWithSuggestion(w, "model_unavailable", err.Error(),
				"Start the model service with 'ollama serve' and pull the model with 'ollama pull "+client.Model()+"'",
				http.StatusInternalServerError)
			return
		}
		respondError(w, "invalid_request", err.Error(), http.StatusBadRequest)
		return
	}

	result := h.opt.Optimize(r.Context(), out, examples)

	syntheticPrompt, err := gen.RenderSyntheticPrompt(task)
	if err != nil {
		log.Printf("Failed to render synthetic prompt: %v", err)
	}

	files := h.persistArtifacts(out, result, task, examples, syntheticPrompt)

	sess := &models.Session{
		ID:           session.NewID(time.Now()),
		Task:         task,
		Examples:     examples,
		PipelineCode: out.PipelineCode,
		Pipeline:     result.Pipeline,
		Runner:       result.Runner,
		CreatedAt:    time.Now(),
	}
	h.store.Put(sess)

	respondJSON(w, dto.GeneratePipelineResponse{
		SessionID:           sess.ID,
		PipelineCode:        out.PipelineCode,
		OptimizationSuccess: result.Optimized,
		OptimizationMessage: result.Reason,
		SyntheticPrompt:     syntheticPrompt,
		FilesGenerated:      files,
	}, http.StatusOK)
}

// persistArtifacts writes each artifact, logging failures instead of failing
// the request. Returns the filenames that were actually written.
func (h *PipelineHandler) persistArtifacts(out *services.GenerationOutput, result services.OptimizationResult, task models.TaskSpec, examples []models.Example, syntheticPrompt string) []string {
	files := make([]string, 0, 4)

	if err := h.persist.SavePipelineCode(out.PipelineCode); err != nil {
		log.Printf("Failed to save pipeline code: %v", err)
	} else {
		files = append(files, services.PipelineCodeFile)
	}

	if err := h.persist.SaveTaskConfig(task, examples); err != nil {
		log.Printf("Failed to save task config: %v", err)
	} else {
		files = append(files, services.TaskConfigFile)
	}

	if syntheticPrompt != "" {
		if err := h.persist.SaveSyntheticPrompt(syntheticPrompt); err != nil {
			log.Printf("Failed to save synthetic prompt: %v", err)
		} else {
			files = append(files, services.SyntheticPromptFile)
		}
	}

	if result.Optimized {
		if err := h.persist.SavePipeline(result.Pipeline, services.OptimizedFile); err != nil {
			log.Printf("Failed to save optimized pipeline: %v", err)
		} else {
			files = append(files, services.OptimizedFile)
		}
	}

	return files
}

// Test handles POST /api/test-pipeline: run one inference through a stored
// session's pipeline.
func (h *PipelineHandler) Test(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJSON[dto.TestPipelineRequest](r, w)
	if !ok {
		return
	}

	if req.TestInput == "" {
		respondError(w, "invalid_request", "testInput is required", http.StatusBadRequest)
		return
	}

	// An unknown or expired session is a client error, not a missing
	// resource: session IDs only come from a prior generate response.
	sess, found := h.store.Get(req.SessionID)
	if req.SessionID == "" || !found {
		respondError(w, "invalid_session", "Invalid session ID", http.StatusBadRequest)
		return
	}

	output, err := sess.Runner.Run(r.Context(), req.TestInput)
	if err != nil {
		respondError(w, "inference_failed", err.Error(), http.StatusInternalServerError)
		return
	}

	respondJSON(w, dto.TestPipelineResponse{
		SessionID: sess.ID,
		Input:     req.TestInput,
		Output:    output,
		Optimized: sess.Optimized(),
	}, http.StatusOK)
}
