package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/longregen/pipegen/internal/adapters/http/dto"
	"github.com/longregen/pipegen/internal/ports"
)

// HealthCheckConfig holds configuration for health checks
type HealthCheckConfig struct {
	Timeout time.Duration
}

// DefaultHealthCheckConfig returns default health check configuration
func DefaultHealthCheckConfig() HealthCheckConfig {
	return HealthCheckConfig{
		Timeout: 5 * time.Second,
	}
}

type HealthHandler struct {
	config HealthCheckConfig
	client ports.ModelClient
}

func NewHealthHandler(client ports.ModelClient) *HealthHandler {
	return &HealthHandler{
		config: DefaultHealthCheckConfig(),
		client: client,
	}
}

// Handle serves GET /api/health: reports the bound model configuration and
// whether the model service answers a reachability probe. A dead model
// service degrades the report, it does not fail the endpoint.
func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	resp := dto.HealthResponse{
		Status:       "ok",
		Model:        h.client.Model(),
		BaseURL:      h.client.BaseURL(),
		ModelService: "reachable",
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.config.Timeout)
	defer cancel()

	if err := h.client.Ping(ctx); err != nil {
		resp.Status = "degraded"
		resp.ModelService = "unreachable"
	}

	respondJSON(w, resp, http.StatusOK)
}

// HandleLiveness serves GET /health for load balancers: process-up only, no
// dependency probes.
func (h *HealthHandler) HandleLiveness(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}
