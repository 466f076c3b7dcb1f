package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httpadapter "github.com/longregen/pipegen/internal/adapters/http"
	"github.com/longregen/pipegen/internal/adapters/session"
	"github.com/longregen/pipegen/internal/adapters/tracing"
	"github.com/longregen/pipegen/internal/application/services"
)

// serveCmd starts the HTTP API server
func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the pipegen HTTP API server.

Endpoints:
  POST /api/generate-pipeline   generate and optimize a pipeline
  POST /api/test-pipeline       run inference through a session's pipeline
  GET  /api/download/{filename} download a generated artifact
  GET  /api/health              service and model-service status

Requires a running Ollama model service (OLLAMA_BASE_URL, OLLAMA_MODEL).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

// runServer initializes and starts the HTTP API server
func runServer(ctx context.Context) error {
	log.Println("Starting pipegen API server...")
	log.Printf("  HTTP:   http://%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("  Model:  %s @ %s", cfg.Model.Name, cfg.Model.BaseURL)
	log.Printf("  Output: %s", cfg.Output.Dir)
	log.Println()

	log.Println("Initializing OpenTelemetry tracing...")
	shutdown, err := tracing.InitTracer("pipegen-api")
	if err != nil {
		log.Printf("Warning: Failed to initialize tracing: %v", err)
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				log.Printf("Error shutting down tracer: %v", err)
			}
		}()
		log.Println("OpenTelemetry tracing initialized")
	}

	// A dead model service is reported by /api/health rather than blocking
	// startup.
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	if err := llmClient.Ping(pingCtx); err != nil {
		log.Printf("Warning: model service unreachable: %v", err)
	}
	cancel()

	store := session.NewStore(time.Duration(cfg.Server.SessionTTL)*time.Minute, cfg.Server.MaxSessions)
	defer store.Close()

	server := httpadapter.NewServer(
		cfg,
		llmClient,
		store,
		services.NewOptimizationService(),
		services.NewPersistenceService(cfg.Output.Dir),
	)

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		log.Printf("Received %v, shutting down...", sig)
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	return server.Stop(shutdownCtx)
}
