package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/longregen/pipegen/internal/adapters/http/handlers"
	"github.com/longregen/pipegen/internal/adapters/http/middleware"
	"github.com/longregen/pipegen/internal/application/services"
	"github.com/longregen/pipegen/internal/config"
	"github.com/longregen/pipegen/internal/ports"
)

type Server struct {
	config     *config.Config
	router     *chi.Mux
	httpServer *http.Server

	client  ports.ModelClient
	store   ports.SessionStore
	opt     *services.OptimizationService
	persist *services.PersistenceService
}

func NewServer(
	cfg *config.Config,
	client ports.ModelClient,
	store ports.SessionStore,
	opt *services.OptimizationService,
	persist *services.PersistenceService,
) *Server {
	s := &Server{
		config:  cfg,
		client:  client,
		store:   store,
		opt:     opt,
		persist: persist,
	}

	s.setupRouter()
	return s
}

func (s *Server) setupRouter() {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recovery)
	r.Use(middleware.CORS(s.config.Server.CORSOrigins))
	r.Use(middleware.Metrics)

	healthHandler := handlers.NewHealthHandler(s.client)
	r.Get("/health", healthHandler.HandleLiveness)
	r.Handle("/metrics", promhttp.Handler())

	pipelineHandler := handlers.NewPipelineHandler(s.config, s.store, s.opt, s.persist)
	downloadHandler := handlers.NewDownloadHandler(s.persist)

	r.Route("/api", func(r chi.Router) {
		r.Post("/generate-pipeline", pipelineHandler.Generate)
		r.Post("/test-pipeline", pipelineHandler.Test)
		r.Get("/download/{filename}", downloadHandler.Handle)
		r.Get("/health", healthHandler.Handle)
	})

	s.router = r
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		// Generation waits on the model service; no write timeout.
		WriteTimeout: 0,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Starting HTTP server on %s", addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	log.Println("Shutting down HTTP server...")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) Router() *chi.Mux {
	return s.router
}
