package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
	"github.com/telex-integrations/mention-notifier/pkg/usecase"
)

// Server represents the HTTP server
type Server struct {
	*http.Server
	router chi.Router
}

// NewServer creates the HTTP server exposing the webhook target, the
// integration manifest and a health check. selfTest backs the GET variant
// of the webhook route; it runs the direct pipeline over a fixed sample.
func NewServer(
	ctx context.Context,
	addr string,
	baseURL string,
	relayUC *usecase.Relay,
	selfTestUC *usecase.Relay,
) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(CORS)
	router.Use(middleware.Recoverer)

	webhook := NewWebhookHandler(relayUC, selfTestUC)
	manifest := NewIntegrationHandler(baseURL)

	router.Get("/", handleHome)
	router.Get("/health", handleHealth)
	router.Get("/integration.json", manifest.HandleGet)
	router.Route("/telex-target", func(r chi.Router) {
		r.Post("/", webhook.HandlePost)
		r.Get("/", webhook.HandleGet)
	})

	return &Server{
		Server: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
		router: router,
	}
}

// handleHome handles the root path
func handleHome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("Hello World!")); err != nil {
		ctxlog.From(r.Context()).Error("Failed to write home response", "error", err)
	}
}

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "mention-notifier",
	}); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode health response", "error", err)
	}
}
