package http

import (
	"net/http"

	"github.com/telex-integrations/mention-notifier/pkg/domain/model"
)

// IntegrationHandler serves the static self-description manifest the
// platform reads at registration time
type IntegrationHandler struct {
	baseURL string
}

// NewIntegrationHandler creates a manifest handler. When baseURL is empty
// the public URL is derived from each request's headers.
func NewIntegrationHandler(baseURL string) *IntegrationHandler {
	return &IntegrationHandler{baseURL: baseURL}
}

// HandleGet serves the integration manifest
func (h *IntegrationHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	baseURL := h.baseURL
	if baseURL == "" {
		baseURL = requestBaseURL(r)
	}
	respondJSON(w, r, http.StatusOK, model.NewIntegration(baseURL))
}

// requestBaseURL reconstructs the externally visible base URL from request
// headers, honoring the proxy-set forwarded protocol
func requestBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + r.Host
}
