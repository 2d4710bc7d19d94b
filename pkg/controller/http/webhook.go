package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/telex-integrations/mention-notifier/pkg/domain/model"
	"github.com/telex-integrations/mention-notifier/pkg/usecase"
	"github.com/telex-integrations/mention-notifier/pkg/utils/apperr"
)

// sampleMessage drives the GET self-test variant of the webhook route
const sampleMessage = "hello @alice@example.com boy"

// WebhookHandler handles the webhook target routes
type WebhookHandler struct {
	relay    *usecase.Relay
	selfTest *usecase.Relay
}

// NewWebhookHandler creates a webhook handler. relay processes real
// platform events; selfTest is a direct/email-mode relay used by the GET
// route to verify the deployment end to end.
func NewWebhookHandler(relay, selfTest *usecase.Relay) *WebhookHandler {
	return &WebhookHandler{
		relay:    relay,
		selfTest: selfTest,
	}
}

// HandlePost handles a "message posted" webhook delivery
func (h *WebhookHandler) HandlePost(w http.ResponseWriter, r *http.Request) {
	var event model.InboundEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		ctxlog.From(r.Context()).Warn("Failed to decode webhook body", "error", err)
		respondJSON(w, r, http.StatusBadRequest, map[string]string{
			"message": "No message received",
		})
		return
	}

	h.process(w, r, h.relay, &event)
}

// HandleGet runs the pipeline over a fixed sample message so a deployment
// can be smoke-tested from a browser
func (h *WebhookHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	h.process(w, r, h.selfTest, &model.InboundEvent{Message: sampleMessage})
}

func (h *WebhookHandler) process(w http.ResponseWriter, r *http.Request, uc *usecase.Relay, event *model.InboundEvent) {
	ctx := r.Context()

	result, err := uc.Process(ctx, event)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNoMessage):
			respondJSON(w, r, http.StatusBadRequest, map[string]string{
				"message": "No message received",
			})
		case goerr.HasTag(err, model.ErrTagValidation), goerr.HasTag(err, model.ErrTagNoMention):
			respondJSON(w, r, http.StatusBadRequest, map[string]string{
				"message": err.Error(),
			})
		default:
			apperr.Handle(ctx, err)
			respondJSON(w, r, http.StatusInternalServerError, map[string]string{
				"status":  "error",
				"message": "Failed to process mentions",
			})
		}
		return
	}

	respondJSON(w, r, http.StatusOK, newWebhookResponse(result))
}

// webhookResponse is the envelope returned to the platform. Status and
// message are always present; the batch never fails the webhook call once
// processing started.
type webhookResponse struct {
	Status     string              `json:"status"`
	Message    string              `json:"message"`
	From       string              `json:"from"`
	At         []string            `json:"at"`
	Resolved   []string            `json:"resolved"`
	Unresolved []string            `json:"unresolved"`
	Attempted  []model.SendOutcome `json:"attempted"`
}

func newWebhookResponse(result *model.BatchResult) *webhookResponse {
	resp := &webhookResponse{
		Status:     "success",
		Message:    "Processed mentions successfully",
		From:       result.Message,
		At:         make([]string, 0, len(result.Mentions)),
		Resolved:   make([]string, 0, len(result.Resolved)),
		Unresolved: make([]string, 0, len(result.Unresolved)),
		Attempted:  result.Attempted,
	}
	if resp.Attempted == nil {
		resp.Attempted = []model.SendOutcome{}
	}
	for _, m := range result.Mentions {
		resp.At = append(resp.At, m.String())
	}
	for _, a := range result.Resolved {
		resp.Resolved = append(resp.Resolved, a.String())
	}
	for _, t := range result.Unresolved {
		resp.Unresolved = append(resp.Unresolved, t.String())
	}
	return resp
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode response", "error", err)
	}
}
