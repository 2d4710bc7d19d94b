package usecase

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/telex-integrations/mention-notifier/pkg/domain/interfaces"
	"github.com/telex-integrations/mention-notifier/pkg/domain/model"
	"github.com/telex-integrations/mention-notifier/pkg/domain/types"
	"github.com/telex-integrations/mention-notifier/pkg/service/mailer"
	"github.com/telex-integrations/mention-notifier/pkg/service/mention"
	"github.com/telex-integrations/mention-notifier/pkg/utils/async"
)

const sendTimeout = 30 * time.Second

// Mode selects the resolution strategy for a deployment
type Mode string

const (
	// ModeDirect treats email-shaped mention tokens as literal recipient
	// addresses; no directory is consulted
	ModeDirect Mode = "direct"
	// ModeDirectory looks mention tokens up in the channel membership
	ModeDirectory Mode = "directory"
)

// Validate checks that the mode is one of the supported values
func (m Mode) Validate() error {
	switch m {
	case ModeDirect, ModeDirectory:
		return nil
	}
	return goerr.New("invalid resolve mode", goerr.V("mode", m))
}

// Config holds the per-deployment relay policy
type Config struct {
	Mode    Mode
	Pattern mention.Pattern
	Sender  types.EmailAddress

	// RequireMention rejects messages containing zero mention tokens
	// instead of answering with an empty successful batch
	RequireMention bool
}

// Relay is the pipeline orchestrator: extract mentions, resolve them to
// recipients, acquire a delivery credential and dispatch one notification
// per recipient with per-recipient failure isolation.
type Relay struct {
	cfg         Config
	directory   interfaces.Directory
	transporter interfaces.Transporter
}

// NewRelay creates a relay. directory may be nil in direct mode.
func NewRelay(cfg Config, directory interfaces.Directory, transporter interfaces.Transporter) *Relay {
	return &Relay{
		cfg:         cfg,
		directory:   directory,
		transporter: transporter,
	}
}

// Process runs one webhook event through the pipeline. Validation failures
// and directory outages are returned as errors; per-recipient send
// failures never are, they end up in BatchResult.Attempted.
func (r *Relay) Process(ctx context.Context, event *model.InboundEvent) (*model.BatchResult, error) {
	logger := ctxlog.From(ctx)

	if strings.TrimSpace(event.Message) == "" {
		return nil, model.ErrNoMessage
	}

	var channelID types.ChannelID
	if r.cfg.Mode == ModeDirectory {
		channelID = event.ChannelID()
		if channelID == "" {
			return nil, model.ErrNoChannel
		}
	}

	result := &model.BatchResult{
		ID:      types.NewBatchID(),
		Message: event.Message,
	}

	result.Mentions = slices.Collect(mention.Extract(r.cfg.Pattern, event.Message))
	if len(result.Mentions) == 0 {
		if r.cfg.RequireMention {
			return nil, model.ErrNoMention
		}
		logger.Debug("No mentions in message", "batchID", result.ID)
		return result, nil
	}

	recipients, err := r.resolveAll(ctx, result.Mentions, channelID)
	if err != nil {
		return nil, err
	}

	var deliverable []model.ResolvedRecipient
	for _, rcpt := range recipients {
		if rcpt.Resolved() {
			deliverable = append(deliverable, rcpt)
			result.Resolved = append(result.Resolved, rcpt.Email)
		} else {
			result.Unresolved = append(result.Unresolved, rcpt.Token)
		}
	}

	if !event.NotificationsEnabled() {
		logger.Info("Email notifications disabled by settings, skipping dispatch",
			"batchID", result.ID,
			"resolved", len(result.Resolved),
		)
		return result, nil
	}

	result.Attempted = r.dispatch(ctx, event.Message, deliverable)

	logger.Info("Batch completed",
		"batchID", result.ID,
		"mentions", len(result.Mentions),
		"resolved", len(result.Resolved),
		"unresolved", len(result.Unresolved),
		"sent", result.Succeeded(),
	)
	return result, nil
}

// dispatch sends one notification per recipient. Sends run concurrently
// and are all joined before the batch result is assembled, so every
// outcome reflects a real delivery attempt.
func (r *Relay) dispatch(ctx context.Context, message string, recipients []model.ResolvedRecipient) []model.SendOutcome {
	if len(recipients) == 0 {
		return nil
	}

	outcomes := make([]model.SendOutcome, len(recipients))
	tasks := make([]func(context.Context), len(recipients))
	for i, rcpt := range recipients {
		tasks[i] = func(ctx context.Context) {
			outcomes[i] = r.sendOne(ctx, rcpt.Email, message)
		}
	}
	async.Join(ctx, tasks...)
	return outcomes
}

func (r *Relay) sendOne(ctx context.Context, to types.EmailAddress, message string) model.SendOutcome {
	logger := ctxlog.From(ctx)

	transport, err := r.transporter.GetTransport(ctx)
	if err != nil {
		logger.Warn("No delivery credential available", "to", to, "error", err)
		return model.SendOutcome{
			Recipient: to,
			Error:     types.ErrorKindCredentialUnavailable,
		}
	}

	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	env := mailer.NewMentionEnvelope(r.cfg.Sender, to, message)
	if err := transport.Send(sendCtx, env); err != nil {
		logger.Warn("Failed to send notification", "to", to, "error", err)
		return model.SendOutcome{
			Recipient: to,
			Error:     types.ErrorKindDeliveryFailed,
		}
	}

	logger.Info("Email sent", "to", to)
	return model.SendOutcome{Recipient: to, Success: true}
}
