package interfaces

//go:generate moq -out mocks/mailer_mock.go -pkg mocks . Transporter MailTransport

import (
	"context"

	"github.com/telex-integrations/mention-notifier/pkg/domain/model"
)

// Transporter is the credential provider: it mints a valid delivery
// credential and wraps it in a ready-to-use transport. Failure to mint a
// credential is reported as an error tagged credential_unavailable and
// must never crash a batch.
type Transporter interface {
	GetTransport(ctx context.Context) (MailTransport, error)
}

// MailTransport sends a single notification envelope. Implementations make
// exactly one delivery attempt; there is no retry policy.
type MailTransport interface {
	Send(ctx context.Context, env *model.Envelope) error
}
