package mailer

import (
	"bytes"
	"context"
	"crypto/tls"
	"io"
	"net"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/m-mizutani/goerr/v2"
	"github.com/telex-integrations/mention-notifier/pkg/domain/model"
	"github.com/telex-integrations/mention-notifier/pkg/domain/types"
)

// Subject is the fixed notification subject line
const Subject = "You were mentioned in a Telex channel"

// NewMentionEnvelope builds the fixed-template notification for one
// recipient. The message text is sanitized before it is embedded.
func NewMentionEnvelope(from, to types.EmailAddress, message string) *model.Envelope {
	return &model.Envelope{
		From:    from,
		To:      to,
		Subject: Subject,
		Text:    "Message: " + Sanitize(message),
	}
}

// smtpTransport performs a single delivery attempt over SMTP using a
// credential minted by the Transporter
type smtpTransport struct {
	addr     string
	domain   string
	insecure bool
	auth     sasl.Client
}

// Send delivers one envelope. Exactly one attempt is made; any failure is
// returned tagged delivery_failed and the caller records it as a failed
// outcome without aborting sibling sends.
func (t *smtpTransport) Send(ctx context.Context, env *model.Envelope) error {
	msg, err := encodeEnvelope(env)
	if err != nil {
		return goerr.Wrap(err, "failed to encode envelope",
			goerr.V("to", env.To),
			goerr.T(model.ErrTagDeliveryFailed))
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", t.addr)
	if err != nil {
		return goerr.Wrap(err, "failed to dial SMTP server",
			goerr.V("addr", t.addr),
			goerr.T(model.ErrTagDeliveryFailed))
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c := smtp.NewClient(conn)
	defer c.Close()

	if t.domain != "" {
		if err := c.Hello(t.domain); err != nil {
			return goerr.Wrap(err, "SMTP HELO failed",
				goerr.T(model.ErrTagDeliveryFailed))
		}
	}

	if !t.insecure {
		host, _, splitErr := net.SplitHostPort(t.addr)
		if splitErr != nil {
			host = t.addr
		}
		if err := c.StartTLS(&tls.Config{ServerName: host}); err != nil {
			return goerr.Wrap(err, "SMTP STARTTLS failed",
				goerr.T(model.ErrTagDeliveryFailed))
		}
	}

	if t.auth != nil {
		if err := c.Auth(t.auth); err != nil {
			return goerr.Wrap(err, "SMTP authentication failed",
				goerr.T(model.ErrTagDeliveryFailed))
		}
	}

	if err := c.SendMail(env.From.String(), []string{env.To.String()}, bytes.NewReader(msg)); err != nil {
		return goerr.Wrap(err, "SMTP send failed",
			goerr.V("to", env.To),
			goerr.T(model.ErrTagDeliveryFailed))
	}

	if err := c.Quit(); err != nil {
		return goerr.Wrap(err, "SMTP QUIT failed",
			goerr.T(model.ErrTagDeliveryFailed))
	}
	return nil
}

// encodeEnvelope renders the envelope as an RFC 5322 message
func encodeEnvelope(env *model.Envelope) ([]byte, error) {
	var b bytes.Buffer

	var h mail.Header
	h.SetDate(time.Now())
	h.SetAddressList("From", []*mail.Address{{Address: env.From.String()}})
	h.SetAddressList("To", []*mail.Address{{Address: env.To.String()}})
	h.SetSubject(env.Subject)

	w, err := mail.CreateSingleInlineWriter(&b, h)
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(w, env.Text); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}
