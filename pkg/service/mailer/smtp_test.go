package mailer_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/emersion/go-smtp"
	"github.com/m-mizutani/gt"
	"github.com/telex-integrations/mention-notifier/pkg/service/mailer"
)

type capturedMail struct {
	From string
	To   []string
	Raw  []byte
}

type testBackend struct {
	mu       sync.Mutex
	mails    []capturedMail
	username string
	password string
}

func (b *testBackend) NewSession(_ *smtp.Conn) (smtp.Session, error) {
	return &testSession{backend: b}, nil
}

func (b *testBackend) captured() []capturedMail {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]capturedMail(nil), b.mails...)
}

type testSession struct {
	backend       *testBackend
	from          string
	to            []string
	authenticated bool
}

func (s *testSession) AuthPlain(username, password string) error {
	if username == s.backend.username && password == s.backend.password {
		s.authenticated = true
		return nil
	}
	return errors.New("invalid credentials")
}

func (s *testSession) Mail(from string, _ *smtp.MailOptions) error {
	if !s.authenticated {
		return smtp.ErrAuthRequired
	}
	s.from = from
	return nil
}

func (s *testSession) Rcpt(to string, _ *smtp.RcptOptions) error {
	s.to = append(s.to, to)
	return nil
}

func (s *testSession) Data(r io.Reader) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.backend.mu.Lock()
	s.backend.mails = append(s.backend.mails, capturedMail{
		From: s.from,
		To:   s.to,
		Raw:  raw,
	})
	s.backend.mu.Unlock()
	return nil
}

func (s *testSession) Reset() {
	s.from = ""
	s.to = nil
}

func (s *testSession) Logout() error {
	return nil
}

func startSMTPServer(t *testing.T, backend *testBackend) string {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	gt.NoError(t, err)

	server := smtp.NewServer(backend)
	server.Domain = "localhost"
	server.AllowInsecureAuth = true
	server.ReadTimeout = 5 * time.Second
	server.WriteTimeout = 5 * time.Second

	go func() {
		_ = server.Serve(ln)
	}()
	t.Cleanup(func() {
		_ = server.Close()
	})

	return ln.Addr().String()
}

func TestSMTPTransportSend(t *testing.T) {
	backend := &testBackend{username: "notifier", password: "secret"}
	addr := startSMTPServer(t, backend)

	tr := mailer.New(mailer.Config{
		Addr:     addr,
		Domain:   "notifier.example.com",
		Username: "notifier",
		Password: "secret",
		Insecure: true,
	})

	transport, err := tr.GetTransport(context.Background())
	gt.NoError(t, err)

	env := mailer.NewMentionEnvelope("noreply@example.com", "bob@co.com", "hi <b>@bob</b>")
	gt.NoError(t, transport.Send(context.Background(), env))

	mails := backend.captured()
	gt.Equal(t, len(mails), 1)
	gt.Equal(t, mails[0].From, "noreply@example.com")
	gt.Equal(t, mails[0].To, []string{"bob@co.com"})

	reader, err := mail.CreateReader(bytes.NewReader(mails[0].Raw))
	gt.NoError(t, err)

	subject, err := reader.Header.Subject()
	gt.NoError(t, err)
	gt.Equal(t, subject, "You were mentioned in a Telex channel")

	part, err := reader.NextPart()
	gt.NoError(t, err)
	body, err := io.ReadAll(part.Body)
	gt.NoError(t, err)
	gt.Equal(t, strings.TrimSpace(string(body)), "Message: hi @bob")
}

func TestSMTPTransportAuthFailure(t *testing.T) {
	backend := &testBackend{username: "notifier", password: "secret"}
	addr := startSMTPServer(t, backend)

	tr := mailer.New(mailer.Config{
		Addr:     addr,
		Username: "notifier",
		Password: "wrong",
		Insecure: true,
	})

	transport, err := tr.GetTransport(context.Background())
	gt.NoError(t, err)

	env := mailer.NewMentionEnvelope("noreply@example.com", "bob@co.com", "hello")
	gt.Error(t, transport.Send(context.Background(), env))
	gt.Equal(t, len(backend.captured()), 0)
}
