package mailer

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/telex-integrations/mention-notifier/pkg/domain/interfaces"
	"github.com/telex-integrations/mention-notifier/pkg/domain/model"
)

const (
	exchangeTimeout = 10 * time.Second

	// Minted tokens carry no explicit expiry; assume a conservative
	// lifetime and re-mint after it elapses.
	tokenTTL = 30 * time.Minute
)

// Config holds everything the transporter needs to mint credentials and
// reach the SMTP endpoint
type Config struct {
	Addr     string // SMTP host:port
	Domain   string // HELO/EHLO name
	Username string
	Password string // static password, PLAIN auth fallback
	Insecure bool   // skip STARTTLS (local testing only)

	// OAuth2-style refresh exchange. When RefreshToken is set, each
	// transport acquisition uses a short-lived minted token instead of
	// the static password.
	TokenURL     string
	ClientID     string
	ClientSecret string
	RefreshToken string
}

// Transporter mints delivery credentials on demand and hands out
// authenticated SMTP transports. Minted tokens are cached until shortly
// before expiry; concurrent refreshes are harmless duplicates.
type Transporter struct {
	cfg        Config
	httpClient *http.Client

	mu       sync.Mutex
	token    string
	mintedAt time.Time
}

// Option configures a Transporter
type Option func(*Transporter)

// WithHTTPClient replaces the HTTP client used for the token exchange
func WithHTTPClient(c *http.Client) Option {
	return func(t *Transporter) {
		t.httpClient = c
	}
}

// New creates a Transporter
func New(cfg Config, opts ...Option) *Transporter {
	t := &Transporter{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: exchangeTimeout},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// GetTransport mints a valid credential and returns a transport bound to
// it. All failure paths are tagged credential_unavailable so callers can
// degrade to "skip sending for this cycle" instead of crashing.
func (t *Transporter) GetTransport(ctx context.Context) (interfaces.MailTransport, error) {
	auth, err := t.saslClient(ctx)
	if err != nil {
		return nil, err
	}

	return &smtpTransport{
		addr:     t.cfg.Addr,
		domain:   t.cfg.Domain,
		insecure: t.cfg.Insecure,
		auth:     auth,
	}, nil
}

func (t *Transporter) saslClient(ctx context.Context) (sasl.Client, error) {
	if t.cfg.RefreshToken != "" {
		token, err := t.mint(ctx)
		if err != nil {
			return nil, err
		}

		host, portStr, err := net.SplitHostPort(t.cfg.Addr)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid SMTP address",
				goerr.V("addr", t.cfg.Addr),
				goerr.T(model.ErrTagCredentialUnavailable))
		}
		port, _ := strconv.Atoi(portStr)

		return sasl.NewOAuthBearerClient(&sasl.OAuthBearerOptions{
			Username: t.cfg.Username,
			Token:    token,
			Host:     host,
			Port:     port,
		}), nil
	}

	if t.cfg.Password != "" {
		return sasl.NewPlainClient("", t.cfg.Username, t.cfg.Password), nil
	}

	return nil, goerr.Wrap(model.ErrCredentialUnavailable, "no credential configured",
		goerr.T(model.ErrTagCredentialUnavailable))
}

// mint exchanges the long-lived refresh secret for a short-lived access
// token, reusing a cached token while it is still fresh
func (t *Transporter) mint(ctx context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.token != "" && time.Since(t.mintedAt) < tokenTTL {
		return t.token, nil
	}

	token, err := t.exchange(ctx)
	if err != nil {
		return "", err
	}

	t.token = token
	t.mintedAt = time.Now()
	ctxlog.From(ctx).Debug("Minted new delivery token")
	return token, nil
}

func (t *Transporter) exchange(ctx context.Context) (string, error) {
	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {t.cfg.RefreshToken},
		"client_id":     {t.cfg.ClientID},
		"client_secret": {t.cfg.ClientSecret},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.cfg.TokenURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", goerr.Wrap(err, "failed to build token exchange request",
			goerr.T(model.ErrTagCredentialUnavailable))
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", goerr.Wrap(err, "token exchange request failed",
			goerr.T(model.ErrTagCredentialUnavailable))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", goerr.New("token exchange returned unexpected status",
			goerr.V("status", resp.StatusCode),
			goerr.T(model.ErrTagCredentialUnavailable))
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", goerr.Wrap(err, "failed to decode token exchange response",
			goerr.T(model.ErrTagCredentialUnavailable))
	}
	if body.Token == "" {
		return "", goerr.New("token exchange returned empty token",
			goerr.T(model.ErrTagCredentialUnavailable))
	}

	return body.Token, nil
}
