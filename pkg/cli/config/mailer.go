package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/telex-integrations/mention-notifier/pkg/service/mailer"
	"github.com/urfave/cli/v3"
)

// Mailer holds mail transport and credential configuration
type Mailer struct {
	Sender   string
	SMTPAddr string
	Domain   string
	Username string
	Password string
	Insecure bool

	TokenURL     string
	ClientID     string
	ClientSecret string
	RefreshToken string
}

// Flags returns CLI flags for Mailer configuration
func (m *Mailer) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sender",
			Usage:       "Sender email address for notifications",
			Category:    "Mailer",
			Sources:     cli.EnvVars("TELEX_EMAIL_SENDER"),
			Destination: &m.Sender,
		},
		&cli.StringFlag{
			Name:        "smtp-addr",
			Usage:       "SMTP server address (host:port)",
			Category:    "Mailer",
			Value:       "smtp.gmail.com:587",
			Sources:     cli.EnvVars("TELEX_SMTP_ADDR"),
			Destination: &m.SMTPAddr,
		},
		&cli.StringFlag{
			Name:        "smtp-domain",
			Usage:       "HELO domain announced to the SMTP server",
			Category:    "Mailer",
			Sources:     cli.EnvVars("TELEX_SMTP_DOMAIN"),
			Destination: &m.Domain,
		},
		&cli.StringFlag{
			Name:        "smtp-username",
			Usage:       "SMTP account username",
			Category:    "Mailer",
			Sources:     cli.EnvVars("TELEX_SMTP_USERNAME"),
			Destination: &m.Username,
		},
		&cli.StringFlag{
			Name:        "smtp-password",
			Usage:       "Static SMTP password (PLAIN auth; used when no refresh token is configured)",
			Category:    "Mailer",
			Sources:     cli.EnvVars("TELEX_SMTP_PASSWORD"),
			Destination: &m.Password,
		},
		&cli.BoolFlag{
			Name:        "smtp-insecure",
			Usage:       "Skip STARTTLS (local testing only)",
			Category:    "Mailer",
			Sources:     cli.EnvVars("TELEX_SMTP_INSECURE"),
			Destination: &m.Insecure,
		},
		&cli.StringFlag{
			Name:        "token-url",
			Usage:       "OAuth2 token endpoint for the refresh-token exchange",
			Category:    "Mailer",
			Sources:     cli.EnvVars("TELEX_TOKEN_URL"),
			Destination: &m.TokenURL,
		},
		&cli.StringFlag{
			Name:        "client-id",
			Usage:       "OAuth2 client ID",
			Category:    "Mailer",
			Sources:     cli.EnvVars("TELEX_CLIENT_ID"),
			Destination: &m.ClientID,
		},
		&cli.StringFlag{
			Name:        "client-secret",
			Usage:       "OAuth2 client secret",
			Category:    "Mailer",
			Sources:     cli.EnvVars("TELEX_CLIENT_SECRET"),
			Destination: &m.ClientSecret,
		},
		&cli.StringFlag{
			Name:        "refresh-token",
			Usage:       "Long-lived refresh token minted into short-lived delivery credentials",
			Category:    "Mailer",
			Sources:     cli.EnvVars("TELEX_REFRESH_TOKEN"),
			Destination: &m.RefreshToken,
		},
	}
}

// Validate checks that at least one credential path is configured
func (m *Mailer) Validate() error {
	if m.Sender == "" {
		return goerr.New("sender address is required (TELEX_EMAIL_SENDER)")
	}
	if m.RefreshToken == "" && m.Password == "" {
		return goerr.New("either a refresh token or a static SMTP password is required")
	}
	if m.RefreshToken != "" && m.TokenURL == "" {
		return goerr.New("token-url is required when a refresh token is configured")
	}
	return nil
}

// Configure creates the SMTP transporter
func (m *Mailer) Configure() *mailer.Transporter {
	return mailer.New(mailer.Config{
		Addr:         m.SMTPAddr,
		Domain:       m.Domain,
		Username:     m.Username,
		Password:     m.Password,
		Insecure:     m.Insecure,
		TokenURL:     m.TokenURL,
		ClientID:     m.ClientID,
		ClientSecret: m.ClientSecret,
		RefreshToken: m.RefreshToken,
	})
}

// LogValue returns structured log value
func (m Mailer) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("sender", m.Sender),
		slog.String("smtpAddr", m.SMTPAddr),
		slog.Bool("has_password", m.Password != ""),
		slog.Bool("has_refresh_token", m.RefreshToken != ""),
		slog.Bool("insecure", m.Insecure),
	)
}
