package config

import (
	"log/slog"

	"github.com/telex-integrations/mention-notifier/pkg/service/directory"
	"github.com/urfave/cli/v3"
)

// Directory holds the channel-membership API configuration
type Directory struct {
	APIURL string
	Token  string
}

// Flags returns CLI flags for Directory configuration
func (d *Directory) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "directory-api-url",
			Usage:       "Base URL of the channel-membership API",
			Category:    "Directory",
			Sources:     cli.EnvVars("TELEX_DIRECTORY_API_URL"),
			Destination: &d.APIURL,
		},
		&cli.StringFlag{
			Name:        "directory-token",
			Usage:       "Bearer token for the channel-membership API",
			Category:    "Directory",
			Sources:     cli.EnvVars("TELEX_DIRECTORY_TOKEN"),
			Destination: &d.Token,
		},
	}
}

// IsConfigured checks whether the directory API can be used
func (d *Directory) IsConfigured() bool {
	return d.APIURL != ""
}

// Configure creates a directory client, or nil if not configured
func (d *Directory) Configure() *directory.Client {
	if !d.IsConfigured() {
		return nil
	}
	return directory.New(d.APIURL, d.Token)
}

// LogValue returns structured log value
func (d Directory) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("apiURL", d.APIURL),
		slog.Bool("has_token", d.Token != ""),
	)
}
