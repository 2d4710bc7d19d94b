package config

import (
	"log/slog"

	"github.com/urfave/cli/v3"
)

// Server holds server configuration
type Server struct {
	Addr    string
	BaseURL string
}

// Flags returns CLI flags for Server configuration
func (s *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Value:       "localhost:3200",
			Sources:     cli.EnvVars("TELEX_ADDR"),
			Destination: &s.Addr,
		},
		&cli.StringFlag{
			Name:        "base-url",
			Usage:       "Public base URL used in the integration manifest (if not set, derived from request headers)",
			Sources:     cli.EnvVars("TELEX_BASE_URL"),
			Destination: &s.BaseURL,
		},
	}
}

// LogValue returns structured log value
func (s Server) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("addr", s.Addr),
		slog.String("baseURL", s.BaseURL),
	)
}
