package config

import (
	"log/slog"

	"github.com/telex-integrations/mention-notifier/pkg/service/mention"
	"github.com/telex-integrations/mention-notifier/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// Resolver holds the mention-resolution policy for this deployment
type Resolver struct {
	Mode           string
	Pattern        string
	RequireMention bool
}

// Flags returns CLI flags for Resolver configuration
func (r *Resolver) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "resolve-mode",
			Usage:       "Mention resolution strategy (direct, directory)",
			Category:    "Resolver",
			Value:       string(usecase.ModeDirect),
			Sources:     cli.EnvVars("TELEX_RESOLVE_MODE"),
			Destination: &r.Mode,
		},
		&cli.StringFlag{
			Name:        "mention-pattern",
			Usage:       "Mention matching pattern (loose, email; default depends on resolve-mode)",
			Category:    "Resolver",
			Sources:     cli.EnvVars("TELEX_MENTION_PATTERN"),
			Destination: &r.Pattern,
		},
		&cli.BoolFlag{
			Name:        "require-mention",
			Usage:       "Reject messages containing no mention instead of answering with an empty batch",
			Category:    "Resolver",
			Sources:     cli.EnvVars("TELEX_REQUIRE_MENTION"),
			Destination: &r.RequireMention,
		},
	}
}

// ResolveMode returns the typed mode
func (r *Resolver) ResolveMode() usecase.Mode {
	return usecase.Mode(r.Mode)
}

// MentionPattern returns the typed pattern. When unset, direct mode
// defaults to email-shaped matching and directory mode to loose handles.
func (r *Resolver) MentionPattern() mention.Pattern {
	if r.Pattern != "" {
		return mention.Pattern(r.Pattern)
	}
	if r.ResolveMode() == usecase.ModeDirectory {
		return mention.PatternLoose
	}
	return mention.PatternEmail
}

// Validate checks mode and pattern values
func (r *Resolver) Validate() error {
	if err := r.ResolveMode().Validate(); err != nil {
		return err
	}
	return r.MentionPattern().Validate()
}

// LogValue returns structured log value
func (r Resolver) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("mode", string(r.ResolveMode())),
		slog.String("pattern", string(r.MentionPattern())),
		slog.Bool("requireMention", r.RequireMention),
	)
}
