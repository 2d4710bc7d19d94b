package mention

import (
	"iter"
	"regexp"

	"github.com/m-mizutani/goerr/v2"
	"github.com/telex-integrations/mention-notifier/pkg/domain/types"
)

// Pattern selects how mention tokens are matched in message text. The two
// patterns are mutually exclusive per deployment.
type Pattern string

const (
	// PatternLoose matches "@" followed by word characters, e.g. "@daniel"
	PatternLoose Pattern = "loose"
	// PatternEmail matches "@"-delimited address-shaped text,
	// e.g. "@alice@example.com"
	PatternEmail Pattern = "email"
)

var (
	looseRe = regexp.MustCompile(`@\w+`)
	emailRe = regexp.MustCompile(`@[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

	// addressRe validates a bare (no leading "@") address shape
	addressRe = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
)

// Validate checks that the pattern is one of the supported values
func (p Pattern) Validate() error {
	switch p {
	case PatternLoose, PatternEmail:
		return nil
	}
	return goerr.New("invalid mention pattern", goerr.V("pattern", p))
}

func (p Pattern) regexp() *regexp.Regexp {
	if p == PatternEmail {
		return emailRe
	}
	return looseRe
}

// Extract scans message text for mention tokens. The returned sequence is
// lazy and restartable; iterating it again rescans the message. Order of
// appearance is preserved and duplicates are not collapsed: mentioning the
// same user twice yields two tokens.
func Extract(p Pattern, message string) iter.Seq[types.MentionToken] {
	re := p.regexp()
	return func(yield func(types.MentionToken) bool) {
		rest := message
		for {
			loc := re.FindStringIndex(rest)
			if loc == nil {
				return
			}
			if !yield(types.MentionToken(rest[loc[0]:loc[1]])) {
				return
			}
			rest = rest[loc[1]:]
		}
	}
}

// IsEmailShaped reports whether s (without a leading "@") looks like an
// email address. No verification that the address exists is performed.
func IsEmailShaped(s string) bool {
	return addressRe.MatchString(s)
}
