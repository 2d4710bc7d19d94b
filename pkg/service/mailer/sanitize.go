package mailer

import "regexp"

var tagRe = regexp.MustCompile(`<[^>]*>`)

// Sanitize strips markup tags from message text before it is embedded in a
// notification body. The operation is idempotent: sanitizing already
// sanitized text returns it unchanged.
func Sanitize(text string) string {
	return tagRe.ReplaceAllString(text, "")
}
