package model

import "strings"

// Member is a channel member fetched from the directory service. The core
// never owns this data; it is read-only and fetched per resolution.
type Member struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Username    string `json:"username"`
}

// Matches reports whether the bare mention token identifies this member.
// Comparison is case-sensitive against the trimmed display name, username
// and email address.
func (m *Member) Matches(bare string) bool {
	if bare == "" {
		return false
	}
	return strings.TrimSpace(m.DisplayName) == bare ||
		strings.TrimSpace(m.Username) == bare ||
		strings.TrimSpace(m.Email) == bare
}
