package types

import (
	"strings"

	"github.com/google/uuid"
)

// ChannelID represents a Telex channel identifier
type ChannelID string

// String returns the string representation
func (id ChannelID) String() string {
	return string(id)
}

// EmailAddress represents a recipient email address
type EmailAddress string

// String returns the string representation
func (a EmailAddress) String() string {
	return string(a)
}

// MentionToken is a raw mention as it appeared in the message text,
// including the leading "@"
type MentionToken string

// String returns the string representation
func (t MentionToken) String() string {
	return string(t)
}

// Bare returns the token without its leading "@". Only the first "@" is
// stripped so email-shaped tokens keep their address intact.
func (t MentionToken) Bare() string {
	return strings.TrimPrefix(string(t), "@")
}

// BatchID identifies one webhook-triggered notification batch
type BatchID string

// String returns the string representation
func (id BatchID) String() string {
	return string(id)
}

// NewBatchID creates a new BatchID
func NewBatchID() BatchID {
	return BatchID(uuid.New().String())
}
