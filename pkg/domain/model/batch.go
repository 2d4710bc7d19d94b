package model

import "github.com/telex-integrations/mention-notifier/pkg/domain/types"

// ResolvedRecipient pairs a mention token with its resolution result. An
// empty Email means the token did not resolve and must be skipped.
type ResolvedRecipient struct {
	Token types.MentionToken
	Email types.EmailAddress
}

// Resolved reports whether the token resolved to a deliverable address
func (r ResolvedRecipient) Resolved() bool {
	return r.Email != ""
}

// SendOutcome records the result of one notification attempt
type SendOutcome struct {
	Recipient types.EmailAddress `json:"recipient"`
	Success   bool               `json:"success"`
	Error     types.ErrorKind    `json:"error,omitempty"`
}

// BatchResult summarizes all notification attempts triggered by one
// webhook event. It is returned to the caller regardless of individual
// send failures.
type BatchResult struct {
	ID         types.BatchID
	Message    string
	Mentions   []types.MentionToken
	Resolved   []types.EmailAddress
	Unresolved []types.MentionToken
	Attempted  []SendOutcome
}

// Succeeded counts successful sends
func (b *BatchResult) Succeeded() int {
	var n int
	for _, o := range b.Attempted {
		if o.Success {
			n++
		}
	}
	return n
}
