package model

import "github.com/telex-integrations/mention-notifier/pkg/domain/types"

// Envelope is the notification handed to the mail transport
type Envelope struct {
	From    types.EmailAddress
	To      types.EmailAddress
	Subject string
	Text    string
}
