package types

// ErrorKind classifies a pipeline failure for reporting in the webhook
// response and in logs
type ErrorKind string

const (
	// ErrorKindNone means the operation succeeded
	ErrorKindNone ErrorKind = ""
	// ErrorKindValidation is a user-correctable request problem
	ErrorKindValidation ErrorKind = "validation"
	// ErrorKindNoMention means the message contained no mention token
	ErrorKindNoMention ErrorKind = "no_mention"
	// ErrorKindDirectoryUnavailable means the membership lookup failed
	ErrorKindDirectoryUnavailable ErrorKind = "directory_unavailable"
	// ErrorKindCredentialUnavailable means no delivery credential could be minted
	ErrorKindCredentialUnavailable ErrorKind = "credential_unavailable"
	// ErrorKindDeliveryFailed means the mail transport rejected the send
	ErrorKindDeliveryFailed ErrorKind = "delivery_failed"
)

// String returns the string representation
func (k ErrorKind) String() string {
	return string(k)
}
