package model

import "github.com/m-mizutani/goerr/v2"

// Error tags classify pipeline failures; the HTTP layer maps them to
// response codes
var (
	ErrTagValidation            = goerr.NewTag("validation")
	ErrTagNoMention             = goerr.NewTag("no_mention")
	ErrTagDirectoryUnavailable  = goerr.NewTag("directory_unavailable")
	ErrTagCredentialUnavailable = goerr.NewTag("credential_unavailable")
	ErrTagDeliveryFailed        = goerr.NewTag("delivery_failed")
)

// Sentinel errors for the relay pipeline
var (
	ErrNoMessage             = goerr.New("no message received", goerr.T(ErrTagValidation))
	ErrNoChannel             = goerr.New("no channel configured in settings", goerr.T(ErrTagValidation))
	ErrNoMention             = goerr.New("no mention found in message", goerr.T(ErrTagNoMention))
	ErrDirectoryUnavailable  = goerr.New("directory unavailable", goerr.T(ErrTagDirectoryUnavailable))
	ErrCredentialUnavailable = goerr.New("mail credential unavailable", goerr.T(ErrTagCredentialUnavailable))
)
