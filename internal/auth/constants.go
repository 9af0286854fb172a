package auth

import "time"

const (
	MinSecretLength = 32
	DefaultTokenTTL = 7 * 24 * time.Hour
)

const (
	HeaderAuthorization = "Authorization"
	BearerPrefix        = "Bearer "
)

// Error Messages
const (
	ErrMsgSecretTooShort = "token secret is too short"
	ErrMsgMissingKey     = "participant key is required"
	ErrMsgMissingToken   = "missing bearer token"
	ErrMsgTokenExpired   = "token expired"
	ErrMsgBadSignature   = "token signature is invalid"
)

const LogMsgTokenRejected = "Participant token rejected"
