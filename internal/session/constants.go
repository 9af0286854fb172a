package session

import "time"

const (
	// DefaultWinBannerDelay is how long the win banner shows before the claim
	// screen takes over.
	DefaultWinBannerDelay = 2 * time.Second
)

// Error messages
const (
	ErrMsgInvalidTransition = "invalid session transition"
	ErrMsgDrawInFlight      = "a draw is already in flight"
	ErrMsgUploadInFlight    = "a proof upload is already in flight"
	ErrMsgBusy              = "session is loading"
	ErrMsgNotAuthenticated  = "session is not authenticated"
	ErrMsgNoWheel           = "no wheel selected"
	ErrMsgNilBackend        = "session backend is required"
)

// Log messages
const (
	LogMsgTransition        = "Session transition"
	LogMsgReconcileFailed   = "Pending claims reconciliation failed"
	LogMsgReconciled        = "Pending claims reconciled"
	LogMsgDrawFailed        = "Draw failed, rotation cancelled"
	LogMsgRotationMismatch  = "Wheel changed during draw, rotation not reconciled"
	LogMsgProofSubmitFailed = "Proof submission failed, claim left pending"
)
