package draw

// DefaultMaxAttempts bounds commit retries after a lost stock race
const DefaultMaxAttempts = 3

// Span and attribute names
const (
	SpanResolveDraw = "draw.ResolveDraw"
	AttrWheelCode   = "wheel.code"
	AttrPrizeID     = "prize.id"
	AttrAttempts    = "draw.attempts"
	AttrOutcome     = "draw.outcome"
)

// Error Messages
const (
	ErrMsgMissingCode        = "wheel code is required"
	ErrMsgMissingParticipant = "participant key is required"
	ErrMsgCommitFailed       = "failed to commit draw"
)

// Log Messages
const (
	LogMsgDrawResolved     = "Draw resolved"
	LogMsgDrawRejected     = "Draw rejected"
	LogMsgStockRaceLost    = "Lost stock race, re-evaluating pool"
	LogMsgEventPublishFail = "Failed to publish spin event"
)
