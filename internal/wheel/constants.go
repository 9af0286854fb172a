package wheel

// DefaultCacheSize is used when the configured size is not positive
const DefaultCacheSize = 256

// Error Messages
const (
	ErrMsgEmptyCode   = "wheel code is required"
	ErrMsgWindowOrder = "end time is before start time"
)

// Log Messages
const (
	LogMsgWheelUpserted = "Wheel definition stored"
	LogMsgWheelPaused   = "Wheel pause switch changed"
)
