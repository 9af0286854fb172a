package wheelconfig

// DefaultsFile holds the shared prize structure
const DefaultsFile = "default.yaml"

// Error Messages
const (
	ErrMsgReadDir   = "failed to read wheels directory"
	ErrMsgParseFile = "failed to load wheel file"
	ErrMsgSeedWheel = "failed to seed wheel"
)

// Log Messages
const (
	LogMsgWheelsSeeded = "Wheel definitions seeded"
)
