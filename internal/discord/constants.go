package discord

// Embed colors
const (
	ColorWin    = 0x2ecc71 // Green
	ColorProof  = 0x3498db // Blue
	ColorStatus = 0xf1c40f // Yellow
)

const (
	ErrMsgSendFailed       = "failed to send Discord message"
	ErrMsgInvalidChannelID = "invalid Discord channel ID"
)

// Log Messages
const (
	LogMsgUndecodableEvent = "Skipping announcement for undecodable event"
	LogMsgQueueFull        = "Announcement queue full, dropping message"
)
