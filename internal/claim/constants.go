package claim

// Recent winners listing limits
const (
	DefaultRecentWinnersLimit = 20
	MaxRecentWinnersLimit     = 100
)

// Error Messages
const (
	ErrMsgMissingParticipant = "participant key is required"
	ErrMsgMissingCode        = "wheel code is required"
	ErrMsgConcurrentUpdate   = "claim status changed concurrently"
)

// Log Messages
const (
	LogMsgProofAttached    = "Proof of claim attached"
	LogMsgProofRejected    = "Proof of claim rejected"
	LogMsgOrphanedProof    = "Failed to remove discarded proof"
	LogMsgStatusChanged    = "Claim status changed"
	LogMsgEventPublishFail = "Failed to publish claim event"
)
