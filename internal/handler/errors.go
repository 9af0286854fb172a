package handler

// Client-facing messages for malformed requests. Service failures go through
// the translator instead.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	ErrMsgInvalidLimit     = "Invalid limit parameter"
	ErrMsgInvalidSpinID    = "Invalid spin ID"
	ErrMsgMissingProofFile = "Missing proof file"
	ErrMsgProofNotFound    = "Proof not found"
)

const (
	OpGetWheel       = "Get wheel"
	OpEligibility    = "Check eligibility"
	OpDraw           = "Draw"
	OpRecentWinners  = "List recent winners"
	OpListPending    = "List pending spins"
	OpSubmitProof    = "Submit proof"
	OpSetClaimStatus = "Set claim status"
	OpGetProof       = "Get proof"
	OpUpsertWheel    = "Upsert wheel"
	OpPauseWheel     = "Pause wheel"
	OpCreateSession  = "Create session"
)
