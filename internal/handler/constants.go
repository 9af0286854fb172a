package handler

// Route and query parameters
const (
	URLParamCode    = "code"
	URLParamID      = "id"
	QueryParamLimit = "limit"
	FormFieldProof  = "proof"
)

// MaxProofFormMemory is the multipart memory budget; larger parts spill to disk
const MaxProofFormMemory = 8 << 20

// Log messages
const (
	LogMsgReadinessFailed = "Readiness check failed"
	LogMsgSessionIssued   = "Participant session issued"
	LogMsgDrawCompleted   = "Draw completed"
	LogMsgEncodeFailed    = "Failed to encode JSON response"
	LogMsgWriteFailed     = "Failed to write response"
	LogMsgDecodeFailed    = "Failed to decode request body"
	LogMsgUpsertRequested = "Wheel upsert requested"
)
