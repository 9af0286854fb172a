package client

import "time"

const (
	DefaultTimeout    = 10 * time.Second
	DefaultMaxRetries = 3
	DefaultRetryDelay = 500 * time.Millisecond
)

// API paths
const (
	PathSession      = "/api/v1/auth/session"
	PathWheel        = "/api/v1/wheels/%s"
	PathEligibility  = "/api/v1/wheels/%s/eligibility"
	PathDraw         = "/api/v1/wheels/%s/draw"
	PathWinners      = "/api/v1/wheels/%s/winners"
	PathPendingSpins = "/api/v1/spins/pending"
	PathProof        = "/api/v1/spins/%s/proof"
)

// Headers
const (
	HeaderAPIKey         = "X-API-Key"
	HeaderAuthorization  = "Authorization"
	HeaderContentType    = "Content-Type"
	HeaderAcceptLanguage = "Accept-Language"
	ContentTypeJSON      = "application/json"
	BearerPrefix         = "Bearer "
)

// Error messages
const (
	ErrMsgMarshalBody      = "failed to marshal body"
	ErrMsgCreateRequest    = "failed to create request"
	ErrMsgDecodeResponse   = "failed to decode response"
	ErrMsgBuildUpload      = "failed to build upload"
	ErrMsgUnexpectedStatus = "API returned status"
	ErrMsgMaxRetries       = "max retries exceeded"
)

// Log messages
const (
	LogMsgRetrying      = "Retrying API request"
	LogMsgRequestFailed = "API request failed"
	LogMsgServerError   = "Server error, will retry"
)

const proofFileName = "proof"
