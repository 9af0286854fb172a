package server

import "time"

// HTTP error messages for middleware responses
const (
	ErrMsgUnauthorized    = "Unauthorized"
	ErrMsgTooManyRequests = "Too Many Requests"
)

// Security alert message templates
const (
	SecurityAlertFailedAuth = "Security alert: repeated host key failures"
	SecurityAlertHighRate   = "Security alert: blocking high request rate"
)

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting   = "Server starting"
	LogMsgRequestStarted   = "Request started"
	LogMsgRequestCompleted = "Request completed"
	LogMsgRequestHeaders   = "Request headers"
	LogMsgAuthFailed       = "Authentication failed"
)

// HTTP header names
const (
	HeaderAPIKey         = "X-API-Key"
	HeaderAuthorization  = "Authorization"
	HeaderForwardedFor   = "X-Forwarded-For"
	HeaderRetryAfter     = "Retry-After"
	HeaderContentType    = "X-Content-Type-Options"
	HeaderFrameOptions   = "X-Frame-Options"
	HeaderXSSProtection  = "X-XSS-Protection"
	HeaderReferrerPolicy = "Referrer-Policy"
)

// Security header values
const (
	HeaderValueNoSniff              = "nosniff"
	HeaderValueSameOrigin           = "SAMEORIGIN"
	HeaderValueXSSBlock             = "1; mode=block"
	HeaderValueReferrerStrictOrigin = "strict-origin-when-cross-origin"
)

// Request body limits
const (
	MaxJSONBodyBytes         = 1 << 20
	ProofEnvelopeBytes       = 64 << 10
	DefaultProofRequestBytes = 10 << 20
)

// Rate limiting
const (
	FailedAuthAlertThreshold = 5
	DefaultRequestLimit      = 1000
	RateLogEvery             = 100
	RateWindow               = 5 * time.Minute
)

// RedactedValue replaces credentials in logged headers
const RedactedValue = "[REDACTED]"

// quietPaths are probed constantly and never logged
var quietPaths = []string{"/healthz", "/readyz", "/metrics"}
