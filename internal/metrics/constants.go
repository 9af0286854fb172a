package metrics

// Namespace prefixes the draw and claim collectors, e.g. wheel_draws_total
const Namespace = "wheel"

const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelType    = "type"
	LabelOutcome = "outcome"
	LabelWheel   = "wheel"
	LabelPrize   = "prize"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}

// UnmatchedRoute labels requests no route claimed, keeping 404 scans out of
// the path label
const UnmatchedRoute = "unmatched"

const LogMsgPayloadUndecoded = "Event payload could not be decoded for metrics"
