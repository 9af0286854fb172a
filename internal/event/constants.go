package event

import "time"

const (
	EventSchemaVersion   = "1.0"
	MetadataKeyWheelCode = "wheel_code"
)

// RetryQueueBufferSize bounds events waiting for a retry; overflow goes
// straight to the dead letter
const RetryQueueBufferSize = 1000

const (
	DeadLetterFilePermissions = 0o644
	DeadLetterDirPermissions  = 0o755
)

const (
	LogMsgEventPublishFailed    = "Event publish failed, queuing for retry"
	LogMsgRetryQueueFull        = "Retry queue full, event dead-lettered"
	LogMsgDeadLetterWriteFailed = "Failed to write to dead letter"
	LogMsgEventRetryExhausted   = "Event retries exhausted"
	LogMsgEventRetryFailed      = "Event retry failed, scheduling next attempt"
	LogMsgEventRetrySucceeded   = "Event retry succeeded"
	LogMsgEventDroppedShutdown  = "Event dropped during shutdown"
	LogMsgQueueDrainedShutdown  = "Drained retry queue during shutdown"
	LogMsgShutdownTimeout       = "Resilient publisher shutdown timed out"
	LogMsgEventDeadLettered     = "Event dead-lettered"

	ErrMsgHandlersFailed = "%d handler(s) failed for %s: %w"
)

// CalculateRetryDelay doubles baseDelay per attempt: 2s, 4s, 8s for a 2s base.
func CalculateRetryDelay(baseDelay time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		return baseDelay
	}
	return baseDelay << (attempt - 1)
}
