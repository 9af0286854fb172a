package bootstrap

import "time"

// Log files
const (
	DirPermission     = 0o755
	LogFilePermission = 0o666

	LogFileTimestampFormat = "2006-01-02_15-04-05"
	LogFileNamePattern     = "session_%s.log"
	LogFileExtension       = ".log"
	LogFileRetentionCount  = 9 // older files kept beside the current one
)

// Event publishing defaults, used when the config leaves them zero
const (
	EventDefaultMaxRetries     = 5
	EventDefaultRetryDelay     = 2 * time.Second
	EventDefaultDeadLetterPath = "logs/event_deadletter.jsonl"
)

const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingLuckyWheel  = "Starting LuckyWheel"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
	LogMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"

	LogMsgEventSystemInitialized         = "Event system ready"
	LogMsgFailedCreateResilientPublisher = "failed to create resilient publisher"

	LogMsgUsingMemoryStore  = "Using in-memory store; data is lost on restart"
	LogMsgUsingPostgres     = "Using PostgreSQL store"
	LogMsgSyncingWheels     = "Syncing wheel definitions"
	LogMsgNoWheelDefinition = "No wheel definitions found"

	LogMsgSchedulerStarted           = "Runtime sampler scheduled"
	LogMsgMetricsCollectorRegistered = "Metrics collector subscribed"
	LogMsgSSESubscriberRegistered    = "Dashboard stream subscribed"
	LogMsgDiscordAnnouncerRegistered = "Discord announcer subscribed"
	LogMsgDiscordDisabled            = "Discord announcements disabled"

	LogMsgShuttingDownServer         = "Shutting down server"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgStoppingScheduler          = "Stopping scheduler"
	LogMsgStoppingWorkers            = "Stopping workers"
	LogMsgStoppingHub                = "Closing dashboard streams"
	LogMsgShuttingDownEventPublisher = "Draining event publisher"
	LogMsgResilientPublisherFailed   = "Event publisher shutdown failed"
	LogMsgTelemetryShutdownFailed    = "Telemetry shutdown failed"
	LogMsgClosingDatabase            = "Closing database pool"
	LogMsgServerStopped              = "Server stopped"
)

const (
	ErrMsgConnectDatabase       = "failed to connect to database"
	ErrMsgMigrateDatabase       = "failed to migrate database"
	ErrMsgUnknownBackend        = "unknown storage backend"
	ErrMsgSyncWheels            = "failed to sync wheel definitions"
	ErrMsgFailedCreateAnnouncer = "failed to create Discord announcer"
)
