package database

// Pool settings
const (
	DefaultMinConnections int32 = 2
	SessionTimeZone             = "UTC"
	ApplicationName             = "lucky-wheel"
)

// Migration settings
const (
	MigrationsDir     = "migrations"
	MigrationsDialect = "postgres"
)

const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
	ErrMsgFailedToMigrate         = "failed to apply migrations"
)

const (
	LogMsgSuccessfullyConnectedToDatabase = "Connected to database"
	LogMsgConnectionOpened                = "Database connection opened"
	LogMsgMigrationsApplied               = "Database migrations applied"
)
