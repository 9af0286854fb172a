package config

const (
	StorageBackendPostgres = "postgres"
	StorageBackendMemory   = "memory"

	EnvironmentProduction = "prod"

	ErrMsgParseEnv      = "invalid environment configuration"
	ErrMsgInvalidConfig = "configuration rejected"
)
