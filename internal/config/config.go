package config

import (
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the server configuration, read from the environment
type Config struct {
	Port        int    `env:"PORT" envDefault:"8080" validate:"gte=0,lte=65535"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`
	LogDir      string `env:"LOG_DIR" envDefault:"logs"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"lucky-wheel"`
	Version     string `env:"VERSION" envDefault:"dev"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`

	// APIKey guards the host routes and the session exchange.
	APIKey         string   `env:"API_KEY" validate:"required"`
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:"," validate:"dive,ip"`

	// StorageBackend is "postgres" or "memory".
	StorageBackend string        `env:"STORAGE_BACKEND" envDefault:"postgres" validate:"oneof=postgres memory"`
	DBUser         string        `env:"DB_USER" envDefault:"postgres"`
	DBPassword     string        `env:"DB_PASSWORD" envDefault:"postgres"`
	DBHost         string        `env:"DB_HOST" envDefault:"localhost"`
	DBPort         string        `env:"DB_PORT" envDefault:"5432"`
	DBName         string        `env:"DB_NAME" envDefault:"luckywheel"`
	DBMaxConns     int           `env:"DB_MAX_CONNS" envDefault:"20" validate:"gte=1"`
	DBMaxConnIdle  time.Duration `env:"DB_MAX_CONN_IDLE" envDefault:"5m"`
	DBMaxConnLife  time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`

	JWTSecret string        `env:"JWT_SECRET" validate:"min=32"`
	JWTIssuer string        `env:"JWT_ISSUER" envDefault:"lucky-wheel"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"168h" validate:"gt=0"`

	WheelsDir          string        `env:"WHEELS_DIR" envDefault:"configs/wheels"`
	WheelCacheSize     int           `env:"WHEEL_CACHE_SIZE" envDefault:"256" validate:"gte=1"`
	WheelCacheTTL      time.Duration `env:"WHEEL_CACHE_TTL" envDefault:"30s"`
	DrawMaxAttempts    int           `env:"DRAW_MAX_ATTEMPTS" envDefault:"3" validate:"gte=1"`
	RecentWinnersLimit int           `env:"RECENT_WINNERS_LIMIT" envDefault:"20" validate:"gte=1"`

	ProofDir      string `env:"PROOF_DIR" envDefault:"data/proofs"`
	ProofMaxBytes int64  `env:"PROOF_MAX_BYTES" envDefault:"5242880" validate:"gt=0"`

	DiscordToken     string `env:"DISCORD_TOKEN"`
	DiscordChannelID string `env:"DISCORD_CHANNEL_ID"`
	WorkerCount      int    `env:"WORKER_COUNT" envDefault:"2" validate:"gte=1"`
	WorkerQueueSize  int    `env:"WORKER_QUEUE_SIZE" envDefault:"100" validate:"gte=1"`

	// MetricsSampleInterval is how often runtime gauges are refreshed; 0 disables it
	MetricsSampleInterval time.Duration `env:"METRICS_SAMPLE_INTERVAL" envDefault:"15s" validate:"gte=0"`

	EventMaxRetries     int           `env:"EVENT_MAX_RETRIES" envDefault:"5" validate:"gte=0"`
	EventRetryDelay     time.Duration `env:"EVENT_RETRY_DELAY" envDefault:"2s"`
	EventDeadLetterPath string        `env:"EVENT_DEADLETTER_PATH" envDefault:"logs/event_deadletter.jsonl"`

	OTelEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// Load reads the environment, after a .env file if one exists, and
// validates the result.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgParseEnv, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// GetDBConnString returns the PostgreSQL URL. Credentials are escaped, so
// passwords may contain '@' or '/'.
func (c *Config) GetDBConnString() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// DiscordEnabled reports whether host announcements are configured.
func (c *Config) DiscordEnabled() bool {
	return c.DiscordToken != "" && c.DiscordChannelID != ""
}
