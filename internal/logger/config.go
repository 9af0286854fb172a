package logger

import (
	"log/slog"
	"strings"
)

// Accepted Config.Format values
const (
	FormatJSON = "json"
	FormatText = "text"
)

// EnvironmentProduction masks participant keys in log output
const EnvironmentProduction = "prod"

// Attribute keys shared by every log line
const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "environment"
	AttrKeyRequestID   = "request_id"
	AttrKeyParticipant = "participant"
)

// Config selects the handler and the attributes stamped on every record
type Config struct {
	Level       string // debug, info, warn (or warning), error
	Format      string // json or text
	ServiceName string
	Version     string
	Environment string
	AddSource   bool
}

func NewConfig(level, format, serviceName, version, environment string, addSource bool) Config {
	return Config{
		Level:       level,
		Format:      format,
		ServiceName: serviceName,
		Version:     version,
		Environment: environment,
		AddSource:   addSource,
	}
}

// LogLevel parses Level, falling back to info for anything unrecognised
func (c Config) LogLevel() slog.Level {
	name := strings.ToLower(strings.TrimSpace(c.Level))
	if name == "warning" {
		name = "warn"
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func (c Config) IsJSON() bool {
	return strings.EqualFold(c.Format, FormatJSON)
}

// MaskParticipants reports whether participant emails are shortened in logs
func (c Config) MaskParticipants() bool {
	return c.Environment == EnvironmentProduction
}

func (c Config) baseAttributes() []slog.Attr {
	var attrs []slog.Attr
	for _, a := range []slog.Attr{
		slog.String(AttrKeyService, c.ServiceName),
		slog.String(AttrKeyVersion, c.Version),
		slog.String(AttrKeyEnvironment, c.Environment),
	} {
		if a.Value.String() != "" {
			attrs = append(attrs, a)
		}
	}
	return attrs
}

// MaskEmail keeps the first rune of the local part and the domain:
// "alice@example.com" becomes "a***@example.com".
func MaskEmail(key string) string {
	local, domain, ok := strings.Cut(key, "@")
	if !ok || local == "" {
		return "***"
	}
	first := []rune(local)[0]
	return string(first) + "***@" + domain
}

func maskParticipant(_ []string, a slog.Attr) slog.Attr {
	if a.Key == AttrKeyParticipant || a.Key == "participant_key" {
		return slog.String(a.Key, MaskEmail(a.Value.String()))
	}
	return a
}
