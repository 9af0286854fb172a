package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Placeholder values shipped in .env.example
const (
	examplePassword = "change_this_secure_password"
	exampleSecret   = "generate_with_openssl_rand_hex_32"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// envValidator reports field errors under their environment variable names
func envValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("env"), ",")
			return name
		})
	})
	return validate
}

// Validate checks the parsed configuration. Every problem is reported, one
// per line, named by its environment variable.
func (c *Config) Validate() error {
	err := envValidator().Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%s: %w", ErrMsgInvalidConfig, err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%s: %s", ErrMsgInvalidConfig, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	name := fe.Field()
	switch fe.Tag() {
	case "required":
		return name + " must be set"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", name, fe.Param())
		}
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", name, fe.Param(), fe.Value())
	case "ip":
		return fmt.Sprintf("%s entry %q is not an IP address", name, fe.Value())
	}
	return fmt.Sprintf("%s is invalid (%s=%s)", name, fe.Tag(), fe.Param())
}

// Warnings lists settings that are legal but almost certainly a mistake
func (c *Config) Warnings() []string {
	var warnings []string
	if c.StorageBackend == StorageBackendPostgres && c.DBPassword == examplePassword {
		warnings = append(warnings, "DB_PASSWORD is the example value; set a real password")
	}
	if c.APIKey == exampleSecret {
		warnings = append(warnings, "API_KEY is the example value; generate one with: openssl rand -hex 32")
	}
	if c.JWTSecret == exampleSecret {
		warnings = append(warnings, "JWT_SECRET is the example value; generate one with: openssl rand -hex 32")
	}
	if (c.DiscordToken == "") != (c.DiscordChannelID == "") {
		warnings = append(warnings, "DISCORD_TOKEN and DISCORD_CHANNEL_ID must both be set; win announcements stay disabled")
	}
	if c.StorageBackend == StorageBackendMemory && c.Environment == EnvironmentProduction {
		warnings = append(warnings, "STORAGE_BACKEND=memory loses every spin on restart")
	}
	return warnings
}
