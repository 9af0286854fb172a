//go:build tools
// +build tools

package tools

// Build-time tools pinned in go.mod: the linter, the goose CLI for hand-run
// migrations and swag for regenerating the API docs.
import (
	_ "github.com/golangci/golangci-lint/cmd/golangci-lint"
	_ "github.com/pressly/goose/v3/cmd/goose"
	_ "github.com/swaggo/swag/cmd/swag"
)
