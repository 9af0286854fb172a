package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/osse101/LuckyWheel_Go/internal/wheelconfig"
)

// SyncWheels loads the YAML wheel definitions under dir and upserts them.
// A missing directory is not an error; hosts may manage wheels over the API.
func SyncWheels(ctx context.Context, dir string, wheels wheelconfig.Upserter) error {
	slog.Info(LogMsgSyncingWheels, "dir", dir)
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		slog.Info(LogMsgNoWheelDefinition, "dir", dir)
		return nil
	}

	if _, err := wheelconfig.Seed(ctx, wheelconfig.NewLoader(dir), wheels); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgSyncWheels, err)
	}
	return nil
}
