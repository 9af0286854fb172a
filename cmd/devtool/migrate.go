package main

import (
	"context"
	"fmt"

	"github.com/osse101/LuckyWheel_Go/internal/database"
)

func migrateCommand() Command {
	return command{
		name:  "migrate",
		usage: "Apply, roll back or report schema migrations <up|down|status>",
		run:   runMigrate,
	}
}

func runMigrate(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("expected one of up, down, status")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	PrintInfo("Connecting to %s", redactPassword(cfg.GetDBConnString()))
	pool, err := openPool(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	switch args[0] {
	case "up":
		err = database.Migrate(ctx, pool)
	case "down":
		if !confirm("Roll back the latest migration?") {
			PrintWarning("Aborted")
			return nil
		}
		err = database.MigrateDown(ctx, pool)
	case "status":
	default:
		return fmt.Errorf("unknown migrate action %q", args[0])
	}
	if err != nil {
		return err
	}

	version, err := database.MigrationVersion(ctx, pool)
	if err != nil {
		return err
	}
	PrintSuccess("Schema at version %d", version)
	return nil
}
