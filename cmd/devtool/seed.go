package main

import (
	"context"

	"github.com/osse101/LuckyWheel_Go/internal/bootstrap"
	"github.com/osse101/LuckyWheel_Go/internal/database"
	"github.com/osse101/LuckyWheel_Go/internal/wheel"
)

// seed runs the same sync as server startup, for deploys that keep the
// server's WHEELS_DIR empty
func seedCommand() Command {
	return command{
		name:  "seed",
		usage: "Upsert wheel definitions into the database [dir]",
		run: func(ctx context.Context, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			dir := cfg.WheelsDir
			if len(args) > 0 {
				dir = args[0]
			}

			pool, err := openPool(ctx, cfg)
			if err != nil {
				return err
			}
			defer pool.Close()
			if err := database.Migrate(ctx, pool); err != nil {
				return err
			}

			repos := bootstrap.NewPostgresRepositories(pool)
			svc := wheel.NewService(repos.Wheel, cfg.WheelCacheSize, cfg.WheelCacheTTL)
			if err := bootstrap.SyncWheels(ctx, dir, svc); err != nil {
				return err
			}
			PrintSuccess("Seeded wheels from %s", dir)
			return nil
		},
	}
}
