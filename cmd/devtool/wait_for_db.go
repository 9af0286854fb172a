package main

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	waitMaxRetries    = 30
	waitRetryInterval = 2 * time.Second
)

func waitForDBCommand() Command {
	return command{
		name:  "wait-for-db",
		usage: "Block until the database accepts connections",
		run:   runWaitForDB,
	}
}

func runWaitForDB(ctx context.Context, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	PrintHeader("Waiting for database")

	attempt := 0
	ping := func() error {
		attempt++
		attemptCtx, cancel := context.WithTimeout(ctx, waitRetryInterval)
		defer cancel()
		// NewPool pings before returning
		pool, err := openPool(attemptCtx, cfg)
		if err != nil {
			return err
		}
		pool.Close()
		return nil
	}
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(waitRetryInterval), waitMaxRetries-1), ctx)
	notify := func(err error, _ time.Duration) {
		fmt.Printf("Database not ready (%d/%d): %v\n", attempt, waitMaxRetries, err)
	}

	if err := backoff.RetryNotify(ping, policy, notify); err != nil {
		return fmt.Errorf("database not ready after %d attempts: %w", attempt, err)
	}
	PrintSuccess("Database is ready")
	return nil
}
