// Command devtool bundles the database, wheel and server chores used in
// development and deploys.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	registry := NewRegistry(
		migrateCommand(),
		waitForDBCommand(),
		seedCommand(),
		checkWheelsCommand(),
		healthCommand(),
		watchCommand(),
	)

	if len(os.Args) < 2 {
		registry.WriteHelp(os.Stderr)
		os.Exit(1)
	}
	cmd, ok := registry.Get(os.Args[1])
	if !ok {
		PrintError("Unknown command: %s", os.Args[1])
		registry.WriteHelp(os.Stderr)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cmd.Run(ctx, os.Args[2:])
	stop()
	if err != nil {
		PrintError("%s failed: %v", cmd.Name(), err)
		os.Exit(1)
	}
}
