package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/LuckyWheel_Go/internal/event"
	"github.com/osse101/LuckyWheel_Go/internal/scheduler"
	"github.com/osse101/LuckyWheel_Go/internal/server"
	"github.com/osse101/LuckyWheel_Go/internal/sse"
	"github.com/osse101/LuckyWheel_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Any field may be nil.
type ShutdownComponents struct {
	Server             *server.Server
	Hub                *sse.Hub
	Scheduler          *scheduler.Scheduler
	Pool               *worker.Pool
	ResilientPublisher *event.ResilientPublisher
	Repositories       *Repositories
	Telemetry          func(context.Context) error
}

// GracefulShutdown stops components in order:
// 1. HTTP server (stop accepting new requests)
// 2. SSE hub (close dashboard streams)
// 3. Event publisher (flush pending events)
// 4. Scheduler, then the workers it feeds
// 5. Telemetry and the database pool
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if c.Hub != nil {
		slog.Info(LogMsgStoppingHub)
		c.Hub.Stop()
	}

	// publisher before workers so a flushed event can still be announced
	if c.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := c.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if c.Scheduler != nil {
		slog.Info(LogMsgStoppingScheduler)
		c.Scheduler.Stop()
	}

	if c.Pool != nil {
		slog.Info(LogMsgStoppingWorkers)
		c.Pool.Stop()
	}

	if c.Telemetry != nil {
		if err := c.Telemetry(ctx); err != nil {
			slog.Error(LogMsgTelemetryShutdownFailed, "error", err)
		}
	}

	if c.Repositories != nil {
		c.Repositories.Close()
	}

	slog.Info(LogMsgServerStopped)
}
