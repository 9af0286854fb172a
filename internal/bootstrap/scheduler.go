package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"github.com/osse101/LuckyWheel_Go/internal/metrics"
	"github.com/osse101/LuckyWheel_Go/internal/scheduler"
	"github.com/osse101/LuckyWheel_Go/internal/sse"
	"github.com/osse101/LuckyWheel_Go/internal/worker"
)

// JobNameRuntimeMetrics samples the runtime gauges
const JobNameRuntimeMetrics = "runtime-metrics"

// StartBackground registers the event handlers and only then starts the hub,
// the worker pool and the scheduler, so a registration error leaves nothing
// running.
func StartBackground(deps EventHandlerDependencies, interval time.Duration) (*scheduler.Scheduler, error) {
	if err := RegisterEventHandlers(deps); err != nil {
		return nil, err
	}
	if deps.Hub != nil {
		deps.Hub.Start()
	}
	if deps.Pool != nil {
		deps.Pool.Start()
	}
	return StartScheduler(deps.Pool, deps.Hub, interval), nil
}

// StartScheduler schedules the recurring jobs. A zero interval schedules nothing.
func StartScheduler(pool *worker.Pool, hub *sse.Hub, interval time.Duration) *scheduler.Scheduler {
	sched := scheduler.New(pool)
	sched.Schedule(JobNameRuntimeMetrics, interval, RuntimeMetricsJob(pool, hub))
	slog.Info(LogMsgSchedulerStarted, "metrics_interval", interval)
	return sched
}

// RuntimeMetricsJob refreshes the gauges that have no natural event to hang off.
func RuntimeMetricsJob(pool *worker.Pool, hub *sse.Hub) worker.Job {
	return worker.JobFunc(func(context.Context) error {
		if hub != nil {
			metrics.SSEClients.Set(float64(hub.ClientCount()))
		}
		if pool != nil {
			metrics.WorkerQueueDepth.Set(float64(pool.QueueLen()))
		}
		return nil
	})
}
