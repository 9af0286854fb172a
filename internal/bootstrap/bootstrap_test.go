package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LuckyWheel_Go/internal/config"
	"github.com/osse101/LuckyWheel_Go/internal/event"
	"github.com/osse101/LuckyWheel_Go/internal/memstore"
	"github.com/osse101/LuckyWheel_Go/internal/metrics"
	"github.com/osse101/LuckyWheel_Go/internal/sse"
	"github.com/osse101/LuckyWheel_Go/internal/testing/leaktest"
	"github.com/osse101/LuckyWheel_Go/internal/wheel"
	"github.com/osse101/LuckyWheel_Go/internal/worker"
)

func TestCleanupLogs_KeepsNewest(t *testing.T) {
	dir := t.TempDir()
	names := []string{
		"session_2026-01-01_00-00-00.log",
		"session_2026-01-02_00-00-00.log",
		"session_2026-01-03_00-00-00.log",
		"notes.txt",
	}
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("x"), 0o600))
	}

	cleanupLogs(dir, 2)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var left []string
	for _, e := range entries {
		left = append(left, e.Name())
	}
	assert.ElementsMatch(t, []string{
		"session_2026-01-02_00-00-00.log",
		"session_2026-01-03_00-00-00.log",
		"notes.txt",
	}, left)
}

func TestInitializeRepositories_Memory(t *testing.T) {
	repos, err := InitializeRepositories(context.Background(), &config.Config{StorageBackend: config.StorageBackendMemory})
	require.NoError(t, err)
	defer repos.Close()

	assert.Nil(t, repos.DB)
	assert.NoError(t, repos.Ready.Ping(context.Background()))
	assert.NotNil(t, repos.Wheel)
	assert.NotNil(t, repos.Draw)
	assert.NotNil(t, repos.Spin)
}

func TestInitializeRepositories_UnknownBackend(t *testing.T) {
	_, err := InitializeRepositories(context.Background(), &config.Config{StorageBackend: "sqlite"})
	assert.ErrorContains(t, err, ErrMsgUnknownBackend)
}

func TestSyncWheels(t *testing.T) {
	ctx := context.Background()
	repos := NewMemoryRepositories(memstore.New())
	wheels := wheel.NewService(repos.Wheel, 8, time.Minute)

	t.Run("missing dir is skipped", func(t *testing.T) {
		assert.NoError(t, SyncWheels(ctx, filepath.Join(t.TempDir(), "none"), wheels))
	})

	t.Run("shipped definitions", func(t *testing.T) {
		require.NoError(t, SyncWheels(ctx, "../../configs/wheels", wheels))
		w, err := wheels.Get(ctx, "DEMO")
		require.NoError(t, err)
		assert.NotEmpty(t, w.Prizes)
	})

	t.Run("invalid definition aborts", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("code: BAD\nprizes: []\n"), 0o600))
		assert.ErrorContains(t, SyncWheels(ctx, dir, wheels), ErrMsgSyncWheels)
	})
}

func TestInitializeEventSystem(t *testing.T) {
	cfg := &config.Config{EventDeadLetterPath: filepath.Join(t.TempDir(), "dl", "events.jsonl")}

	bus, pub, err := InitializeEventSystem(cfg)
	require.NoError(t, err)
	require.NotNil(t, bus)
	defer pub.Shutdown(context.Background())

	got := make(chan event.Type, 1)
	pub.Subscribe(event.SpinResolved, func(_ context.Context, e event.Event) error {
		got <- e.Type
		return nil
	})
	require.NoError(t, pub.Publish(context.Background(), event.Event{Type: event.SpinResolved}))
	assert.Equal(t, event.SpinResolved, <-got)
	assert.DirExists(t, filepath.Dir(cfg.EventDeadLetterPath))
}

func TestRegisterEventHandlers_WithoutDiscord(t *testing.T) {
	bus := event.NewMemoryBus()
	hub := sse.NewHub()
	hub.Start()
	defer hub.Stop()

	err := RegisterEventHandlers(EventHandlerDependencies{
		EventBus: bus,
		Hub:      hub,
		Config:   &config.Config{},
	})
	assert.NoError(t, err)
}

func TestRegisterEventHandlers_WithDiscord(t *testing.T) {
	pool := worker.NewPool(1, 1)
	err := RegisterEventHandlers(EventHandlerDependencies{
		EventBus: event.NewMemoryBus(),
		Pool:     pool,
		Config:   &config.Config{DiscordToken: "token", DiscordChannelID: "123"},
	})
	assert.NoError(t, err)
}

func TestStartBackground_RegistrationErrorStartsNothing(t *testing.T) {
	checker := leaktest.NewGoroutineChecker(t)
	hub := sse.NewHub()
	pool := worker.NewPool(2, 4)

	sched, err := StartBackground(EventHandlerDependencies{
		EventBus: event.NewMemoryBus(),
		Hub:      hub,
		Pool:     pool,
		Config:   &config.Config{DiscordToken: "token", DiscordChannelID: "not-a-snowflake"},
	}, time.Millisecond)
	require.ErrorContains(t, err, ErrMsgFailedCreateAnnouncer)
	assert.Nil(t, sched)

	require.True(t, pool.TryEnqueue(worker.JobFunc(func(context.Context) error { return nil })))
	assert.Never(t, func() bool { return pool.QueueLen() == 0 }, 50*time.Millisecond, 5*time.Millisecond,
		"no worker drains the queue")
	checker.Check(0)
}

func TestStartBackground_StartsHubAndPool(t *testing.T) {
	hub := sse.NewHub()
	pool := worker.NewPool(1, 4)

	sched, err := StartBackground(EventHandlerDependencies{
		EventBus: event.NewMemoryBus(),
		Hub:      hub,
		Pool:     pool,
		Config:   &config.Config{},
	}, 0)
	require.NoError(t, err)
	defer GracefulShutdown(context.Background(), ShutdownComponents{Hub: hub, Pool: pool, Scheduler: sched})

	ran := make(chan struct{})
	require.True(t, pool.TryEnqueue(worker.JobFunc(func(context.Context) error {
		close(ran)
		return nil
	})))
	<-ran

	hub.Register("DEMO", nil)
	assert.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)
}

func TestGracefulShutdown_NilComponents(t *testing.T) {
	assert.NotPanics(t, func() {
		GracefulShutdown(context.Background(), ShutdownComponents{})
	})
}

func TestGracefulShutdown_StopsEverything(t *testing.T) {
	hub := sse.NewHub()
	hub.Start()
	pool := worker.NewPool(1, 1)
	pool.Start()
	_, pub, err := InitializeEventSystem(&config.Config{EventDeadLetterPath: filepath.Join(t.TempDir(), "dl.jsonl")})
	require.NoError(t, err)

	telemetryStopped := false
	GracefulShutdown(context.Background(), ShutdownComponents{
		Hub:                hub,
		Pool:               pool,
		ResilientPublisher: pub,
		Repositories:       NewMemoryRepositories(memstore.New()),
		Telemetry: func(context.Context) error {
			telemetryStopped = true
			return nil
		},
	})

	assert.True(t, telemetryStopped)
	assert.False(t, pool.TryEnqueue(worker.JobFunc(func(context.Context) error { return nil })))
	client := hub.Register("", nil)
	_, open := <-client.EventChannel
	assert.False(t, open)
}

func TestRuntimeMetricsJob(t *testing.T) {
	hub := sse.NewHub()
	hub.Start()
	defer hub.Stop()
	client := hub.Register("DEMO", nil)
	assert.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	pool := worker.NewPool(1, 4)
	require.True(t, pool.TryEnqueue(worker.JobFunc(func(context.Context) error { return nil })))

	require.NoError(t, RuntimeMetricsJob(pool, hub).Process(context.Background()))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.SSEClients))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.WorkerQueueDepth))

	hub.Unregister(client.ID)
}

func TestStartScheduler_ZeroIntervalSchedulesNothing(t *testing.T) {
	pool := worker.NewPool(1, 1)
	sched := StartScheduler(pool, nil, 0)
	sched.Stop()
	assert.Zero(t, pool.QueueLen())
}
