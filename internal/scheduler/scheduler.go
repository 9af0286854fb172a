// Package scheduler feeds recurring jobs into the worker pool.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/LuckyWheel_Go/internal/logger"
	"github.com/osse101/LuckyWheel_Go/internal/worker"
)

// Enqueuer is the slice of worker.Pool the scheduler uses
type Enqueuer interface {
	TryEnqueue(job worker.Job) bool
}

// Scheduler submits jobs on fixed intervals. It never runs a job itself; a
// tick that finds the queue full is skipped so a stuck pool cannot pile up
// ticks.
type Scheduler struct {
	pool   Enqueuer
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(pool Enqueuer) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{pool: pool, ctx: ctx, cancel: cancel}
}

// Schedule starts submitting job every interval. A non-positive interval
// disables the job.
func (s *Scheduler) Schedule(name string, interval time.Duration, job worker.Job) {
	if interval <= 0 || s.ctx.Err() != nil {
		return
	}
	s.wg.Add(1)
	go s.loop(name, interval, job)
}

func (s *Scheduler) loop(name string, interval time.Duration, job worker.Job) {
	defer s.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	skipped := 0
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
		}
		if s.pool.TryEnqueue(job) {
			skipped = 0
			continue
		}
		skipped++
		logger.Warn(LogMsgTickSkipped, "job", name, "consecutive", skipped)
	}
}

// Stop ends every schedule. Jobs already handed to the pool still run.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
}
