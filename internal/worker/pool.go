// Package worker runs background jobs, such as Discord announcements, off
// the request path.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/LuckyWheel_Go/internal/logger"
)

type Job interface {
	Process(ctx context.Context) error
}

// JobFunc adapts a function to Job
type JobFunc func(ctx context.Context) error

func (f JobFunc) Process(ctx context.Context) error { return f(ctx) }

// Pool is a fixed set of goroutines draining a bounded queue. Jobs still
// queued when Stop is called are dropped.
type Pool struct {
	size    int
	queue   chan Job
	timeout time.Duration

	quit     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewPool creates a pool of size workers; jobs run with DefaultJobTimeout.
func NewPool(size, queueSize int) *Pool {
	return &Pool{
		size:    max(size, 1),
		queue:   make(chan Job, queueSize),
		timeout: DefaultJobTimeout,
		quit:    make(chan struct{}),
	}
}

func (p *Pool) Start() {
	p.wg.Add(p.size)
	for range p.size {
		go func() {
			defer p.wg.Done()
			for {
				select {
				case job := <-p.queue:
					p.run(job)
				case <-p.quit:
					return
				}
			}
		}()
	}
}

// run isolates one job: a panic or error is logged and the worker moves on.
func (p *Pool) run(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	log := logger.FromContext(ctx)
	defer func() {
		if r := recover(); r != nil {
			log.Error(LogMsgWorkerJobPanicked, "panic", r)
		}
	}()
	if err := job.Process(ctx); err != nil {
		log.Error(LogMsgWorkerJobFailed, "error", err)
	}
}

func (p *Pool) stopped() bool {
	select {
	case <-p.quit:
		return true
	default:
		return false
	}
}

// Enqueue waits for queue space, returning ErrPoolStopped or ctx.Err() if it
// never comes.
func (p *Pool) Enqueue(ctx context.Context, job Job) error {
	if p.stopped() {
		return ErrPoolStopped
	}
	select {
	case p.queue <- job:
		return nil
	case <-p.quit:
		return ErrPoolStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TryEnqueue reports whether job was queued without waiting.
func (p *Pool) TryEnqueue(job Job) bool {
	if p.stopped() {
		return false
	}
	select {
	case p.queue <- job:
		return true
	default:
		return false
	}
}

func (p *Pool) QueueLen() int {
	return len(p.queue)
}

// Stop waits for running jobs and is safe to call more than once.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() { close(p.quit) })
	p.wg.Wait()
}
