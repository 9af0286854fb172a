package worker

import (
	"errors"
	"time"
)

const DefaultJobTimeout = 30 * time.Second

var ErrPoolStopped = errors.New("worker pool stopped")

const (
	LogMsgWorkerJobFailed   = "Background job failed"
	LogMsgWorkerJobPanicked = "Background job panicked"
)
