package event

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/osse101/LuckyWheel_Go/internal/logger"
)

// DeadLetterSchemaVersion versions the JSONL line format
const DeadLetterSchemaVersion = "1.1"

// DeadLetterEntry is one undeliverable event, one JSON object per line.
// WheelCode is lifted out of the metadata so a host can grep a wheel's losses.
type DeadLetterEntry struct {
	SchemaVersion string    `json:"schema_version"`
	Timestamp     time.Time `json:"timestamp"`
	WheelCode     string    `json:"wheel_code,omitempty"`
	Event         Event     `json:"event"`
	Attempts      int       `json:"attempts"`
	LastError     string    `json:"last_error,omitempty"`
}

// DeadLetterWriter appends undeliverable events to a JSONL file
type DeadLetterWriter struct {
	mu     sync.Mutex
	file   *os.File
	closed bool
}

// NewDeadLetterWriter opens path for appending, creating its directory if needed
func NewDeadLetterWriter(path string) (*DeadLetterWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), DeadLetterDirPermissions); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, DeadLetterFilePermissions)
	if err != nil {
		return nil, err
	}
	return &DeadLetterWriter{file: f}, nil
}

func (w *DeadLetterWriter) Write(e Event, attempts int, lastErr error) error {
	entry := DeadLetterEntry{
		SchemaVersion: DeadLetterSchemaVersion,
		Timestamp:     time.Now().UTC(),
		WheelCode:     e.WheelCode(),
		Event:         e,
		Attempts:      attempts,
	}
	if lastErr != nil {
		entry.LastError = lastErr.Error()
	}
	line, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return os.ErrClosed
	}
	logger.Warn(LogMsgEventDeadLettered,
		"event_type", e.Type,
		"wheel_code", entry.WheelCode,
		"attempts", attempts,
		"error", entry.LastError)
	_, err = w.file.Write(append(line, '\n'))
	return err
}

// Close is safe to call more than once
func (w *DeadLetterWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	return w.file.Close()
}
