package bootstrap

import (
	"cmp"
	"fmt"
	"log/slog"

	"github.com/osse101/LuckyWheel_Go/internal/config"
	"github.com/osse101/LuckyWheel_Go/internal/event"
)

// InitializeEventSystem builds the in-process bus and the retrying publisher
// that services publish through. Handlers subscribe on the bus; draws and
// claims only ever see the publisher.
func InitializeEventSystem(cfg *config.Config) (event.Bus, *event.ResilientPublisher, error) {
	bus := event.NewMemoryBus()

	retries := cmp.Or(cfg.EventMaxRetries, EventDefaultMaxRetries)
	delay := cmp.Or(cfg.EventRetryDelay, EventDefaultRetryDelay)
	deadLetters := cmp.Or(cfg.EventDeadLetterPath, EventDefaultDeadLetterPath)

	publisher, err := event.NewResilientPublisher(bus, retries, delay, deadLetters)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateResilientPublisher, err)
	}

	slog.Info(LogMsgEventSystemInitialized,
		"max_retries", retries,
		"retry_delay", delay,
		"deadletter_path", deadLetters)
	return bus, publisher, nil
}
