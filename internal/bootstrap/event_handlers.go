package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/LuckyWheel_Go/internal/config"
	"github.com/osse101/LuckyWheel_Go/internal/discord"
	"github.com/osse101/LuckyWheel_Go/internal/event"
	"github.com/osse101/LuckyWheel_Go/internal/metrics"
	"github.com/osse101/LuckyWheel_Go/internal/sse"
	"github.com/osse101/LuckyWheel_Go/internal/worker"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus event.Bus
	Hub      *sse.Hub
	// Pool runs Discord sends; nil when announcements are disabled
	Pool   *worker.Pool
	Config *config.Config
}

// RegisterEventHandlers sets up all event subscribers:
// - Metrics collector (event-based counters)
// - SSE subscriber (live host dashboards)
// - Discord announcer, when a token and channel are configured
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	metrics.NewEventMetricsCollector().Register(deps.EventBus)
	slog.Info(LogMsgMetricsCollectorRegistered)

	if deps.Hub != nil {
		sse.NewSubscriber(deps.Hub, deps.EventBus).Subscribe()
		slog.Info(LogMsgSSESubscriberRegistered)
	}

	if !deps.Config.DiscordEnabled() || deps.Pool == nil {
		slog.Info(LogMsgDiscordDisabled)
		return nil
	}
	announcer, err := discord.New(discord.Config{
		Token:     deps.Config.DiscordToken,
		ChannelID: deps.Config.DiscordChannelID,
	}, deps.Pool)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedCreateAnnouncer, err)
	}
	announcer.Register(deps.EventBus)
	slog.Info(LogMsgDiscordAnnouncerRegistered, "channel_id", deps.Config.DiscordChannelID)

	return nil
}
