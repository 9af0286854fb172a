package metrics

import (
	"context"

	"github.com/osse101/LuckyWheel_Go/internal/event"
	"github.com/osse101/LuckyWheel_Go/internal/logger"
)

// EventMetricsCollector turns bus events into counters
type EventMetricsCollector struct{}

func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

func (c *EventMetricsCollector) Register(bus event.Bus) {
	event.SubscribeAll(bus, c.HandleEvent, event.SpinResolved, event.ProofSubmitted, event.ClaimStatusChanged)
}

// HandleEvent never fails: an undecodable payload only loses its detail
// counter.
func (c *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	var err error
	switch evt.Type {
	case event.SpinResolved:
		var p event.SpinResolvedPayloadV1
		if p, err = event.DecodePayload[event.SpinResolvedPayloadV1](evt.Payload); err == nil {
			PrizesAwarded.WithLabelValues(p.WheelCode, p.PrizeID).Inc()
		}
	case event.ClaimStatusChanged:
		var p event.ClaimStatusChangedPayloadV1
		if p, err = event.DecodePayload[event.ClaimStatusChangedPayloadV1](evt.Payload); err == nil {
			ClaimStatusChanges.WithLabelValues(string(p.To)).Inc()
		}
	}
	if err != nil {
		logger.FromContext(ctx).Debug(LogMsgPayloadUndecoded, "type", evt.Type, "error", err)
	}
	return nil
}
