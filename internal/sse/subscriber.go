package sse

import (
	"context"

	"github.com/osse101/LuckyWheel_Go/internal/event"
	"github.com/osse101/LuckyWheel_Go/internal/logger"
)

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// StreamedTypes are the bus events forwarded to host dashboards
var StreamedTypes = []event.Type{
	event.SpinResolved,
	event.ProofSubmitted,
	event.ClaimStatusChanged,
}

// Subscribe registers the forwarding handler for every streamed type
func (s *Subscriber) Subscribe() {
	event.SubscribeAll(s.bus, s.forward, StreamedTypes...)
}

// forward re-broadcasts the payload under the bus event's own type name
func (s *Subscriber) forward(ctx context.Context, evt event.Event) error {
	code := evt.WheelCode()
	if !s.hub.Broadcast(code, string(evt.Type), evt.Payload) {
		logger.FromContext(ctx).Warn(LogMsgBroadcastDropped, "event_type", evt.Type, "wheel_code", code)
		return nil
	}
	logger.FromContext(ctx).Debug(LogMsgEventBroadcast, "event_type", evt.Type, "wheel_code", code)
	return nil
}
