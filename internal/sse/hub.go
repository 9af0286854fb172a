// Package sse streams a wheel's live activity to host dashboards.
package sse

import (
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Event is one message on a host's stream
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	WheelCode string      `json:"wheel_code,omitempty"`
	Timestamp int64       `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// Client is one connected dashboard. An empty WheelCode watches every wheel.
type Client struct {
	ID           string
	WheelCode    string
	EventChannel chan Event

	types   map[string]struct{} // nil accepts every type
	dropped atomic.Int64
}

func (c *Client) accepts(eventType string) bool {
	if c.types == nil {
		return true
	}
	_, ok := c.types[eventType]
	return ok
}

// Dropped counts events skipped because the client's buffer was full
func (c *Client) Dropped() int64 {
	return c.dropped.Load()
}

// Hub fans bus events out to dashboards. Clients are indexed by wheel code so
// a broadcast only visits the wheel's own watchers and the global ones.
// Registration and broadcast are serialised through the run loop.
type Hub struct {
	mu      sync.RWMutex
	byWheel map[string]map[string]*Client
	byID    map[string]*Client

	broadcast  chan Event
	register   chan *Client
	unregister chan string
	shutdown   chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
}

func NewHub() *Hub {
	return &Hub{
		byWheel:    make(map[string]map[string]*Client),
		byID:       make(map[string]*Client),
		broadcast:  make(chan Event, BroadcastBufferSize),
		register:   make(chan *Client, ClientChannelBuffer),
		unregister: make(chan string, ClientChannelBuffer),
		shutdown:   make(chan struct{}),
	}
}

// Start runs the broadcast loop until Stop
func (h *Hub) Start() {
	h.wg.Add(1)
	go h.run()
}

// Stop ends the loop and closes every client channel. It is idempotent.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.shutdown) })
	h.wg.Wait()

	h.mu.Lock()
	defer h.mu.Unlock()
	for pending := true; pending; {
		select {
		case c := <-h.register:
			close(c.EventChannel)
		default:
			pending = false
		}
	}
	for id, c := range h.byID {
		close(c.EventChannel)
		delete(h.byID, id)
	}
	clear(h.byWheel)
}

func (h *Hub) run() {
	defer h.wg.Done()
	for {
		select {
		case c := <-h.register:
			h.add(c)
		case id := <-h.unregister:
			h.remove(id)
		case e := <-h.broadcast:
			h.fanOut(e)
		case <-h.shutdown:
			return
		}
	}
}

func (h *Hub) add(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	watchers, ok := h.byWheel[c.WheelCode]
	if !ok {
		watchers = make(map[string]*Client)
		h.byWheel[c.WheelCode] = watchers
	}
	watchers[c.ID] = c
	h.byID[c.ID] = c
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.byID[id]
	if !ok {
		return
	}
	delete(h.byID, id)
	if watchers := h.byWheel[c.WheelCode]; watchers != nil {
		delete(watchers, id)
		if len(watchers) == 0 {
			delete(h.byWheel, c.WheelCode)
		}
	}
	close(c.EventChannel)
}

// fanOut never blocks: a slow dashboard misses events instead of stalling
// the others
func (h *Hub) fanOut(e Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	deliver := func(watchers map[string]*Client) {
		for _, c := range watchers {
			if !c.accepts(e.Type) {
				continue
			}
			select {
			case c.EventChannel <- e:
			default:
				c.dropped.Add(1)
			}
		}
	}
	deliver(h.byWheel[e.WheelCode])
	if e.WheelCode != "" {
		deliver(h.byWheel[""])
	}
}

// Register adds a client for wheelCode, optionally limited to eventTypes.
// After Stop the returned client's channel is already closed.
func (h *Hub) Register(wheelCode string, eventTypes []string) *Client {
	c := &Client{
		ID:           uuid.NewString(),
		WheelCode:    wheelCode,
		EventChannel: make(chan Event, ClientEventBuffer),
	}
	if len(eventTypes) > 0 {
		c.types = make(map[string]struct{}, len(eventTypes))
		for _, t := range eventTypes {
			c.types[t] = struct{}{}
		}
	}

	select {
	case <-h.shutdown:
		close(c.EventChannel)
		return c
	default:
	}
	select {
	case h.register <- c:
	case <-h.shutdown:
		close(c.EventChannel)
	}
	return c
}

// Unregister removes the client and closes its channel
func (h *Hub) Unregister(clientID string) {
	select {
	case h.unregister <- clientID:
	case <-h.shutdown:
	}
}

// Broadcast queues an event for a wheel's watchers. It reports false when
// the queue is full and the event was dropped.
func (h *Hub) Broadcast(wheelCode, eventType string, payload interface{}) bool {
	e := Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		WheelCode: wheelCode,
		Timestamp: time.Now().Unix(),
		Payload:   payload,
	}
	select {
	case h.broadcast <- e:
		return true
	default:
		return false
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.byID)
}

// WheelClientCount returns how many dashboards watch code specifically
func (h *Hub) WheelClientCount(code string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.byWheel[code])
}

// FormatSSEMessage renders e in the text/event-stream wire format
func FormatSSEMessage(e Event) ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	return fmt.Appendf(nil, "id: %s\nevent: %s\ndata: %s\n\n", e.ID, e.Type, data), nil
}
