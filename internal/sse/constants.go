package sse

import "time"

const (
	BroadcastBufferSize = 100
	ClientEventBuffer   = 50 // per dashboard; overflow is counted in Client.Dropped
	ClientChannelBuffer = 10
)

// KeepaliveInterval keeps idle proxies from closing the stream
const KeepaliveInterval = 30 * time.Second

// Stream-only event types, never published on the bus
const (
	EventTypeConnected = "connected"
	EventTypeKeepalive = "keepalive"
)

// QueryParamTypes narrows a stream, e.g. ?types=proof.submitted,claim.status_changed
const QueryParamTypes = "types"

const (
	LogMsgClientConnected    = "Dashboard stream opened"
	LogMsgClientDisconnected = "Dashboard stream closed"
	LogMsgEventBroadcast     = "Event forwarded to dashboards"
	LogMsgBroadcastDropped   = "Dashboard broadcast queue full, event dropped"
	LogMsgWriteError         = "Failed to write dashboard event"
)
