package sse

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the broadcast channel
	BroadcastBufferSize = 256

	// ClientEventBuffer is the buffer size for each client's event channel
	ClientEventBuffer = 64
)

// Connection settings
const (
	KeepaliveInterval = 30 * time.Second
	WriteTimeout      = 10 * time.Second
)

// Stream-only event types. Bus events keep their bus type name.
const (
	EventTypeConnected = "connected"
	EventTypeKeepalive = "keepalive"
)

// QueryParamTypes filters the stream, e.g. ?types=loot.dropped,loot.table.reloaded
const QueryParamTypes = "types"

// Log messages
const (
	LogMsgClientConnected    = "SSE client connected"
	LogMsgClientDisconnected = "SSE client disconnected"
	LogMsgEventBroadcast     = "Broadcasting SSE event"
	LogMsgEventDropped       = "SSE broadcast buffer full, event dropped"
	LogMsgWriteError         = "Failed to write SSE event"
	LogMsgSubscribed         = "SSE subscriber registered for event types"
)

// Log fields
const (
	LogFieldClientID     = "client_id"
	LogFieldFilters      = "filters"
	LogFieldTotalClients = "total_clients"
	LogFieldEventType    = "event_type"
	LogFieldTypes        = "types"
	LogFieldError        = "error"
)
