package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/LootForge_Go/internal/domain"
)

// Type identifies an event
type Type string

// Event is a versioned, typed notification published on a Bus
type Event struct {
	Version  string                 `json:"version"`
	Type     Type                   `json:"type"`
	Payload  interface{}            `json:"payload"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// GetMetadataValue returns a metadata value or nil
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	return e.Metadata[key]
}

// LootDroppedPayloadV1 describes a single roll
type LootDroppedPayloadV1 struct {
	PlayerRef       string        `json:"player_ref,omitempty"`
	SourceTag       domain.Tag    `json:"source_tag,omitempty"`
	Rarity          domain.Rarity `json:"rarity"`
	ItemID          string        `json:"item_id,omitempty"`
	ItemLevel       int           `json:"item_level"`
	LegendaryChance float64       `json:"legendary_chance"`
	Stage           string        `json:"stage"`
	PityForced      bool          `json:"pity_forced,omitempty"`
	Timestamp       int64         `json:"timestamp"`
}

// MultiDropCompletedPayloadV1 summarises a multi-drop plan
type MultiDropCompletedPayloadV1 struct {
	PlayerRef   string `json:"player_ref,omitempty"`
	TotalTarget int    `json:"total_target"`
	Results     int    `json:"results"`
	Exhausted   int    `json:"exhausted"`
	Timestamp   int64  `json:"timestamp"`
}

// UniquenessExhaustedPayloadV1 reports a skipped multi-drop unit
type UniquenessExhaustedPayloadV1 struct {
	Bucket   string `json:"bucket"`
	Unit     int    `json:"unit"`
	Attempts int    `json:"attempts"`
}

// TableReloadedPayloadV1 is published after a table hot-swap
type TableReloadedPayloadV1 struct {
	Table     string `json:"table"`
	Pools     int    `json:"pools"`
	Timestamp int64  `json:"timestamp"`
}

// StatsResetPayloadV1 is published when a player's stats are cleared
type StatsResetPayloadV1 struct {
	PlayerRef string `json:"player_ref"`
	Timestamp int64  `json:"timestamp"`
}

// NewLootDroppedEvent creates a loot dropped event
func NewLootDroppedEvent(payload LootDroppedPayloadV1) Event {
	if payload.Timestamp == 0 {
		payload.Timestamp = time.Now().Unix()
	}
	return Event{
		Version:  EventSchemaVersion,
		Type:     LootDropped,
		Payload:  payload,
		Metadata: map[string]interface{}{"player_ref": payload.PlayerRef},
	}
}

// NewMultiDropCompletedEvent creates a multi-drop completed event
func NewMultiDropCompletedEvent(playerRef string, totalTarget, results, exhausted int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    MultiDropCompleted,
		Payload: MultiDropCompletedPayloadV1{
			PlayerRef:   playerRef,
			TotalTarget: totalTarget,
			Results:     results,
			Exhausted:   exhausted,
			Timestamp:   time.Now().Unix(),
		},
	}
}

// NewUniquenessExhaustedEvent creates a uniqueness exhausted event
func NewUniquenessExhaustedEvent(bucket string, unit, attempts int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    UniquenessExhausted,
		Payload: UniquenessExhaustedPayloadV1{Bucket: bucket, Unit: unit, Attempts: attempts},
	}
}

// NewTableReloadedEvent creates a table reloaded event
func NewTableReloadedEvent(table string, pools int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    TableReloaded,
		Payload: TableReloadedPayloadV1{Table: table, Pools: pools, Timestamp: time.Now().Unix()},
	}
}

// NewStatsResetEvent creates a stats reset event
func NewStatsResetEvent(playerRef string) Event {
	return Event{
		Version:  EventSchemaVersion,
		Type:     StatsReset,
		Payload:  StatsResetPayloadV1{PlayerRef: playerRef, Timestamp: time.Now().Unix()},
		Metadata: map[string]interface{}{"player_ref": playerRef},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every subscriber synchronously and joins their errors
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.Type]
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}
	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
