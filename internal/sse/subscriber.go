package sse

import (
	"context"

	"github.com/osse101/LootForge_Go/internal/event"
	"github.com/osse101/LootForge_Go/internal/logger"
)

// StreamedTypes are the bus events forwarded to stream clients.
var StreamedTypes = []event.Type{
	event.LootDropped,
	event.MultiDropCompleted,
	event.UniquenessExhausted,
	event.TableReloaded,
	event.StatsReset,
}

// Subscriber bridges the event bus to the hub.
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{hub: hub, bus: bus}
}

// Subscribe registers a forwarding handler for every streamed type.
func (s *Subscriber) Subscribe() {
	names := make([]string, 0, len(StreamedTypes))
	for _, t := range StreamedTypes {
		s.bus.Subscribe(t, s.forward)
		names = append(names, string(t))
	}
	logger.Info(LogMsgSubscribed, LogFieldTypes, names)
}

// forward relays the typed payload as-is; the payload structs carry their
// own json tags.
func (s *Subscriber) forward(ctx context.Context, evt event.Event) error {
	s.hub.Broadcast(string(evt.Type), evt.Payload)
	logger.FromContext(ctx).Debug(LogMsgEventBroadcast, LogFieldEventType, evt.Type)
	return nil
}
