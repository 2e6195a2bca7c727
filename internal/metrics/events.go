package metrics

import (
	"context"

	"github.com/osse101/LootForge_Go/internal/event"
	"github.com/osse101/LootForge_Go/internal/logger"
	"github.com/osse101/LootForge_Go/internal/loot"
)

// EventMetricsCollector subscribes to loot events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to every loot event type
func (e *EventMetricsCollector) Register(bus event.Bus) {
	for _, eventType := range []event.Type{
		event.LootDropped,
		event.MultiDropCompleted,
		event.UniquenessExhausted,
		event.TableReloaded,
		event.StatsReset,
	} {
		bus.Subscribe(eventType, e.HandleEvent)
	}
}

// HandleEvent updates metrics for one event. Undecodable payloads are
// counted but otherwise ignored.
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	var err error
	switch evt.Type {
	case event.LootDropped:
		var p event.LootDroppedPayloadV1
		if p, err = event.DecodePayload[event.LootDroppedPayloadV1](evt.Payload); err == nil {
			RollsTotal.WithLabelValues(p.Rarity.String()).Inc()
			LegendaryChance.Observe(p.LegendaryChance)
			FallbackTotal.WithLabelValues(p.Stage).Inc()
			if p.Stage == string(loot.StageSuppressed) {
				DropsSuppressed.Inc()
			}
			if p.PityForced {
				PityForced.Inc()
			}
		}

	case event.MultiDropCompleted:
		var p event.MultiDropCompletedPayloadV1
		if p, err = event.DecodePayload[event.MultiDropCompletedPayloadV1](evt.Payload); err == nil {
			MultiDropResults.Observe(float64(p.Results))
		}

	case event.UniquenessExhausted:
		var p event.UniquenessExhaustedPayloadV1
		if p, err = event.DecodePayload[event.UniquenessExhaustedPayloadV1](evt.Payload); err == nil {
			UniquenessExhausted.WithLabelValues(p.Bucket).Inc()
		}

	case event.TableReloaded:
		TableReloads.Inc()

	case event.StatsReset:
		StatsResets.Inc()
	}

	if err != nil {
		log.Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
