package bootstrap

import (
	"github.com/osse101/LootForge_Go/internal/event"
	"github.com/osse101/LootForge_Go/internal/logger"
	"github.com/osse101/LootForge_Go/internal/metrics"
)

// InitializeEventSystem creates the event bus and subscribes the metrics
// collector. It must run before the engine is built so the initial table
// install is counted.
func InitializeEventSystem() event.Bus {
	bus := event.NewMemoryBus()

	metrics.NewEventMetricsCollector().Register(bus)
	logger.Info(LogMsgMetricsCollectorRegistered)

	logger.Info(LogMsgEventSystemInitialized)
	return bus
}
