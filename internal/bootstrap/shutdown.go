package bootstrap

import (
	"context"

	"github.com/osse101/LootForge_Go/internal/logger"
	"github.com/osse101/LootForge_Go/internal/scheduler"
	"github.com/osse101/LootForge_Go/internal/server"
	"github.com/osse101/LootForge_Go/internal/sse"
	"github.com/osse101/LootForge_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Scheduler *scheduler.Scheduler
	Workers   *worker.Pool
	Events    *sse.Hub
	Server    *server.Server
	Storage   StatsStorage
	Tracing   func(context.Context) error
}

// GracefulShutdown stops background reloads, closes event streams and stops
// the HTTP server so no request is writing stats, then closes the stats
// database and flushes pending spans. Errors are logged and do not stop the sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	logger.Info(LogMsgShuttingDownServer)

	if components.Scheduler != nil {
		components.Scheduler.Stop()
	}
	if components.Workers != nil {
		components.Workers.Stop()
	}

	// Open streams would hold Server.Stop until the deadline
	if components.Events != nil {
		components.Events.Stop()
	}

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			logger.Error(LogMsgServerForcedShutdown, LogFieldError, err)
		}
	}

	components.Storage.Close()

	if components.Tracing != nil {
		if err := components.Tracing(ctx); err != nil {
			logger.Warn(LogMsgTracingShutdownFailed, LogFieldError, err)
		}
	}

	logger.Info(LogMsgServerStopped)
}
