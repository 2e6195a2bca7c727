package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/osse101/LootForge_Go/internal/database"
	"github.com/osse101/LootForge_Go/internal/logger"
)

const readinessTimeout = 2 * time.Second

// HealthResponse represents the response for health endpoints
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Table   string `json:"table,omitempty"`
}

// HandleHealthz provides a basic liveness check
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: HealthStatusOK})
	}
}

// HandleReadyz reports ready once a loot table is installed and, when a
// database backs the stats, the database answers a ping. dbPool may be nil
// for the in-memory backend.
func HandleReadyz(dbPool database.Pool, roller Roller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		if dbPool != nil {
			if err := dbPool.Ping(ctx); err != nil {
				logger.FromContext(ctx).Error(LogMsgReadinessFailed, LogFieldError, err)
				respondJSON(w, http.StatusServiceUnavailable, HealthResponse{
					Status:  HealthStatusUnavailable,
					Message: HealthMsgDatabaseFailed,
				})
				return
			}
		}

		resp := HealthResponse{Status: HealthStatusOK}
		if roller != nil {
			table := roller.Table()
			if table == nil {
				respondJSON(w, http.StatusServiceUnavailable, HealthResponse{
					Status:  HealthStatusUnavailable,
					Message: HealthMsgNoTable,
				})
				return
			}
			resp.Table = table.Name
		}
		respondJSON(w, http.StatusOK, resp)
	}
}
