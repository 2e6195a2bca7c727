package handler

import (
	"context"
	"net/http"

	"github.com/osse101/LootForge_Go/internal/logger"
)

// Reloader re-reads the loot table, catalog and rules and swaps them in.
type Reloader interface {
	Reload(ctx context.Context) (ReloadSummary, error)
}

// ReloadSummary describes what a reload installed.
type ReloadSummary struct {
	Table string `json:"table"`
	Pools int    `json:"pools"`
	Items int    `json:"items"`
	Rules int    `json:"rules"`
}

// ReloadResponse is returned after a successful reload.
type ReloadResponse struct {
	Message string        `json:"message"`
	Summary ReloadSummary `json:"summary"`
}

// HandleReload returns a handler that reloads loot data. A failed reload
// leaves the previous data in place.
func HandleReload(reloader Reloader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		log.Info(LogMsgReloading)

		summary, err := reloader.Reload(r.Context())
		if err != nil {
			log.Error(LogMsgReloadFailed, LogFieldError, err)
			respondError(w, http.StatusUnprocessableEntity, ErrMsgReloadFailed)
			return
		}

		log.Info(LogMsgReloaded, LogFieldTable, summary.Table, LogFieldPools, summary.Pools, LogFieldItems, summary.Items)
		respondJSON(w, http.StatusOK, ReloadResponse{Message: MsgReloadSuccess, Summary: summary})
	}
}

// DifficultySetter moves the run difficulty slider.
type DifficultySetter interface {
	SetAlpha(alpha float64)
	Alpha() float64
	CurrentDifficultyScalar() float64
}

// DifficultyRequest sets the slider position.
type DifficultyRequest struct {
	Alpha *float64 `json:"alpha" validate:"required,gte=0,lte=1"`
}

// DifficultyResponse reports the slider and the scalar it yields.
type DifficultyResponse struct {
	Alpha  float64 `json:"alpha"`
	Scalar float64 `json:"scalar"`
}

// HandleGetDifficulty reports the current difficulty.
func HandleGetDifficulty(curve DifficultySetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if curve == nil {
			respondError(w, http.StatusNotFound, ErrMsgDifficultyMissing)
			return
		}
		respondJSON(w, http.StatusOK, DifficultyResponse{Alpha: curve.Alpha(), Scalar: curve.CurrentDifficultyScalar()})
	}
}

// HandleSetDifficulty moves the slider for every roll that derives its
// difficulty from the run.
func HandleSetDifficulty(curve DifficultySetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if curve == nil {
			respondError(w, http.StatusNotFound, ErrMsgDifficultyMissing)
			return
		}

		var req DifficultyRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Set difficulty"); err != nil {
			return
		}

		curve.SetAlpha(*req.Alpha)
		logger.FromContext(r.Context()).Info(LogMsgDifficultyUpdated, LogFieldAlpha, curve.Alpha())
		respondJSON(w, http.StatusOK, DifficultyResponse{Alpha: curve.Alpha(), Scalar: curve.CurrentDifficultyScalar()})
	}
}
