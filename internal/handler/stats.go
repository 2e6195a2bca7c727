package handler

import (
	"net/http"

	"github.com/osse101/LootForge_Go/internal/domain"
	"github.com/osse101/LootForge_Go/internal/stats"
)

// StatsHandler serves player loot stats.
type StatsHandler struct {
	service stats.Service
	items   ItemResolver
}

// NewStatsHandler creates a StatsHandler. items may be nil, in which case
// pickups are recorded by id only.
func NewStatsHandler(service stats.Service, items ItemResolver) *StatsHandler {
	return &StatsHandler{service: service, items: items}
}

// PickupRequest records that a player picked up an item.
type PickupRequest struct {
	ItemID string        `json:"item_id" validate:"required,max=128"`
	Rarity domain.Rarity `json:"rarity" validate:"rarity"`
}

// HandleGet returns a player's stats.
func (h *StatsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ref, ok := playerParam(w, r)
	if !ok {
		return
	}

	s, err := h.service.GetStats(r.Context(), ref)
	if err != nil {
		respondServiceError(w, r, "Get stats", err)
		return
	}
	respondJSON(w, http.StatusOK, s)
}

// HandlePickup records a pickup and returns the updated stats.
func (h *StatsHandler) HandlePickup(w http.ResponseWriter, r *http.Request) {
	ref, ok := playerParam(w, r)
	if !ok {
		return
	}

	var req PickupRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Record pickup"); err != nil {
		return
	}

	def := &domain.ItemDefinition{ID: req.ItemID}
	if h.items != nil {
		if known, found := h.items.Resolve(req.ItemID); found {
			def = known
		}
	}

	s, err := h.service.RecordPickup(r.Context(), ref, def, req.Rarity)
	if err != nil {
		respondServiceError(w, r, "Record pickup", err)
		return
	}
	respondJSON(w, http.StatusOK, s)
}

// HandleReset clears a player's stats.
func (h *StatsHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	ref, ok := playerParam(w, r)
	if !ok {
		return
	}

	if err := h.service.ResetStats(r.Context(), ref); err != nil {
		respondServiceError(w, r, "Reset stats", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgStatsResetSuccess})
}
