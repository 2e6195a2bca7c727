package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LootForge_Go/internal/domain"
	"github.com/osse101/LootForge_Go/internal/event"
	"github.com/osse101/LootForge_Go/internal/loot"
)

func TestEventMetricsCollector(t *testing.T) {
	bus := event.NewMemoryBus()
	NewEventMetricsCollector().Register(bus)
	ctx := context.Background()

	rolls := testutil.ToFloat64(RollsTotal.WithLabelValues(domain.RarityLegendary.String()))
	suppressed := testutil.ToFloat64(DropsSuppressed)
	forced := testutil.ToFloat64(PityForced)
	exhausted := testutil.ToFloat64(UniquenessExhausted.WithLabelValues("gear"))

	require.NoError(t, bus.Publish(ctx, event.NewLootDroppedEvent(event.LootDroppedPayloadV1{
		Rarity: domain.RarityLegendary, Stage: string(loot.StagePoolRarity), LegendaryChance: 1, PityForced: true,
	})))
	require.NoError(t, bus.Publish(ctx, event.NewLootDroppedEvent(event.LootDroppedPayloadV1{
		Rarity: domain.RarityCommon, Stage: string(loot.StageSuppressed),
	})))
	require.NoError(t, bus.Publish(ctx, event.NewUniquenessExhaustedEvent("gear", 1, 9)))

	assert.InDelta(t, rolls+1, testutil.ToFloat64(RollsTotal.WithLabelValues(domain.RarityLegendary.String())), 1e-9)
	assert.InDelta(t, suppressed+1, testutil.ToFloat64(DropsSuppressed), 1e-9)
	assert.InDelta(t, forced+1, testutil.ToFloat64(PityForced), 1e-9)
	assert.InDelta(t, exhausted+1, testutil.ToFloat64(UniquenessExhausted.WithLabelValues("gear")), 1e-9)
}

func TestEventMetricsCollector_BadPayload(t *testing.T) {
	err := NewEventMetricsCollector().HandleEvent(context.Background(), event.Event{
		Type:    event.LootDropped,
		Payload: "not a payload",
	})
	assert.NoError(t, err)
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/api/v1/stats/{player}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/stats/{player}", "418"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/stats/alice", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.InDelta(t, before+1, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/stats/{player}", "418")), 1e-9)
}
