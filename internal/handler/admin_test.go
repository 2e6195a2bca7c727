package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LootForge_Go/internal/loot"
)

func TestHandleReload(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		reloader := &MockReloader{}
		reloader.On("Reload", mock.Anything).Return(ReloadSummary{Table: "forest", Pools: 3, Items: 12}, nil)

		w := httptest.NewRecorder()
		HandleReload(reloader)(w, httptest.NewRequest(http.MethodPost, "/admin/reload", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var resp ReloadResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, MsgReloadSuccess, resp.Message)
		assert.Equal(t, "forest", resp.Summary.Table)
		reloader.AssertExpectations(t)
	})

	t.Run("failure keeps details out of the response", func(t *testing.T) {
		reloader := &MockReloader{}
		reloader.On("Reload", mock.Anything).Return(ReloadSummary{}, assert.AnError)

		w := httptest.NewRecorder()
		HandleReload(reloader)(w, httptest.NewRequest(http.MethodPost, "/admin/reload", nil))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgReloadFailed)
		assert.NotContains(t, w.Body.String(), assert.AnError.Error())
	})
}

func TestHandleDifficulty(t *testing.T) {
	InitValidator()
	curve := loot.NewDifficultyCurve(11, 0)

	w := httptest.NewRecorder()
	HandleSetDifficulty(curve)(w, httptest.NewRequest(http.MethodPut, "/admin/difficulty", jsonBody(`{"alpha": 0.5}`)))
	require.Equal(t, http.StatusOK, w.Code)

	var resp DifficultyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 0.5, resp.Alpha, 1e-9)
	assert.InDelta(t, 6.0, resp.Scalar, 1e-9)

	w = httptest.NewRecorder()
	HandleGetDifficulty(curve)(w, httptest.NewRequest(http.MethodGet, "/admin/difficulty", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"alpha":0.5`)

	tests := []struct {
		name string
		body string
	}{
		{"missing alpha", `{}`},
		{"above one", `{"alpha": 1.5}`},
		{"negative", `{"alpha": -0.1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			HandleSetDifficulty(curve)(w, httptest.NewRequest(http.MethodPut, "/admin/difficulty", jsonBody(tt.body)))
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
	assert.InDelta(t, 0.5, curve.Alpha(), 1e-9)

	w = httptest.NewRecorder()
	HandleSetDifficulty(nil)(w, httptest.NewRequest(http.MethodPut, "/admin/difficulty", jsonBody(`{"alpha": 0.5}`)))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
