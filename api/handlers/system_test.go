package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemStats(t *testing.T) {
	r := setupRouter(t)
	alice := createTestUser(t)

	w := doJSON(r, "GET", "/api/v1/system/stats", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))

	// Без Redis очередь недоступна, но эндпоинт отвечает
	assert.Contains(t, stats, "ws_connected_users")
	assert.Contains(t, stats, "queue_error")
	assert.EqualValues(t, 5, stats["queue_workers"])
}
