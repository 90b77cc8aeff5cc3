package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshNotifierCoalesces(t *testing.T) {
	n := NewRefreshNotifier(50 * time.Millisecond)

	n.Notify("events", []int64{1, 2})
	n.Notify("events", []int64{1})
	n.Notify("attendees", []int64{1})

	n.mu.Lock()
	require.Len(t, n.pending, 2)
	assert.Len(t, n.pending[1], 2)
	assert.Len(t, n.pending[2], 1)
	require.NotNil(t, n.timer)
	n.mu.Unlock()

	// После окна дебаунса пачка уходит и накопитель пуст
	time.Sleep(150 * time.Millisecond)

	n.mu.Lock()
	assert.Empty(t, n.pending)
	assert.Nil(t, n.timer)
	n.mu.Unlock()
}

func TestRefreshNotifierNewBatchAfterFlush(t *testing.T) {
	n := NewRefreshNotifier(20 * time.Millisecond)

	n.Notify("events", []int64{7})
	time.Sleep(80 * time.Millisecond)

	n.Notify("profiles", []int64{7})
	n.mu.Lock()
	assert.Len(t, n.pending, 1)
	assert.NotNil(t, n.timer)
	n.mu.Unlock()
}
