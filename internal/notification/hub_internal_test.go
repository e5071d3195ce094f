package notification

import (
	"sync"
	"testing"

	"farmacia-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestTerminalSequencesAreEvicted(t *testing.T) {
	hub := NewHub()

	for i := uint(1); i <= maxTerminalSeqs+1; i++ {
		hub.Publish(10, OrderUpdate{OrderID: i, Status: models.StatusCompleted, Seq: 1})
	}

	hub.mu.Lock()
	defer hub.mu.Unlock()
	assert.Len(t, hub.lastSeq, maxTerminalSeqs)
	// el pedido cerrado más viejo salió del mapa, el más nuevo sigue
	assert.NotContains(t, hub.lastSeq, uint(1))
	assert.Contains(t, hub.lastSeq, uint(maxTerminalSeqs+1))
}

func TestTerminalSequenceStillGuardsBeforeEviction(t *testing.T) {
	hub := NewHub()

	canceled := OrderUpdate{OrderID: 5, Status: models.StatusCanceled, Seq: 3}
	assert.True(t, hub.Publish(20, canceled))
	// mientras la entrada siga en el mapa, el duplicado se descarta
	assert.False(t, hub.Publish(20, canceled))
}

func TestPublishConcurrentOrders(t *testing.T) {
	hub := NewHub()

	var wg sync.WaitGroup
	for i := uint(1); i <= 50; i++ {
		wg.Add(1)
		go func(orderID uint) {
			defer wg.Done()
			for seq := uint(1); seq <= 10; seq++ {
				hub.Publish(orderID, OrderUpdate{OrderID: orderID, Status: models.StatusInProgress, Seq: seq})
			}
		}(i)
	}
	wg.Wait()

	hub.mu.Lock()
	defer hub.mu.Unlock()
	for i := uint(1); i <= 50; i++ {
		assert.Equal(t, uint(10), hub.lastSeq[i])
	}
}
