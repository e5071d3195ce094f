package notification_test

import (
	"testing"

	"farmacia-backend/internal/models"
	"farmacia-backend/internal/notification"

	"github.com/stretchr/testify/assert"
)

func TestPublishDropsStaleSequences(t *testing.T) {
	hub := notification.NewHub()

	first := notification.OrderUpdate{OrderID: 1, Status: models.StatusApproved, Seq: 1}
	second := notification.OrderUpdate{OrderID: 1, Status: models.StatusInProgress, Seq: 2}

	assert.True(t, hub.Publish(10, first))
	assert.True(t, hub.Publish(10, second))

	// una respuesta vieja que llega tarde no debe pisar a la más reciente
	assert.False(t, hub.Publish(10, first))
	// y un duplicado del último evento tampoco se entrega dos veces
	assert.False(t, hub.Publish(10, second))
}

func TestPublishCancellationExactlyOnce(t *testing.T) {
	hub := notification.NewHub()

	canceled := notification.OrderUpdate{OrderID: 5, Status: models.StatusCanceled, Seq: 3}

	assert.True(t, hub.Publish(20, canceled))
	assert.False(t, hub.Publish(20, canceled))
}

func TestSequencesAreIndependentPerOrder(t *testing.T) {
	hub := notification.NewHub()

	assert.True(t, hub.Publish(10, notification.OrderUpdate{OrderID: 1, Status: models.StatusApproved, Seq: 5}))
	assert.True(t, hub.Publish(10, notification.OrderUpdate{OrderID: 2, Status: models.StatusApproved, Seq: 1}))
}
