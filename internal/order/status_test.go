package order

import (
	"testing"

	"farmacia-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name string
		from models.OrderStatus
		to   models.OrderStatus
		want bool
	}{
		{"progresión normal", models.StatusRequested, models.StatusApproved, true},
		{"puede saltar etapas hacia adelante", models.StatusRequested, models.StatusInProgress, true},
		{"completar desde listo para retirar", models.StatusReadyForPickup, models.StatusCompleted, true},
		{"completar desde en progreso", models.StatusInProgress, models.StatusCompleted, true},
		{"anular desde cualquier estado no terminal", models.StatusReadyForPickup, models.StatusCanceled, true},
		{"anular un pedido recién solicitado", models.StatusRequested, models.StatusCanceled, true},
		{"no retrocede", models.StatusInProgress, models.StatusApproved, false},
		{"no repite el mismo estado", models.StatusApproved, models.StatusApproved, false},
		{"completed es terminal", models.StatusCompleted, models.StatusCanceled, false},
		{"canceled es terminal", models.StatusCanceled, models.StatusApproved, false},
		{"un pedido anulado no puede completarse", models.StatusCanceled, models.StatusCompleted, false},
		{"canceled no revive", models.StatusCanceled, models.StatusRequested, false},
		{"estado desconocido", models.StatusRequested, models.OrderStatus("perdido"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanTransition(tc.from, tc.to))
		})
	}
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(models.StatusReadyForPickup))
	assert.False(t, ValidStatus(models.OrderStatus("enviado")))
}
