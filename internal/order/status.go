package order

import "farmacia-backend/internal/models"

// rank: progresión normal de un pedido. canceled no tiene rango porque es
// alcanzable desde cualquier estado no terminal.
var rank = map[models.OrderStatus]int{
	models.StatusRequested:      1,
	models.StatusApproved:       2,
	models.StatusInProgress:     3,
	models.StatusReadyForPickup: 4,
	models.StatusCompleted:      5,
}

// CanTransition decide si un pedido puede pasar de un estado a otro.
// Los estados terminales no admiten más transiciones; hacia adelante se
// permite saltar etapas (un pedido en efectivo puede ir de requested a
// in_progress sin pasar por approved).
func CanTransition(from, to models.OrderStatus) bool {
	if from.Terminal() || from == to {
		return false
	}
	if to == models.StatusCanceled {
		return true
	}
	fromRank, okFrom := rank[from]
	toRank, okTo := rank[to]
	if !okFrom || !okTo {
		return false
	}
	return toRank > fromRank
}

// ValidStatus: estados que un administrador puede fijar.
func ValidStatus(s models.OrderStatus) bool {
	switch s {
	case models.StatusRequested, models.StatusApproved, models.StatusInProgress,
		models.StatusReadyForPickup, models.StatusCanceled, models.StatusCompleted:
		return true
	default:
		return false
	}
}
