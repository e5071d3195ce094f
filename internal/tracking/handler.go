package tracking

import (
	"farmacia-backend/internal/auth"
	"farmacia-backend/internal/checkout"
	"farmacia-backend/internal/database"
	"farmacia-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type StepResponse struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type TrackingResponse struct {
	OrderID       uint                 `json:"order_id"`
	Number        string               `json:"number"`
	Status        models.OrderStatus   `json:"status"`
	StatusSeq     uint                 `json:"status_seq"`
	Type          models.OrderType     `json:"type"`
	PaymentMethod models.PaymentMethod `json:"payment_method"`
	Steps         []StepResponse       `json:"steps"`
	CurrentStep   int                  `json:"current_step"`
	View          checkout.View        `json:"view"`
	Total         float64              `json:"total"`
}

// GET /api/orders/:id/tracking — estado autoritativo del pedido junto con el
// stepper y la vista que corresponde renderizar. El cliente lo consulta al
// montar la vista y cada vez que el canal de notificaciones le avisa de un
// cambio; como la respuesta trae la secuencia del pedido, una respuesta
// vieja que llega tarde se reconoce y se descarta.
func GetOrderTrackingHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var order models.Order
		if err := database.DB.First(&order, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Pedido no encontrado")
		}
		if order.UserID != userID && !auth.IsAdmin(c) {
			return fiber.NewError(fiber.StatusForbidden, "Este pedido no te pertenece")
		}

		steps := checkout.StepsForOrder(&order)
		res := TrackingResponse{
			OrderID:       order.ID,
			Number:        order.Number,
			Status:        order.Status,
			StatusSeq:     order.StatusSeq,
			Type:          order.Type,
			PaymentMethod: order.PaymentMethod,
			Steps:         make([]StepResponse, 0, len(steps)),
			CurrentStep:   checkout.CurrentStep(steps, order.Status, order.Type),
			View:          checkout.ViewFor(order.Status, order.Type, order.PaymentMethod),
			Total:         order.Total,
		}
		for _, s := range steps {
			res.Steps = append(res.Steps, StepResponse{Key: s.Key(), Label: s.Label()})
		}

		return c.JSON(res)
	}
}
