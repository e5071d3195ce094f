package payment

import (
	"strings"

	"farmacia-backend/internal/auth"
	"farmacia-backend/internal/database"
	"farmacia-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateConfirmationRequest struct {
	OrderID     uint   `json:"order_id"`
	Bank        string `json:"bank"`
	Reference   string `json:"reference"`
	DocumentID  string `json:"document_id"`
	PhoneNumber string `json:"phone_number"`
}

type ConfirmationResponse struct {
	ID          uint   `json:"id"`
	OrderID     uint   `json:"order_id"`
	Bank        string `json:"bank"`
	Reference   string `json:"reference"`
	DocumentID  string `json:"document_id"`
	PhoneNumber string `json:"phone_number"`
	CreatedAt   string `json:"created_at"`
}

func confirmationResponse(pc *models.PaymentConfirmation) ConfirmationResponse {
	return ConfirmationResponse{
		ID:          pc.ID,
		OrderID:     pc.OrderID,
		Bank:        pc.Bank,
		Reference:   pc.Reference,
		DocumentID:  pc.DocumentID,
		PhoneNumber: pc.PhoneNumber,
		CreatedAt:   pc.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// POST /api/payment-confirmations — el cliente registra el comprobante de su
// transferencia o pago móvil. El pedido queda esperando que un administrador
// verifique el pago y lo apruebe; este endpoint no cambia el estado.
func CreateConfirmationHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var body CreateConfirmationRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.Bank = strings.TrimSpace(body.Bank)
		body.Reference = strings.TrimSpace(body.Reference)
		body.DocumentID = strings.TrimSpace(body.DocumentID)
		if body.OrderID == 0 || body.Bank == "" || body.Reference == "" || body.DocumentID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Banco, referencia, documento y pedido son obligatorios")
		}

		var order models.Order
		if err := database.DB.First(&order, body.OrderID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Pedido no encontrado")
		}
		if order.UserID != userID {
			return fiber.NewError(fiber.StatusForbidden, "Este pedido no te pertenece")
		}
		if !order.PaymentMethod.RequiresConfirmation() {
			return fiber.NewError(fiber.StatusBadRequest, "Este método de pago no lleva comprobante")
		}
		if order.Status.Terminal() {
			return fiber.NewError(fiber.StatusConflict, "El pedido ya fue cerrado")
		}

		var exist models.PaymentConfirmation
		if err := database.DB.Where("order_id = ?", order.ID).First(&exist).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "El pedido ya tiene un comprobante registrado")
		}

		pc := models.PaymentConfirmation{
			OrderID:     order.ID,
			UserID:      userID,
			Bank:        body.Bank,
			Reference:   body.Reference,
			DocumentID:  body.DocumentID,
			PhoneNumber: strings.TrimSpace(body.PhoneNumber),
		}

		if err := database.DB.Create(&pc).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo registrar el comprobante")
		}

		return c.Status(fiber.StatusCreated).JSON(confirmationResponse(&pc))
	}
}

// GET /api/admin/payment-confirmations?order_id= — los administradores
// revisan los comprobantes pendientes antes de aprobar el pedido.
func ListConfirmationsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Order("created_at DESC")
		if orderID := c.Query("order_id"); orderID != "" {
			q = q.Where("order_id = ?", orderID)
		}

		var confirmations []models.PaymentConfirmation
		if err := q.Find(&confirmations).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los comprobantes")
		}

		res := make([]ConfirmationResponse, 0, len(confirmations))
		for i := range confirmations {
			res = append(res, confirmationResponse(&confirmations[i]))
		}
		return c.JSON(res)
	}
}
