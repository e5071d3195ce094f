package order

import (
	"errors"
	"fmt"
	"log"
	"time"

	"farmacia-backend/internal/audit"
	"farmacia-backend/internal/auth"
	"farmacia-backend/internal/checkout"
	"farmacia-backend/internal/database"
	"farmacia-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// couponCodeFor: el código que queda grabado en el pedido. Si el cupón fue
// borrado desde que se aplicó, el pedido no debe arrastrar un código sin
// descuento.
func couponCodeFor(coupon *models.Coupon, code string) string {
	if coupon == nil {
		return ""
	}
	return code
}

type CreateOrderProduct struct {
	ProductPresentationID uint `json:"product_presentation_id"`
	Quantity              int  `json:"quantity"`
}

type CreateOrderRequest struct {
	Type          models.OrderType     `json:"type"`
	Products      []CreateOrderProduct `json:"products"`
	BranchID      *uint                `json:"branch_id"`
	UserAddressID *uint                `json:"user_address_id"`
}

type OrderDetailResponse struct {
	ProductPresentationID uint    `json:"product_presentation_id"`
	ProductName           string  `json:"product_name"`
	PresentationName      string  `json:"presentation_name"`
	UnitPrice             float64 `json:"unit_price"`
	DiscountPercent       float64 `json:"discount_percent"`
	Quantity              int     `json:"quantity"`
	LineTotal             float64 `json:"line_total"`
}

type OrderResponse struct {
	ID             uint                  `json:"id"`
	Number         string                `json:"number"`
	Type           models.OrderType      `json:"type"`
	PaymentMethod  models.PaymentMethod  `json:"payment_method"`
	Status         models.OrderStatus    `json:"status"`
	StatusSeq      uint                  `json:"status_seq"`
	BranchID       *uint                 `json:"branch_id"`
	UserAddressID  *uint                 `json:"user_address_id"`
	CouponCode     string                `json:"coupon_code"`
	Subtotal       float64               `json:"subtotal"`
	ItemDiscount   float64               `json:"item_discount"`
	CouponDiscount float64               `json:"coupon_discount"`
	Total          float64               `json:"total"`
	Details        []OrderDetailResponse `json:"details,omitempty"`
	CreatedAt      string                `json:"created_at"`
}

func orderResponse(o *models.Order) OrderResponse {
	res := OrderResponse{
		ID:             o.ID,
		Number:         o.Number,
		Type:           o.Type,
		PaymentMethod:  o.PaymentMethod,
		Status:         o.Status,
		StatusSeq:      o.StatusSeq,
		BranchID:       o.BranchID,
		UserAddressID:  o.UserAddressID,
		CouponCode:     o.CouponCode,
		Subtotal:       o.Subtotal,
		ItemDiscount:   o.ItemDiscount,
		CouponDiscount: o.CouponDiscount,
		Total:          o.Total,
		CreatedAt:      o.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	for _, d := range o.Details {
		res.Details = append(res.Details, OrderDetailResponse{
			ProductPresentationID: d.ProductPresentationID,
			ProductName:           d.ProductName,
			PresentationName:      d.PresentationName,
			UnitPrice:             d.UnitPrice,
			DiscountPercent:       d.DiscountPercent,
			Quantity:              d.Quantity,
			LineTotal:             d.LineTotal,
		})
	}
	return res
}

// POST /api/orders — crea el pedido con los precios congelados del catálogo
// y el método de pago que quedó en la sesión de checkout.
func CreateOrderHandler(store checkout.SessionStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var body CreateOrderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		if body.Type != models.OrderTypePickup && body.Type != models.OrderTypeDelivery {
			return fiber.NewError(fiber.StatusBadRequest, "Debes elegir un método de entrega")
		}
		if len(body.Products) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "El pedido no tiene productos")
		}

		sess, err := store.Get(userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo leer la sesión de checkout")
		}
		if sess.Locked {
			return fiber.NewError(fiber.StatusConflict, "El pedido anterior fue anulado, reinicia el checkout")
		}

		payment := sess.PaymentMethod
		if !payment.ValidFor(body.Type.DeliveryMethod()) {
			return fiber.NewError(fiber.StatusBadRequest, "Debes elegir un método de pago válido")
		}

		// sucursal o dirección, exactamente una según el tipo
		var branchID, addressID *uint
		switch body.Type {
		case models.OrderTypePickup:
			bid := sess.BranchID
			if body.BranchID != nil {
				bid = *body.BranchID
			}
			if bid == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Debes seleccionar una sucursal de retiro")
			}
			var branch models.Branch
			if err := database.DB.First(&branch, "id = ? AND is_active = ?", bid, true).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Sucursal no encontrada")
			}
			branchID = &branch.ID
		case models.OrderTypeDelivery:
			aid := sess.UserAddressID
			if body.UserAddressID != nil {
				aid = *body.UserAddressID
			}
			if aid == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Debes seleccionar una dirección de entrega")
			}
			var addr models.UserAddress
			if err := database.DB.First(&addr, "id = ? AND user_id = ?", aid, userID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Dirección no encontrada")
			}
			addressID = &addr.ID
		}

		// cupón de la sesión, si hay
		var coupon *models.Coupon
		if sess.CouponCode != "" {
			var cp models.Coupon
			if err := database.DB.Where("code = ?", sess.CouponCode).First(&cp).Error; err == nil {
				coupon = &cp
			}
		}
		couponCode := couponCodeFor(coupon, sess.CouponCode)

		var details []models.OrderDetail
		var quoteItems []checkout.QuoteItem
		for _, p := range body.Products {
			if p.Quantity <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Cantidad inválida en el pedido")
			}
			var pres models.ProductPresentation
			if err := database.DB.Preload("Product").
				First(&pres, "id = ? AND is_active = ?", p.ProductPresentationID, true).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Producto no disponible")
			}
			if pres.Stock < p.Quantity {
				return fiber.NewError(fiber.StatusBadRequest, "No hay suficiente existencia de "+pres.Product.Name)
			}

			line := pres.Price * float64(p.Quantity)
			discount := line * pres.DiscountPercent / 100
			details = append(details, models.OrderDetail{
				ProductPresentationID: pres.ID,
				ProductName:           pres.Product.Name,
				PresentationName:      pres.Name,
				UnitPrice:             pres.Price,
				DiscountPercent:       pres.DiscountPercent,
				Quantity:              p.Quantity,
				LineTotal:             line - discount,
			})
			quoteItems = append(quoteItems, checkout.QuoteItem{
				UnitPrice:       pres.Price,
				DiscountPercent: pres.DiscountPercent,
				Quantity:        p.Quantity,
			})
		}

		quote, err := checkout.ComputeQuote(quoteItems, coupon, time.Now())
		if err != nil {
			// el cupón dejó de ser válido entre la selección y la compra
			return fiber.NewError(fiber.StatusBadRequest, "El cupón ya no es válido, quítalo para continuar")
		}

		order := models.Order{
			Number:         uuid.NewString(),
			UserID:         userID,
			Type:           body.Type,
			PaymentMethod:  payment,
			Status:         models.StatusRequested,
			StatusSeq:      1,
			BranchID:       branchID,
			UserAddressID:  addressID,
			CouponCode:     couponCode,
			Subtotal:       quote.Subtotal,
			ItemDiscount:   quote.ItemDiscount,
			CouponDiscount: quote.CouponDiscount,
			Total:          quote.Total,
			Details:        details,
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&order).Error; err != nil {
				return err
			}
			for _, d := range details {
				res := tx.Model(&models.ProductPresentation{}).
					Where("id = ? AND stock >= ?", d.ProductPresentationID, d.Quantity).
					Update("stock", gorm.Expr("stock - ?", d.Quantity))
				if res.Error != nil {
					return res.Error
				}
				if res.RowsAffected == 0 {
					return errors.New("stock insuficiente")
				}
			}
			history := models.OrderStatusHistory{
				OrderID:   order.ID,
				ToStatus:  models.StatusRequested,
				ChangedBy: userID,
			}
			return tx.Create(&history).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el pedido")
		}

		if _, err := store.SetOrder(userID, order.ID); err != nil {
			// el pedido ya existe, la sesión se resincroniza en la próxima lectura
			log.Printf("No se pudo guardar el pedido %d en la sesión del usuario %d: %v", order.ID, userID, err)
		}

		return c.Status(fiber.StatusCreated).JSON(orderResponse(&order))
	}
}

func loadOrderForUser(c *fiber.Ctx) (*models.Order, error) {
	userID, err := auth.UserID(c)
	if err != nil {
		return nil, err
	}

	var order models.Order
	if err := database.DB.Preload("Details").First(&order, "id = ?", c.Params("id")).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Pedido no encontrado")
	}
	if order.UserID != userID && !auth.IsAdmin(c) {
		return nil, fiber.NewError(fiber.StatusForbidden, "Este pedido no te pertenece")
	}
	return &order, nil
}

// GET /api/orders/:id
func GetOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		order, err := loadOrderForUser(c)
		if err != nil {
			return err
		}
		return c.JSON(orderResponse(order))
	}
}

// GET /api/orders — pedidos del usuario autenticado, el más reciente primero.
func ListMyOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var orders []models.Order
		if err := database.DB.
			Where("user_id = ?", userID).
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los pedidos")
		}

		res := make([]OrderResponse, 0, len(orders))
		for i := range orders {
			res = append(res, orderResponse(&orders[i]))
		}
		return c.JSON(res)
	}
}

// GET /api/orders/:id/history — línea de tiempo de estados del pedido.
func OrderHistoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		order, err := loadOrderForUser(c)
		if err != nil {
			return err
		}

		var history []models.OrderStatusHistory
		if err := database.DB.
			Where("order_id = ?", order.ID).
			Order("changed_at ASC").
			Find(&history).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo leer el historial")
		}

		res := make([]fiber.Map, 0, len(history))
		for _, h := range history {
			res = append(res, fiber.Map{
				"from_status": h.FromStatus,
				"to_status":   h.ToStatus,
				"changed_at":  h.ChangedAt.Format("2006-01-02 15:04:05"),
			})
		}
		return c.JSON(res)
	}
}

type UpdateStatusRequest struct {
	Status models.OrderStatus `json:"status"`
}

// PUT /api/admin/orders/:id/status
func UpdateOrderStatusHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var body UpdateStatusRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}
		if !ValidStatus(body.Status) {
			return fiber.NewError(fiber.StatusBadRequest, "Estado de pedido inválido")
		}

		orderID, err := c.ParamsInt("id")
		if err != nil || orderID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Id de pedido inválido")
		}

		order, err := svc.UpdateStatus(uint(orderID), body.Status, userID)
		switch {
		case errors.Is(err, ErrOrderNotFound):
			return fiber.NewError(fiber.StatusNotFound, "Pedido no encontrado")
		case errors.Is(err, ErrInvalidTransition):
			return fiber.NewError(fiber.StatusConflict, "El pedido no admite esa transición de estado")
		case err != nil:
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el estado")
		}

		var admin models.User
		if err := database.DB.First(&admin, userID).Error; err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				BranchID:    order.BranchID,
				UserID:      userID,
				UserName:    admin.Name,
				EntityType:  "order",
				EntityID:    order.ID,
				Action:      models.AuditActionStatusChange,
				Description: fmt.Sprintf("Pedido %s cambió a %s", order.Number, order.Status),
				After:       fiber.Map{"status": order.Status, "status_seq": order.StatusSeq},
			})
		}

		return c.JSON(orderResponse(order))
	}
}

// GET /api/admin/orders?status=&branch_id=
func ListOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Order("created_at DESC")
		if status := c.Query("status"); status != "" {
			q = q.Where("status = ?", status)
		}
		if branchID := c.Query("branch_id"); branchID != "" {
			q = q.Where("branch_id = ?", branchID)
		}

		var orders []models.Order
		if err := q.Find(&orders).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los pedidos")
		}

		res := make([]OrderResponse, 0, len(orders))
		for i := range orders {
			res = append(res, orderResponse(&orders[i]))
		}
		return c.JSON(res)
	}
}
