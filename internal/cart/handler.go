package cart

import (
	"time"

	"farmacia-backend/internal/auth"
	"farmacia-backend/internal/checkout"
	"farmacia-backend/internal/database"
	"farmacia-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm/clause"
)

// Store implementa order.CartClearer sobre la base de datos.
type Store struct{}

func (Store) ClearCart(userID uint) error {
	return database.DB.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}

type AddItemRequest struct {
	ProductPresentationID uint `json:"product_presentation_id"`
	Quantity              int  `json:"quantity"`
}

type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

type CartItemResponse struct {
	ID                    uint    `json:"id"`
	ProductPresentationID uint    `json:"product_presentation_id"`
	ProductName           string  `json:"product_name"`
	PresentationName      string  `json:"presentation_name"`
	UnitPrice             float64 `json:"unit_price"`
	DiscountPercent       float64 `json:"discount_percent"`
	Quantity              int     `json:"quantity"`
}

func itemResponses(items []models.CartItem) []CartItemResponse {
	res := make([]CartItemResponse, 0, len(items))
	for _, it := range items {
		r := CartItemResponse{
			ID:                    it.ID,
			ProductPresentationID: it.ProductPresentationID,
			Quantity:              it.Quantity,
		}
		if it.ProductPresentation != nil {
			r.PresentationName = it.ProductPresentation.Name
			r.UnitPrice = it.ProductPresentation.Price
			r.DiscountPercent = it.ProductPresentation.DiscountPercent
			if it.ProductPresentation.Product != nil {
				r.ProductName = it.ProductPresentation.Product.Name
			}
		}
		res = append(res, r)
	}
	return res
}

func loadItems(userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := database.DB.
		Preload("ProductPresentation").
		Preload("ProductPresentation.Product").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

// GET /api/cart — líneas del carrito con la cotización completa; el cupón de
// la sesión se aplica aquí para que todos los totales salgan del mismo
// cálculo.
func GetCartHandler(sessions checkout.SessionStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		items, err := loadItems(userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo leer el carrito")
		}

		var coupon *models.Coupon
		if sess, err := sessions.Get(userID); err == nil && sess.CouponCode != "" {
			var cp models.Coupon
			if err := database.DB.Where("code = ?", sess.CouponCode).First(&cp).Error; err == nil {
				coupon = &cp
			}
		}

		quote, err := checkout.ComputeQuote(checkout.QuoteItemsFromCart(items), coupon, time.Now())
		if err != nil {
			// el cupón guardado dejó de aplicar, se cotiza sin él
			quote, _ = checkout.ComputeQuote(checkout.QuoteItemsFromCart(items), nil, time.Now())
		}

		return c.JSON(fiber.Map{
			"items": itemResponses(items),
			"quote": quote,
		})
	}
}

// POST /api/cart/items — agrega una presentación al carrito; si ya estaba,
// reemplaza la cantidad.
func AddItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var body AddItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}
		if body.ProductPresentationID == 0 || body.Quantity <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Producto o cantidad inválidos")
		}

		var pres models.ProductPresentation
		if err := database.DB.First(&pres, "id = ? AND is_active = ?", body.ProductPresentationID, true).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Producto no disponible")
		}
		if pres.Stock < body.Quantity {
			return fiber.NewError(fiber.StatusBadRequest, "No hay suficiente existencia")
		}

		item := models.CartItem{
			UserID:                userID,
			ProductPresentationID: body.ProductPresentationID,
			Quantity:              body.Quantity,
		}
		err = database.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_presentation_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"quantity": body.Quantity}),
		}).Create(&item).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo agregar al carrito")
		}

		return c.SendStatus(fiber.StatusCreated)
	}
}

// PUT /api/cart/items/:id
func UpdateItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var body UpdateItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}
		if body.Quantity <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Cantidad inválida")
		}

		var item models.CartItem
		if err := database.DB.First(&item, "id = ? AND user_id = ?", c.Params("id"), userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Artículo no encontrado en el carrito")
		}

		item.Quantity = body.Quantity
		if err := database.DB.Save(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el carrito")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DELETE /api/cart/items/:id
func RemoveItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		if err := database.DB.
			Where("id = ? AND user_id = ?", c.Params("id"), userID).
			Delete(&models.CartItem{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo quitar el artículo")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DELETE /api/cart
func ClearCartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		if err := (Store{}).ClearCart(userID); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo vaciar el carrito")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
