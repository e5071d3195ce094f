package coupon

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"farmacia-backend/internal/audit"
	"farmacia-backend/internal/auth"
	"farmacia-backend/internal/checkout"
	"farmacia-backend/internal/database"
	"farmacia-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateCouponRequest struct {
	Code            string  `json:"code"`
	DiscountPercent float64 `json:"discount_percent"`
	MinPurchase     float64 `json:"min_purchase"`
	ExpirationDate  string  `json:"expiration_date"` // YYYY-MM-DD
}

type UpdateCouponRequest struct {
	DiscountPercent *float64 `json:"discount_percent"`
	MinPurchase     *float64 `json:"min_purchase"`
	ExpirationDate  *string  `json:"expiration_date"`
	IsActive        *bool    `json:"is_active"`
}

type CouponResponse struct {
	ID              uint    `json:"id"`
	Code            string  `json:"code"`
	DiscountPercent float64 `json:"discount_percent"`
	MinPurchase     float64 `json:"min_purchase"`
	ExpirationDate  string  `json:"expiration_date"`
	IsActive        bool    `json:"is_active"`
}

func writeCouponLog(c *fiber.Ctx, action models.AuditAction, cp *models.Coupon, desc string) {
	userID, err := auth.UserID(c)
	if err != nil {
		return
	}
	var admin models.User
	if err := database.DB.First(&admin, userID).Error; err != nil {
		return
	}
	_ = audit.WriteLog(audit.LogOptions{
		UserID:      userID,
		UserName:    admin.Name,
		EntityType:  "coupon",
		EntityID:    cp.ID,
		Action:      action,
		Description: desc,
		After:       cp,
	})
}

func couponResponse(cp *models.Coupon) CouponResponse {
	return CouponResponse{
		ID:              cp.ID,
		Code:            cp.Code,
		DiscountPercent: cp.DiscountPercent,
		MinPurchase:     cp.MinPurchase,
		ExpirationDate:  cp.ExpirationDate.Format("2006-01-02"),
		IsActive:        cp.IsActive,
	}
}

// GET /api/coupons/:code?subtotal= — valida el cupón contra un subtotal dado
// y devuelve el descuento que aplicaría. Los errores de negocio del cupón se
// distinguen de las fallas genéricas.
func GetByCodeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		code := strings.ToUpper(strings.TrimSpace(c.Params("code")))

		var cp models.Coupon
		if err := database.DB.Where("code = ?", code).First(&cp).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Cupón no encontrado")
		}

		subtotal, _ := strconv.ParseFloat(c.Query("subtotal", "0"), 64)
		items := []checkout.QuoteItem{{UnitPrice: subtotal, Quantity: 1}}
		quote, err := checkout.ComputeQuote(items, &cp, time.Now())
		switch {
		case errors.Is(err, checkout.ErrCouponExpired):
			return fiber.NewError(fiber.StatusBadRequest, "El cupón está expirado")
		case errors.Is(err, checkout.ErrCouponInactive):
			return fiber.NewError(fiber.StatusBadRequest, "El cupón no está activo")
		case errors.Is(err, checkout.ErrCouponMinPurchase):
			return fiber.NewError(fiber.StatusBadRequest, "El monto de la compra no alcanza el mínimo del cupón")
		case err != nil:
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo validar el cupón")
		}

		return c.JSON(fiber.Map{
			"coupon":   couponResponse(&cp),
			"discount": quote.CouponDiscount,
		})
	}
}

// POST /api/admin/coupons
func CreateCouponHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateCouponRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		code := strings.ToUpper(strings.TrimSpace(body.Code))
		if code == "" {
			return fiber.NewError(fiber.StatusBadRequest, "El código del cupón no puede estar vacío")
		}
		if body.DiscountPercent <= 0 || body.DiscountPercent > 100 {
			return fiber.NewError(fiber.StatusBadRequest, "El porcentaje de descuento debe estar entre 1 y 100")
		}

		expiration, err := time.Parse("2006-01-02", body.ExpirationDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Fecha de expiración inválida, usa YYYY-MM-DD")
		}

		var exist models.Coupon
		if err := database.DB.Where("code = ?", code).First(&exist).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Ya existe un cupón con ese código")
		}

		cp := models.Coupon{
			Code:            code,
			DiscountPercent: body.DiscountPercent,
			MinPurchase:     body.MinPurchase,
			ExpirationDate:  expiration,
			IsActive:        true,
		}

		if err := database.DB.Create(&cp).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el cupón")
		}

		writeCouponLog(c, models.AuditActionCreate, &cp, "Cupón creado: "+cp.Code)

		return c.Status(fiber.StatusCreated).JSON(couponResponse(&cp))
	}
}

// GET /api/admin/coupons
func ListCouponsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var coupons []models.Coupon
		if err := database.DB.Order("created_at DESC").Find(&coupons).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los cupones")
		}

		res := make([]CouponResponse, 0, len(coupons))
		for i := range coupons {
			res = append(res, couponResponse(&coupons[i]))
		}
		return c.JSON(res)
	}
}

// PUT /api/admin/coupons/:id
func UpdateCouponHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var cp models.Coupon
		if err := database.DB.First(&cp, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Cupón no encontrado")
		}

		var body UpdateCouponRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		if body.DiscountPercent != nil {
			if *body.DiscountPercent <= 0 || *body.DiscountPercent > 100 {
				return fiber.NewError(fiber.StatusBadRequest, "El porcentaje de descuento debe estar entre 1 y 100")
			}
			cp.DiscountPercent = *body.DiscountPercent
		}
		if body.MinPurchase != nil {
			cp.MinPurchase = *body.MinPurchase
		}
		if body.ExpirationDate != nil {
			expiration, err := time.Parse("2006-01-02", *body.ExpirationDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Fecha de expiración inválida, usa YYYY-MM-DD")
			}
			cp.ExpirationDate = expiration
		}
		if body.IsActive != nil {
			cp.IsActive = *body.IsActive
		}

		if err := database.DB.Save(&cp).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el cupón")
		}

		writeCouponLog(c, models.AuditActionUpdate, &cp, "Cupón actualizado: "+cp.Code)

		return c.JSON(couponResponse(&cp))
	}
}

// DELETE /api/admin/coupons/:id
func DeleteCouponHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := database.DB.Delete(&models.Coupon{}, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar el cupón")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
