package checkout

import (
	"errors"
	"strings"
	"time"

	"farmacia-backend/internal/auth"
	"farmacia-backend/internal/database"
	"farmacia-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type SetDeliveryMethodRequest struct {
	DeliveryMethod models.DeliveryMethod `json:"delivery_method"`
}

type SetPaymentMethodRequest struct {
	PaymentMethod models.PaymentMethod `json:"payment_method"`
}

type SetBranchRequest struct {
	BranchID uint `json:"branch_id"`
}

type SetAddressRequest struct {
	UserAddressID uint `json:"user_address_id"`
}

type ApplyCouponRequest struct {
	Code string `json:"code"`
}

type StepResponse struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type SessionResponse struct {
	DeliveryMethod models.DeliveryMethod  `json:"delivery_method"`
	PaymentMethod  models.PaymentMethod   `json:"payment_method"`
	BranchID       uint                   `json:"branch_id"`
	BranchLabel    string                 `json:"branch_label"`
	UserAddressID  uint                   `json:"user_address_id"`
	CouponCode     string                 `json:"coupon_code"`
	CouponDiscount float64                `json:"coupon_discount"`
	OrderID        uint                   `json:"order_id"`
	Locked         bool                   `json:"locked"`
	Steps          []StepResponse         `json:"steps"`
	ValidPayments  []models.PaymentMethod `json:"valid_payment_methods"`
}

func stepResponses(steps []Step) []StepResponse {
	out := make([]StepResponse, 0, len(steps))
	for _, s := range steps {
		out = append(out, StepResponse{Key: s.Key(), Label: s.Label()})
	}
	return out
}

func sessionResponse(s models.CheckoutSession) SessionResponse {
	return SessionResponse{
		DeliveryMethod: s.DeliveryMethod,
		PaymentMethod:  s.PaymentMethod,
		BranchID:       s.BranchID,
		BranchLabel:    s.BranchLabel,
		UserAddressID:  s.UserAddressID,
		CouponCode:     s.CouponCode,
		CouponDiscount: s.CouponDiscount,
		OrderID:        s.OrderID,
		Locked:         s.Locked,
		Steps:          stepResponses(StepsFor(s.DeliveryMethod, s.PaymentMethod)),
		ValidPayments:  models.PaymentMethodsFor(s.DeliveryMethod),
	}
}

func storeErr(err error) error {
	switch {
	case errors.Is(err, ErrSessionLocked):
		return fiber.NewError(fiber.StatusConflict, "El pedido fue anulado, reinicia el checkout para continuar")
	case errors.Is(err, ErrInvalidMethod):
		return fiber.NewError(fiber.StatusBadRequest, "Método de entrega inválido")
	case errors.Is(err, ErrInvalidPayment):
		return fiber.NewError(fiber.StatusBadRequest, "Método de pago inválido para el método de entrega actual")
	case errors.Is(err, ErrWrongDelivery):
		return fiber.NewError(fiber.StatusBadRequest, "La selección no corresponde al método de entrega actual")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "No se pudo guardar la selección")
	}
}

// GET /api/checkout/session
func GetSessionHandler(store SessionStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}
		s, err := store.Get(userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo leer la sesión de checkout")
		}
		return c.JSON(sessionResponse(s))
	}
}

// PUT /api/checkout/delivery-method
func SetDeliveryMethodHandler(store SessionStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}
		var body SetDeliveryMethodRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}
		s, err := store.SetDeliveryMethod(userID, body.DeliveryMethod)
		if err != nil {
			return storeErr(err)
		}
		return c.JSON(sessionResponse(s))
	}
}

// PUT /api/checkout/payment-method
func SetPaymentMethodHandler(store SessionStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}
		var body SetPaymentMethodRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}
		s, err := store.SetPaymentMethod(userID, body.PaymentMethod)
		if err != nil {
			return storeErr(err)
		}
		return c.JSON(sessionResponse(s))
	}
}

// PUT /api/checkout/branch
func SetBranchHandler(store SessionStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}
		var body SetBranchRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}
		if body.BranchID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Debes seleccionar una sucursal")
		}

		var branch models.Branch
		if err := database.DB.First(&branch, "id = ? AND is_active = ?", body.BranchID, true).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sucursal no encontrada")
		}

		s, err := store.SetBranch(userID, branch.ID, branch.Name)
		if err != nil {
			return storeErr(err)
		}
		return c.JSON(sessionResponse(s))
	}
}

// PUT /api/checkout/address
func SetAddressHandler(store SessionStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}
		var body SetAddressRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}
		if body.UserAddressID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Debes seleccionar una dirección")
		}

		var addr models.UserAddress
		if err := database.DB.First(&addr, "id = ? AND user_id = ?", body.UserAddressID, userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Dirección no encontrada")
		}

		s, err := store.SetAddress(userID, addr.ID)
		if err != nil {
			return storeErr(err)
		}
		return c.JSON(sessionResponse(s))
	}
}

// POST /api/checkout/coupon — valida el cupón contra el carrito actual y
// guarda el descuento calculado en la sesión.
func ApplyCouponHandler(store SessionStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}
		var body ApplyCouponRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}
		code := strings.ToUpper(strings.TrimSpace(body.Code))
		if code == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Debes indicar un código de cupón")
		}

		var coupon models.Coupon
		if err := database.DB.Where("code = ?", code).First(&coupon).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Cupón no encontrado")
		}

		var items []models.CartItem
		if err := database.DB.Preload("ProductPresentation").
			Where("user_id = ?", userID).Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo leer el carrito")
		}

		quote, err := ComputeQuote(QuoteItemsFromCart(items), &coupon, time.Now())
		switch {
		case errors.Is(err, ErrCouponExpired):
			return fiber.NewError(fiber.StatusBadRequest, "El cupón está expirado")
		case errors.Is(err, ErrCouponInactive):
			return fiber.NewError(fiber.StatusBadRequest, "El cupón no está activo")
		case errors.Is(err, ErrCouponMinPurchase):
			return fiber.NewError(fiber.StatusBadRequest, "El monto de la compra no alcanza el mínimo del cupón")
		case err != nil:
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo aplicar el cupón")
		}

		s, err := store.SetCoupon(userID, coupon.Code, quote.CouponDiscount)
		if err != nil {
			return storeErr(err)
		}

		return c.JSON(fiber.Map{
			"session": sessionResponse(s),
			"quote":   quote,
		})
	}
}

// DELETE /api/checkout/coupon
func RemoveCouponHandler(store SessionStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}
		s, err := store.ClearCoupon(userID)
		if err != nil {
			return storeErr(err)
		}
		return c.JSON(sessionResponse(s))
	}
}

// POST /api/checkout/reset — comienza un checkout nuevo (también desbloquea
// una sesión congelada por un rechazo).
func ResetSessionHandler(store SessionStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}
		s, err := store.Reset(userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo reiniciar la sesión")
		}
		return c.JSON(sessionResponse(s))
	}
}

// GET /api/checkout/steps?current=<key> — previsualización del stepper antes
// de que exista un pedido: el paso actual sale del paso que el cliente está
// viendo, 0 si no coincide.
func StepsHandler(store SessionStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}
		s, err := store.Get(userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo leer la sesión de checkout")
		}
		steps := StepsFor(s.DeliveryMethod, s.PaymentMethod)
		return c.JSON(fiber.Map{
			"steps":        stepResponses(steps),
			"current_step": StepIndexByKey(steps, c.Query("current")),
		})
	}
}
