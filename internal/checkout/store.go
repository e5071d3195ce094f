package checkout

import (
	"errors"

	"farmacia-backend/internal/models"
)

var (
	ErrSessionLocked  = errors.New("la sesión de checkout está bloqueada por un pedido anulado")
	ErrInvalidMethod  = errors.New("método de entrega inválido")
	ErrInvalidPayment = errors.New("método de pago inválido para el método de entrega actual")
	ErrWrongDelivery  = errors.New("la selección no corresponde al método de entrega actual")
)

// SessionStore: contenedor explícito de la selección de checkout. El cliente
// original la guardaba en singletons globales; aquí es una dependencia que se
// inyecta a los handlers, con implementación en gorm y en memoria.
//
// Cada setter reemplaza el campo completo y persiste de inmediato. La lectura
// aplica valores por defecto cuando no hay nada guardado o lo guardado es
// inválido: entrega "store", pago "point_of_sale", numéricos en 0, textos
// vacíos.
type SessionStore interface {
	Get(userID uint) (models.CheckoutSession, error)
	SetDeliveryMethod(userID uint, m models.DeliveryMethod) (models.CheckoutSession, error)
	SetPaymentMethod(userID uint, m models.PaymentMethod) (models.CheckoutSession, error)
	SetBranch(userID uint, branchID uint, label string) (models.CheckoutSession, error)
	SetAddress(userID uint, addressID uint) (models.CheckoutSession, error)
	SetCoupon(userID uint, code string, discount float64) (models.CheckoutSession, error)
	ClearCoupon(userID uint) (models.CheckoutSession, error)
	SetOrder(userID uint, orderID uint) (models.CheckoutSession, error)
	ClearOrder(userID uint) error
	Lock(userID uint) error
	Reset(userID uint) (models.CheckoutSession, error)
}

// normalizeSession aplica los valores por defecto de lectura.
func normalizeSession(s *models.CheckoutSession) {
	if !s.DeliveryMethod.Valid() {
		s.DeliveryMethod = models.DeliveryStore
		s.PaymentMethod = models.DefaultPaymentMethod(models.DeliveryStore)
		return
	}
	if !s.PaymentMethod.ValidFor(s.DeliveryMethod) {
		s.PaymentMethod = models.DefaultPaymentMethod(s.DeliveryMethod)
	}
}

// applyDeliveryMethod implementa la regla de reinicio: cambiar el método de
// entrega repone el método de pago al valor por defecto del nuevo tipo y
// limpia sucursal, dirección y cupón de forma atómica.
func applyDeliveryMethod(s *models.CheckoutSession, m models.DeliveryMethod) error {
	if s.Locked {
		return ErrSessionLocked
	}
	if !m.Valid() {
		return ErrInvalidMethod
	}
	s.DeliveryMethod = m
	s.PaymentMethod = models.DefaultPaymentMethod(m)
	s.BranchID = 0
	s.BranchLabel = ""
	s.UserAddressID = 0
	s.CouponCode = ""
	s.CouponDiscount = 0
	return nil
}

func applyPaymentMethod(s *models.CheckoutSession, m models.PaymentMethod) error {
	if s.Locked {
		return ErrSessionLocked
	}
	if !m.ValidFor(s.DeliveryMethod) {
		return ErrInvalidPayment
	}
	s.PaymentMethod = m
	return nil
}

func applyBranch(s *models.CheckoutSession, branchID uint, label string) error {
	if s.Locked {
		return ErrSessionLocked
	}
	if s.DeliveryMethod != models.DeliveryStore {
		return ErrWrongDelivery
	}
	s.BranchID = branchID
	s.BranchLabel = label
	s.UserAddressID = 0
	return nil
}

func applyAddress(s *models.CheckoutSession, addressID uint) error {
	if s.Locked {
		return ErrSessionLocked
	}
	if s.DeliveryMethod != models.DeliveryHome {
		return ErrWrongDelivery
	}
	s.UserAddressID = addressID
	s.BranchID = 0
	s.BranchLabel = ""
	return nil
}

func applyCoupon(s *models.CheckoutSession, code string, discount float64) error {
	if s.Locked {
		return ErrSessionLocked
	}
	s.CouponCode = code
	s.CouponDiscount = discount
	return nil
}

func applyReset(s *models.CheckoutSession) {
	userID, id := s.UserID, s.ID
	*s = models.CheckoutSession{ID: id, UserID: userID}
	normalizeSession(s)
}
