package checkout

import (
	"errors"

	"farmacia-backend/internal/models"

	"gorm.io/gorm"
)

// GormStore persiste la sesión de checkout en Postgres, una fila por usuario.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// load trae la sesión del usuario o una vacía si no existe todavía.
func (g *GormStore) load(userID uint) (models.CheckoutSession, error) {
	var s models.CheckoutSession
	err := g.db.Where("user_id = ?", userID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s = models.CheckoutSession{UserID: userID}
		err = nil
	}
	if err != nil {
		return s, err
	}
	normalizeSession(&s)
	return s, nil
}

func (g *GormStore) save(s *models.CheckoutSession) error {
	return g.db.Save(s).Error
}

func (g *GormStore) Get(userID uint) (models.CheckoutSession, error) {
	return g.load(userID)
}

func (g *GormStore) mutate(userID uint, fn func(*models.CheckoutSession) error) (models.CheckoutSession, error) {
	s, err := g.load(userID)
	if err != nil {
		return s, err
	}
	if err := fn(&s); err != nil {
		return s, err
	}
	if err := g.save(&s); err != nil {
		return s, err
	}
	return s, nil
}

func (g *GormStore) SetDeliveryMethod(userID uint, m models.DeliveryMethod) (models.CheckoutSession, error) {
	return g.mutate(userID, func(s *models.CheckoutSession) error {
		return applyDeliveryMethod(s, m)
	})
}

func (g *GormStore) SetPaymentMethod(userID uint, m models.PaymentMethod) (models.CheckoutSession, error) {
	return g.mutate(userID, func(s *models.CheckoutSession) error {
		return applyPaymentMethod(s, m)
	})
}

func (g *GormStore) SetBranch(userID uint, branchID uint, label string) (models.CheckoutSession, error) {
	return g.mutate(userID, func(s *models.CheckoutSession) error {
		return applyBranch(s, branchID, label)
	})
}

func (g *GormStore) SetAddress(userID uint, addressID uint) (models.CheckoutSession, error) {
	return g.mutate(userID, func(s *models.CheckoutSession) error {
		return applyAddress(s, addressID)
	})
}

func (g *GormStore) SetCoupon(userID uint, code string, discount float64) (models.CheckoutSession, error) {
	return g.mutate(userID, func(s *models.CheckoutSession) error {
		return applyCoupon(s, code, discount)
	})
}

func (g *GormStore) ClearCoupon(userID uint) (models.CheckoutSession, error) {
	return g.mutate(userID, func(s *models.CheckoutSession) error {
		return applyCoupon(s, "", 0)
	})
}

func (g *GormStore) SetOrder(userID uint, orderID uint) (models.CheckoutSession, error) {
	return g.mutate(userID, func(s *models.CheckoutSession) error {
		if s.Locked {
			return ErrSessionLocked
		}
		s.OrderID = orderID
		return nil
	})
}

// ClearOrder se invoca cuando el pedido llega a completed. Es idempotente.
func (g *GormStore) ClearOrder(userID uint) error {
	_, err := g.mutate(userID, func(s *models.CheckoutSession) error {
		s.OrderID = 0
		s.CouponCode = ""
		s.CouponDiscount = 0
		return nil
	})
	return err
}

// Lock congela la selección cuando el pedido fue anulado.
func (g *GormStore) Lock(userID uint) error {
	_, err := g.mutate(userID, func(s *models.CheckoutSession) error {
		s.Locked = true
		return nil
	})
	return err
}

// Reset vuelve la sesión a los valores por defecto y la desbloquea; lo usa el
// cliente para empezar un checkout nuevo luego de un rechazo.
func (g *GormStore) Reset(userID uint) (models.CheckoutSession, error) {
	return g.mutate(userID, func(s *models.CheckoutSession) error {
		applyReset(s)
		return nil
	})
}
