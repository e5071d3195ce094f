package checkout

import (
	"sync"

	"farmacia-backend/internal/models"
)

// MemoryStore: implementación en memoria del SessionStore, para pruebas y
// entornos sin base de datos. Mismo contrato que GormStore.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[uint]models.CheckoutSession
	nextID   uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[uint]models.CheckoutSession),
		nextID:   1,
	}
}

func (m *MemoryStore) load(userID uint) models.CheckoutSession {
	s, ok := m.sessions[userID]
	if !ok {
		s = models.CheckoutSession{ID: m.nextID, UserID: userID}
		m.nextID++
	}
	normalizeSession(&s)
	return s
}

func (m *MemoryStore) Get(userID uint) (models.CheckoutSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.load(userID), nil
}

func (m *MemoryStore) mutate(userID uint, fn func(*models.CheckoutSession) error) (models.CheckoutSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.load(userID)
	if err := fn(&s); err != nil {
		return s, err
	}
	m.sessions[userID] = s
	return s, nil
}

func (m *MemoryStore) SetDeliveryMethod(userID uint, dm models.DeliveryMethod) (models.CheckoutSession, error) {
	return m.mutate(userID, func(s *models.CheckoutSession) error {
		return applyDeliveryMethod(s, dm)
	})
}

func (m *MemoryStore) SetPaymentMethod(userID uint, pm models.PaymentMethod) (models.CheckoutSession, error) {
	return m.mutate(userID, func(s *models.CheckoutSession) error {
		return applyPaymentMethod(s, pm)
	})
}

func (m *MemoryStore) SetBranch(userID uint, branchID uint, label string) (models.CheckoutSession, error) {
	return m.mutate(userID, func(s *models.CheckoutSession) error {
		return applyBranch(s, branchID, label)
	})
}

func (m *MemoryStore) SetAddress(userID uint, addressID uint) (models.CheckoutSession, error) {
	return m.mutate(userID, func(s *models.CheckoutSession) error {
		return applyAddress(s, addressID)
	})
}

func (m *MemoryStore) SetCoupon(userID uint, code string, discount float64) (models.CheckoutSession, error) {
	return m.mutate(userID, func(s *models.CheckoutSession) error {
		return applyCoupon(s, code, discount)
	})
}

func (m *MemoryStore) ClearCoupon(userID uint) (models.CheckoutSession, error) {
	return m.mutate(userID, func(s *models.CheckoutSession) error {
		return applyCoupon(s, "", 0)
	})
}

func (m *MemoryStore) SetOrder(userID uint, orderID uint) (models.CheckoutSession, error) {
	return m.mutate(userID, func(s *models.CheckoutSession) error {
		if s.Locked {
			return ErrSessionLocked
		}
		s.OrderID = orderID
		return nil
	})
}

func (m *MemoryStore) ClearOrder(userID uint) error {
	_, err := m.mutate(userID, func(s *models.CheckoutSession) error {
		s.OrderID = 0
		s.CouponCode = ""
		s.CouponDiscount = 0
		return nil
	})
	return err
}

func (m *MemoryStore) Lock(userID uint) error {
	_, err := m.mutate(userID, func(s *models.CheckoutSession) error {
		s.Locked = true
		return nil
	})
	return err
}

func (m *MemoryStore) Reset(userID uint) (models.CheckoutSession, error) {
	return m.mutate(userID, func(s *models.CheckoutSession) error {
		applyReset(s)
		return nil
	})
}
