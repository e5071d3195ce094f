package order

import (
	"testing"

	"farmacia-backend/internal/checkout"
	"farmacia-backend/internal/models"
	"farmacia-backend/internal/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCartClearer struct {
	cleared []uint
}

func (f *fakeCartClearer) ClearCart(userID uint) error {
	f.cleared = append(f.cleared, userID)
	return nil
}

func newTestService() (*Service, *checkout.MemoryStore, *fakeCartClearer) {
	sessions := checkout.NewMemoryStore()
	carts := &fakeCartClearer{}
	return NewService(sessions, carts, notification.NewHub(), nil), sessions, carts
}

func TestCompletedClearsCartAndSession(t *testing.T) {
	svc, sessions, carts := newTestService()

	_, err := sessions.SetOrder(7, 42)
	require.NoError(t, err)

	o := &models.Order{ID: 42, UserID: 7, Status: models.StatusCompleted, StatusSeq: 4}
	svc.applyStatusEffects(o)

	assert.Equal(t, []uint{7}, carts.cleared)
	s, err := sessions.Get(7)
	require.NoError(t, err)
	assert.Equal(t, uint(0), s.OrderID)

	// repetir el efecto es inocuo: la sesión ya está limpia
	svc.applyStatusEffects(o)
	s, err = sessions.Get(7)
	require.NoError(t, err)
	assert.Equal(t, uint(0), s.OrderID)
	assert.False(t, s.Locked)
}

func TestCanceledLocksSession(t *testing.T) {
	svc, sessions, _ := newTestService()

	_, err := sessions.SetOrder(7, 42)
	require.NoError(t, err)

	o := &models.Order{ID: 42, UserID: 7, Status: models.StatusCanceled, StatusSeq: 2}
	svc.applyStatusEffects(o)

	s, err := sessions.Get(7)
	require.NoError(t, err)
	assert.True(t, s.Locked)
	_, err = sessions.SetDeliveryMethod(7, models.DeliveryHome)
	assert.ErrorIs(t, err, checkout.ErrSessionLocked)
}

func TestCanceledIgnoresSessionOfAnotherOrder(t *testing.T) {
	svc, sessions, _ := newTestService()

	// la sesión ya apunta a un pedido nuevo, no debe congelarse por el viejo
	_, err := sessions.SetOrder(7, 99)
	require.NoError(t, err)

	o := &models.Order{ID: 42, UserID: 7, Status: models.StatusCanceled, StatusSeq: 2}
	svc.applyStatusEffects(o)

	s, err := sessions.Get(7)
	require.NoError(t, err)
	assert.False(t, s.Locked)
	assert.Equal(t, uint(99), s.OrderID)
}

func TestCouponCodeForDroppedCoupon(t *testing.T) {
	// el cupón fue borrado después de aplicarse en la sesión: el pedido no
	// debe grabar un código que ya no existe
	assert.Equal(t, "", couponCodeFor(nil, "PROMO10"))

	cp := &models.Coupon{Code: "PROMO10", DiscountPercent: 10}
	assert.Equal(t, "PROMO10", couponCodeFor(cp, "PROMO10"))
}
