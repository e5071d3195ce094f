package checkout_test

import (
	"testing"

	"farmacia-backend/internal/checkout"
	"farmacia-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const userID = uint(7)

func TestGetAppliesDefaults(t *testing.T) {
	store := checkout.NewMemoryStore()

	s, err := store.Get(userID)
	require.NoError(t, err)

	assert.Equal(t, models.DeliveryStore, s.DeliveryMethod)
	assert.Equal(t, models.PaymentPointOfSale, s.PaymentMethod)
	assert.Equal(t, uint(0), s.BranchID)
	assert.Equal(t, uint(0), s.UserAddressID)
	assert.Equal(t, "", s.CouponCode)
	assert.Equal(t, 0.0, s.CouponDiscount)
	assert.Equal(t, uint(0), s.OrderID)
}

func TestRoundTripSurvivesReload(t *testing.T) {
	store := checkout.NewMemoryStore()

	_, err := store.SetDeliveryMethod(userID, models.DeliveryHome)
	require.NoError(t, err)
	_, err = store.SetPaymentMethod(userID, models.PaymentCash)
	require.NoError(t, err)
	_, err = store.SetAddress(userID, 42)
	require.NoError(t, err)
	_, err = store.SetOrder(userID, 123)
	require.NoError(t, err)

	// una recarga equivale a volver a leer desde el almacenamiento
	s, err := store.Get(userID)
	require.NoError(t, err)
	assert.Equal(t, models.DeliveryHome, s.DeliveryMethod)
	assert.Equal(t, models.PaymentCash, s.PaymentMethod)
	assert.Equal(t, uint(42), s.UserAddressID)
	assert.Equal(t, uint(123), s.OrderID)
}

func TestChangeDeliveryMethodResetsSelection(t *testing.T) {
	t.Run("store a home", func(t *testing.T) {
		store := checkout.NewMemoryStore()

		_, err := store.SetDeliveryMethod(userID, models.DeliveryStore)
		require.NoError(t, err)
		_, err = store.SetPaymentMethod(userID, models.PaymentBankTransfer)
		require.NoError(t, err)
		_, err = store.SetBranch(userID, 3, "Farmacia Centro")
		require.NoError(t, err)
		_, err = store.SetCoupon(userID, "FARMA10", 9)
		require.NoError(t, err)

		s, err := store.SetDeliveryMethod(userID, models.DeliveryHome)
		require.NoError(t, err)
		assert.Equal(t, models.PaymentCash, s.PaymentMethod)
		assert.Equal(t, uint(0), s.BranchID)
		assert.Equal(t, "", s.BranchLabel)
		assert.Equal(t, uint(0), s.UserAddressID)
		assert.Equal(t, "", s.CouponCode)
		assert.Equal(t, 0.0, s.CouponDiscount)
	})

	t.Run("home a store", func(t *testing.T) {
		store := checkout.NewMemoryStore()

		_, err := store.SetDeliveryMethod(userID, models.DeliveryHome)
		require.NoError(t, err)
		_, err = store.SetAddress(userID, 42)
		require.NoError(t, err)
		_, err = store.SetCoupon(userID, "FARMA10", 9)
		require.NoError(t, err)

		s, err := store.SetDeliveryMethod(userID, models.DeliveryStore)
		require.NoError(t, err)
		assert.Equal(t, models.PaymentPointOfSale, s.PaymentMethod)
		assert.Equal(t, uint(0), s.UserAddressID)
		assert.Equal(t, uint(0), s.BranchID)
		assert.Equal(t, "", s.CouponCode)
		assert.Equal(t, 0.0, s.CouponDiscount)
	})
}

func TestPaymentMethodConstrainedByDelivery(t *testing.T) {
	store := checkout.NewMemoryStore()

	_, err := store.SetDeliveryMethod(userID, models.DeliveryStore)
	require.NoError(t, err)

	// efectivo solo existe para entregas a domicilio
	_, err = store.SetPaymentMethod(userID, models.PaymentCash)
	assert.ErrorIs(t, err, checkout.ErrInvalidPayment)

	_, err = store.SetDeliveryMethod(userID, models.DeliveryHome)
	require.NoError(t, err)
	_, err = store.SetPaymentMethod(userID, models.PaymentPointOfSale)
	assert.ErrorIs(t, err, checkout.ErrInvalidPayment)
}

func TestBranchAndAddressAreMutuallyExclusive(t *testing.T) {
	store := checkout.NewMemoryStore()

	_, err := store.SetDeliveryMethod(userID, models.DeliveryStore)
	require.NoError(t, err)
	_, err = store.SetAddress(userID, 42)
	assert.ErrorIs(t, err, checkout.ErrWrongDelivery)

	s, err := store.SetBranch(userID, 3, "Farmacia Centro")
	require.NoError(t, err)
	assert.Equal(t, uint(3), s.BranchID)
	assert.Equal(t, uint(0), s.UserAddressID)

	_, err = store.SetDeliveryMethod(userID, models.DeliveryHome)
	require.NoError(t, err)
	_, err = store.SetBranch(userID, 3, "Farmacia Centro")
	assert.ErrorIs(t, err, checkout.ErrWrongDelivery)

	s, err = store.SetAddress(userID, 42)
	require.NoError(t, err)
	assert.Equal(t, uint(42), s.UserAddressID)
	assert.Equal(t, uint(0), s.BranchID)
}

func TestClearOrderIsIdempotent(t *testing.T) {
	store := checkout.NewMemoryStore()

	_, err := store.SetOrder(userID, 99)
	require.NoError(t, err)

	require.NoError(t, store.ClearOrder(userID))
	require.NoError(t, store.ClearOrder(userID))

	s, err := store.Get(userID)
	require.NoError(t, err)
	assert.Equal(t, uint(0), s.OrderID)
	assert.Equal(t, "", s.CouponCode)
}

func TestLockedSessionRejectsMutation(t *testing.T) {
	store := checkout.NewMemoryStore()

	_, err := store.SetOrder(userID, 99)
	require.NoError(t, err)
	require.NoError(t, store.Lock(userID))

	_, err = store.SetDeliveryMethod(userID, models.DeliveryHome)
	assert.ErrorIs(t, err, checkout.ErrSessionLocked)
	_, err = store.SetPaymentMethod(userID, models.PaymentBankTransfer)
	assert.ErrorIs(t, err, checkout.ErrSessionLocked)
	_, err = store.SetCoupon(userID, "FARMA10", 9)
	assert.ErrorIs(t, err, checkout.ErrSessionLocked)

	// reiniciar desbloquea y vuelve a los valores por defecto
	s, err := store.Reset(userID)
	require.NoError(t, err)
	assert.False(t, s.Locked)
	assert.Equal(t, models.DeliveryStore, s.DeliveryMethod)
	assert.Equal(t, uint(0), s.OrderID)
}
