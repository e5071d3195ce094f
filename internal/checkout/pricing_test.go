package checkout_test

import (
	"testing"
	"time"

	"farmacia-backend/internal/checkout"
	"farmacia-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cartOf100With10Off() []checkout.QuoteItem {
	// subtotal 100, descuento de artículo 10
	return []checkout.QuoteItem{
		{UnitPrice: 25, DiscountPercent: 20, Quantity: 2}, // 50, descuento 10
		{UnitPrice: 50, DiscountPercent: 0, Quantity: 1},  // 50
	}
}

func TestComputeQuoteWithCoupon(t *testing.T) {
	coupon := &models.Coupon{
		Code:            "FARMA10",
		DiscountPercent: 10,
		MinPurchase:     50,
		ExpirationDate:  time.Now().Add(24 * time.Hour),
		IsActive:        true,
	}

	q, err := checkout.ComputeQuote(cartOf100With10Off(), coupon, time.Now())
	require.NoError(t, err)

	assert.Equal(t, 100.0, q.Subtotal)
	assert.Equal(t, 10.0, q.ItemDiscount)
	// el cupón aplica sobre el subtotal ya rebajado: (100-10)*0.10 = 9
	assert.Equal(t, 9.0, q.CouponDiscount)
	assert.Equal(t, 81.0, q.Total)
}

func TestComputeQuoteMinPurchaseNotReached(t *testing.T) {
	coupon := &models.Coupon{
		Code:            "FARMA10",
		DiscountPercent: 10,
		MinPurchase:     150,
		ExpirationDate:  time.Now().Add(24 * time.Hour),
		IsActive:        true,
	}

	q, err := checkout.ComputeQuote(cartOf100With10Off(), coupon, time.Now())
	assert.ErrorIs(t, err, checkout.ErrCouponMinPurchase)
	assert.Equal(t, 0.0, q.CouponDiscount)
	assert.Equal(t, 90.0, q.Total)
}

func TestComputeQuoteExpiredCoupon(t *testing.T) {
	coupon := &models.Coupon{
		Code:            "VIEJO",
		DiscountPercent: 10,
		ExpirationDate:  time.Now().Add(-time.Hour),
		IsActive:        true,
	}

	q, err := checkout.ComputeQuote(cartOf100With10Off(), coupon, time.Now())
	assert.ErrorIs(t, err, checkout.ErrCouponExpired)
	assert.Equal(t, 0.0, q.CouponDiscount)
}

func TestComputeQuoteInactiveCoupon(t *testing.T) {
	coupon := &models.Coupon{
		Code:            "APAGADO",
		DiscountPercent: 10,
		ExpirationDate:  time.Now().Add(time.Hour),
		IsActive:        false,
	}

	_, err := checkout.ComputeQuote(cartOf100With10Off(), coupon, time.Now())
	assert.ErrorIs(t, err, checkout.ErrCouponInactive)
}

func TestComputeQuoteWithoutCoupon(t *testing.T) {
	q, err := checkout.ComputeQuote(cartOf100With10Off(), nil, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 90.0, q.Total)
}

func TestComputeQuoteEmptyCart(t *testing.T) {
	q, err := checkout.ComputeQuote(nil, nil, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0.0, q.Subtotal)
	assert.Equal(t, 0.0, q.Total)
}
