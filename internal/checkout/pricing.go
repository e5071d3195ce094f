package checkout

import (
	"errors"
	"math"
	"time"

	"farmacia-backend/internal/models"
)

// Errores de negocio de cupones, distinguidos de fallas genéricas para que el
// handler muestre el mensaje específico con descuento en cero.
var (
	ErrCouponExpired     = errors.New("cupón expirado")
	ErrCouponMinPurchase = errors.New("el subtotal no alcanza el monto mínimo del cupón")
	ErrCouponInactive    = errors.New("cupón inactivo")
)

// QuoteItem: entrada mínima para cotizar una línea del carrito.
type QuoteItem struct {
	UnitPrice       float64
	DiscountPercent float64
	Quantity        int
}

// Quote: desglose monetario del carrito. Toda pantalla que muestre totales
// debe salir de aquí; el cliente original duplicaba este cálculo en varios
// componentes y los montos divergían.
type Quote struct {
	Subtotal       float64 `json:"subtotal"`
	ItemDiscount   float64 `json:"item_discount"`
	CouponDiscount float64 `json:"coupon_discount"`
	Total          float64 `json:"total"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeQuote cotiza el carrito y aplica el cupón, si lo hay, sobre el
// subtotal ya rebajado por los descuentos de artículo. El monto mínimo del
// cupón se compara contra el subtotal bruto.
func ComputeQuote(items []QuoteItem, coupon *models.Coupon, now time.Time) (Quote, error) {
	var q Quote
	for _, it := range items {
		line := it.UnitPrice * float64(it.Quantity)
		q.Subtotal += line
		q.ItemDiscount += line * it.DiscountPercent / 100
	}
	q.Subtotal = round2(q.Subtotal)
	q.ItemDiscount = round2(q.ItemDiscount)

	if coupon != nil {
		if !coupon.IsActive {
			q.Total = round2(q.Subtotal - q.ItemDiscount)
			return q, ErrCouponInactive
		}
		if coupon.Expired(now) {
			q.Total = round2(q.Subtotal - q.ItemDiscount)
			return q, ErrCouponExpired
		}
		if q.Subtotal < coupon.MinPurchase {
			q.Total = round2(q.Subtotal - q.ItemDiscount)
			return q, ErrCouponMinPurchase
		}
		q.CouponDiscount = round2((q.Subtotal - q.ItemDiscount) * coupon.DiscountPercent / 100)
	}

	q.Total = round2(q.Subtotal - q.ItemDiscount - q.CouponDiscount)
	return q, nil
}

// QuoteItemsFromCart adapta las líneas del carrito (con presentación
// precargada) a la entrada de la cotización.
func QuoteItemsFromCart(items []models.CartItem) []QuoteItem {
	out := make([]QuoteItem, 0, len(items))
	for _, it := range items {
		if it.ProductPresentation == nil {
			continue
		}
		out = append(out, QuoteItem{
			UnitPrice:       it.ProductPresentation.Price,
			DiscountPercent: it.ProductPresentation.DiscountPercent,
			Quantity:        it.Quantity,
		})
	}
	return out
}
