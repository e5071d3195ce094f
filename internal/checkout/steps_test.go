package checkout_test

import (
	"testing"

	"farmacia-backend/internal/checkout"
	"farmacia-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func labels(steps []checkout.Step) []string {
	out := make([]string, 0, len(steps))
	for _, s := range steps {
		out = append(out, s.Label())
	}
	return out
}

func TestStepsForTable(t *testing.T) {
	cases := []struct {
		name     string
		delivery models.DeliveryMethod
		payment  models.PaymentMethod
		want     []string
	}{
		{
			name:     "sucursal con punto de venta",
			delivery: models.DeliveryStore,
			payment:  models.PaymentPointOfSale,
			want:     []string{"Opciones de compra", "Confirmación del pedido"},
		},
		{
			name:     "sucursal con transferencia",
			delivery: models.DeliveryStore,
			payment:  models.PaymentBankTransfer,
			want:     []string{"Opciones de compra", "Revisión de datos", "Confirmación del pedido"},
		},
		{
			name:     "sucursal con pago móvil",
			delivery: models.DeliveryStore,
			payment:  models.PaymentMobile,
			want:     []string{"Opciones de compra", "Revisión de datos", "Confirmación del pedido"},
		},
		{
			name:     "domicilio con efectivo",
			delivery: models.DeliveryHome,
			payment:  models.PaymentCash,
			want:     []string{"Opciones de compra", "Confirmación del pedido", "Información de entrega"},
		},
		{
			name:     "domicilio con transferencia",
			delivery: models.DeliveryHome,
			payment:  models.PaymentBankTransfer,
			want:     []string{"Opciones de compra", "Revisión de datos", "Confirmación del pedido", "Información de entrega"},
		},
		{
			name:     "domicilio con pago móvil",
			delivery: models.DeliveryHome,
			payment:  models.PaymentMobile,
			want:     []string{"Opciones de compra", "Revisión de datos", "Confirmación del pedido", "Información de entrega"},
		},
		{
			name:     "sin selección",
			delivery: "",
			payment:  "",
			want:     []string{"Opciones de compra"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := checkout.StepsFor(tc.delivery, tc.payment)
			assert.Equal(t, tc.want, labels(got))
		})
	}
}

func TestCurrentStepByStatus(t *testing.T) {
	pickupTransfer := checkout.StepsFor(models.DeliveryStore, models.PaymentBankTransfer)
	pickupPOS := checkout.StepsFor(models.DeliveryStore, models.PaymentPointOfSale)
	homeTransfer := checkout.StepsFor(models.DeliveryHome, models.PaymentMobile)
	homeCash := checkout.StepsFor(models.DeliveryHome, models.PaymentCash)

	cases := []struct {
		name      string
		steps     []checkout.Step
		status    models.OrderStatus
		orderType models.OrderType
		want      int
	}{
		{"requested apunta a confirmación", pickupTransfer, models.StatusRequested, models.OrderTypePickup, 3},
		{"requested sin revisión", pickupPOS, models.StatusRequested, models.OrderTypePickup, 2},
		{"approved con revisión presente", pickupTransfer, models.StatusApproved, models.OrderTypePickup, 2},
		{"approved sin revisión cae en confirmación", pickupPOS, models.StatusApproved, models.OrderTypePickup, 2},
		{"approved sin revisión en domicilio", homeCash, models.StatusApproved, models.OrderTypeDelivery, 2},
		{"in_progress retiro en sucursal", pickupTransfer, models.StatusInProgress, models.OrderTypePickup, 3},
		{"in_progress entrega a domicilio", homeTransfer, models.StatusInProgress, models.OrderTypeDelivery, 4},
		{"ready_for_pickup se trata como in_progress", pickupPOS, models.StatusReadyForPickup, models.OrderTypePickup, 2},
		{"canceled apunta a confirmación", homeTransfer, models.StatusCanceled, models.OrderTypeDelivery, 3},
		{"completed no renderiza paso", homeTransfer, models.StatusCompleted, models.OrderTypeDelivery, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, checkout.CurrentStep(tc.steps, tc.status, tc.orderType))
		})
	}
}

func TestStepIndexByKey(t *testing.T) {
	steps := checkout.StepsFor(models.DeliveryHome, models.PaymentBankTransfer)

	assert.Equal(t, 1, checkout.StepIndexByKey(steps, "purchase_options"))
	assert.Equal(t, 2, checkout.StepIndexByKey(steps, "data_review"))
	assert.Equal(t, 4, checkout.StepIndexByKey(steps, "delivery_info"))
	// un segmento desconocido no es un estado alcanzable, cae en 0
	assert.Equal(t, 0, checkout.StepIndexByKey(steps, "no-existe"))
}

func TestViewFor(t *testing.T) {
	cases := []struct {
		name      string
		status    models.OrderStatus
		orderType models.OrderType
		payment   models.PaymentMethod
		want      checkout.View
	}{
		{"requested con transferencia pide comprobante", models.StatusRequested, models.OrderTypePickup, models.PaymentBankTransfer, checkout.ViewPaymentProcess},
		{"requested con punto de venta espera aprobación", models.StatusRequested, models.OrderTypePickup, models.PaymentPointOfSale, checkout.ViewWaiting},
		{"approved con pago móvil muestra revisión", models.StatusApproved, models.OrderTypeDelivery, models.PaymentMobile, checkout.ViewReview},
		{"approved con efectivo espera", models.StatusApproved, models.OrderTypeDelivery, models.PaymentCash, checkout.ViewWaiting},
		{"in_progress a domicilio muestra entrega", models.StatusInProgress, models.OrderTypeDelivery, models.PaymentCash, checkout.ViewDeliveryInfo},
		{"in_progress en sucursal espera", models.StatusInProgress, models.OrderTypePickup, models.PaymentPointOfSale, checkout.ViewWaiting},
		{"canceled redirige a rechazo", models.StatusCanceled, models.OrderTypePickup, models.PaymentMobile, checkout.ViewRejected},
		{"completed finaliza", models.StatusCompleted, models.OrderTypeDelivery, models.PaymentCash, checkout.ViewFinished},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, checkout.ViewFor(tc.status, tc.orderType, tc.payment))
		})
	}
}
