package models

// Método de entrega elegido por el cliente durante el checkout.
type DeliveryMethod string

const (
	DeliveryStore DeliveryMethod = "store" // retiro en sucursal
	DeliveryHome  DeliveryMethod = "home"  // entrega a domicilio
)

type PaymentMethod string

const (
	PaymentPointOfSale  PaymentMethod = "point_of_sale"
	PaymentCash         PaymentMethod = "cash"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentMobile       PaymentMethod = "mobile_payment"
)

// PaymentMethodsFor: métodos de pago válidos para cada método de entrega.
func PaymentMethodsFor(d DeliveryMethod) []PaymentMethod {
	switch d {
	case DeliveryStore:
		return []PaymentMethod{PaymentPointOfSale, PaymentBankTransfer, PaymentMobile}
	case DeliveryHome:
		return []PaymentMethod{PaymentCash, PaymentBankTransfer, PaymentMobile}
	default:
		return nil
	}
}

// DefaultPaymentMethod: método que se asigna al cambiar de método de entrega.
func DefaultPaymentMethod(d DeliveryMethod) PaymentMethod {
	if d == DeliveryHome {
		return PaymentCash
	}
	return PaymentPointOfSale
}

func (d DeliveryMethod) Valid() bool {
	return d == DeliveryStore || d == DeliveryHome
}

func (p PaymentMethod) ValidFor(d DeliveryMethod) bool {
	for _, m := range PaymentMethodsFor(d) {
		if m == p {
			return true
		}
	}
	return false
}

// RequiresConfirmation: transferencia y pago móvil pasan por la revisión de datos
// y exigen un comprobante de pago.
func (p PaymentMethod) RequiresConfirmation() bool {
	return p == PaymentBankTransfer || p == PaymentMobile
}
