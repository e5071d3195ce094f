package checkout

import "farmacia-backend/internal/models"

// Step: pasos del checkout como enum cerrado. El cliente antiguo resolvía el
// paso actual comparando segmentos de ruta en texto plano; aquí la secuencia
// es una función total de la selección.
type Step int

const (
	StepPurchaseOptions Step = iota
	StepDataReview
	StepOrderConfirmation
	StepDeliveryInfo
)

func (s Step) Key() string {
	switch s {
	case StepPurchaseOptions:
		return "purchase_options"
	case StepDataReview:
		return "data_review"
	case StepOrderConfirmation:
		return "order_confirmation"
	case StepDeliveryInfo:
		return "delivery_info"
	default:
		return "unknown"
	}
}

// Label: nombre visible del paso en el stepper.
func (s Step) Label() string {
	switch s {
	case StepPurchaseOptions:
		return "Opciones de compra"
	case StepDataReview:
		return "Revisión de datos"
	case StepOrderConfirmation:
		return "Confirmación del pedido"
	case StepDeliveryInfo:
		return "Información de entrega"
	default:
		return ""
	}
}

// StepsFor: secuencia de pasos según método de entrega y de pago.
//
//	store + point_of_sale             -> [opciones, confirmación]
//	store + transferencia/pago móvil  -> [opciones, revisión, confirmación]
//	home  + efectivo                  -> [opciones, confirmación, entrega]
//	home  + transferencia/pago móvil  -> [opciones, revisión, confirmación, entrega]
//	sin selección                     -> [opciones]
//
// Nunca falla: una selección incompleta degrada a la lista mínima.
func StepsFor(delivery models.DeliveryMethod, payment models.PaymentMethod) []Step {
	if !delivery.Valid() {
		return []Step{StepPurchaseOptions}
	}

	steps := []Step{StepPurchaseOptions}
	if payment.RequiresConfirmation() {
		steps = append(steps, StepDataReview)
	}
	steps = append(steps, StepOrderConfirmation)
	if delivery == models.DeliveryHome {
		steps = append(steps, StepDeliveryInfo)
	}
	return steps
}

// StepsForOrder: la secuencia de un pedido ya creado se deriva de sus campos
// de registro, no de la selección local.
func StepsForOrder(o *models.Order) []Step {
	return StepsFor(o.Type.DeliveryMethod(), o.PaymentMethod)
}

func indexOf(steps []Step, target Step) int {
	for i, s := range steps {
		if s == target {
			return i + 1
		}
	}
	return 0
}

// CurrentStep: índice 1-based del paso actual según el estado del pedido.
// Devuelve 0 cuando no corresponde renderizar ningún paso (completed).
func CurrentStep(steps []Step, status models.OrderStatus, orderType models.OrderType) int {
	switch status {
	case models.StatusRequested:
		return indexOf(steps, StepOrderConfirmation)
	case models.StatusApproved:
		if i := indexOf(steps, StepDataReview); i > 0 {
			return i
		}
		return indexOf(steps, StepOrderConfirmation)
	case models.StatusInProgress, models.StatusReadyForPickup:
		if orderType == models.OrderTypeDelivery {
			return indexOf(steps, StepDeliveryInfo)
		}
		return indexOf(steps, StepOrderConfirmation)
	case models.StatusCanceled:
		return indexOf(steps, StepOrderConfirmation)
	case models.StatusCompleted:
		return 0
	default:
		return 0
	}
}

// StepIndexByKey: paso actual antes de que exista un pedido, a partir del
// paso que el cliente está viendo. 0 si no coincide con la secuencia.
func StepIndexByKey(steps []Step, key string) int {
	for i, s := range steps {
		if s.Key() == key {
			return i + 1
		}
	}
	return 0
}

// View: pantalla que corresponde mostrar dentro del paso actual.
type View string

const (
	ViewPaymentProcess View = "payment_process" // formulario de comprobante de pago
	ViewReview         View = "review"          // revisión de datos bancarios
	ViewDeliveryInfo   View = "delivery_info"   // seguimiento de la entrega
	ViewWaiting        View = "waiting"         // esperando aprobación / preparación
	ViewRejected       View = "rejected"        // pedido anulado
	ViewFinished       View = "finished"        // pedido completado, carrito vaciado
)

// ViewFor: función total de (estado, tipo, método de pago) a la vista.
func ViewFor(status models.OrderStatus, orderType models.OrderType, payment models.PaymentMethod) View {
	switch status {
	case models.StatusRequested:
		if payment.RequiresConfirmation() {
			return ViewPaymentProcess
		}
		return ViewWaiting
	case models.StatusApproved:
		if payment.RequiresConfirmation() {
			return ViewReview
		}
		return ViewWaiting
	case models.StatusInProgress, models.StatusReadyForPickup:
		if orderType == models.OrderTypeDelivery {
			return ViewDeliveryInfo
		}
		return ViewWaiting
	case models.StatusCanceled:
		return ViewRejected
	case models.StatusCompleted:
		return ViewFinished
	default:
		return ViewWaiting
	}
}
