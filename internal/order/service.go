package order

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"farmacia-backend/internal/checkout"
	"farmacia-backend/internal/database"
	"farmacia-backend/internal/models"
	"farmacia-backend/internal/notification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrOrderNotFound     = errors.New("pedido no encontrado")
	ErrInvalidTransition = errors.New("transición de estado inválida")
)

// CartClearer: lo implementa el paquete cart. El servicio de pedidos vacía el
// carrito del cliente cuando su pedido llega a completed.
type CartClearer interface {
	ClearCart(userID uint) error
}

// Service concentra el ciclo de vida de estados del pedido. Las transiciones
// las fija un administrador (o el punto de venta); este servicio las valida,
// las registra en la línea de tiempo y dispara los efectos: vaciar carrito y
// sesión al completar, congelar la sesión al anular, y notificar por
// websocket y por el fanout de RabbitMQ.
type Service struct {
	sessions  checkout.SessionStore
	carts     CartClearer
	hub       *notification.Hub
	publisher *notification.Publisher // nil si no hay RabbitMQ configurado
}

func NewService(sessions checkout.SessionStore, carts CartClearer, hub *notification.Hub, publisher *notification.Publisher) *Service {
	return &Service{
		sessions:  sessions,
		carts:     carts,
		hub:       hub,
		publisher: publisher,
	}
}

// UpdateStatus aplica una transición de estado dentro de una transacción y
// dispara los efectos una vez confirmada.
func (s *Service) UpdateStatus(orderID uint, next models.OrderStatus, changedBy uint) (*models.Order, error) {
	var order models.Order

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// SELECT ... FOR UPDATE: dos administradores concurrentes no deben
		// validar la transición contra un estado ya pisado por el otro.
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		from := order.Status
		if !CanTransition(from, next) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, next)
		}

		order.Status = next
		order.StatusSeq++

		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", order.ID, from).
			Updates(map[string]interface{}{
				"status":     order.Status,
				"status_seq": order.StatusSeq,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// otro escritor ganó la carrera entre la lectura y el update
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, next)
		}

		history := models.OrderStatusHistory{
			OrderID:    order.ID,
			FromStatus: from,
			ToStatus:   next,
			ChangedBy:  changedBy,
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		return nil, err
	}

	s.applyStatusEffects(&order)
	return &order, nil
}

// applyStatusEffects corre los efectos de una transición ya confirmada.
// Es idempotente: repetirlo con el mismo pedido no rompe nada y el hub
// descarta el evento duplicado por su secuencia.
func (s *Service) applyStatusEffects(o *models.Order) {
	switch o.Status {
	case models.StatusCompleted:
		if err := s.carts.ClearCart(o.UserID); err != nil {
			log.Printf("No se pudo vaciar el carrito del usuario %d: %v", o.UserID, err)
		}
		if err := s.sessions.ClearOrder(o.UserID); err != nil {
			log.Printf("No se pudo limpiar la sesión de checkout del usuario %d: %v", o.UserID, err)
		}
	case models.StatusCanceled:
		// congelar la selección solo si la sesión sigue apuntando a este pedido
		if sess, err := s.sessions.Get(o.UserID); err == nil && sess.OrderID == o.ID {
			if err := s.sessions.Lock(o.UserID); err != nil {
				log.Printf("No se pudo bloquear la sesión del usuario %d: %v", o.UserID, err)
			}
		}
	}

	upd := notification.OrderUpdate{
		OrderID: o.ID,
		Status:  o.Status,
		Seq:     o.StatusSeq,
	}
	delivered := s.hub.Publish(o.UserID, upd)
	if delivered && s.publisher != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.publisher.PublishOrderUpdate(ctx, upd); err != nil {
			log.Printf("No se pudo publicar la actualización del pedido %d en RabbitMQ: %v", o.ID, err)
		}
	}
}
