package notification

import (
	"log"
	"sync"

	"farmacia-backend/internal/models"

	"github.com/gofiber/contrib/websocket"
)

// OrderUpdate: evento que reciben los clientes suscritos cuando cambia el
// estado de un pedido. Seq es la secuencia monótona del pedido: un evento
// con secuencia vieja se descarta en lugar de aplicar "gana el último en
// llegar".
type OrderUpdate struct {
	OrderID uint               `json:"order_id"`
	Status  models.OrderStatus `json:"status"`
	Seq     uint               `json:"seq"`
}

// maxTerminalSeqs acota el mapa de secuencias: las entradas de pedidos ya
// cerrados se desalojan en orden de llegada cuando se supera este límite.
const maxTerminalSeqs = 1024

// Hub mantiene una conexión websocket registrada por cliente y reparte las
// actualizaciones de estado. La conexión se registra al montar la vista de
// seguimiento y se libera al cerrarla.
type Hub struct {
	mu       sync.Mutex
	clients  map[uint]map[*websocket.Conn]struct{}
	lastSeq  map[uint]uint // por pedido
	terminal []uint        // pedidos cerrados, en orden de cierre
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[uint]map[*websocket.Conn]struct{}),
		lastSeq: make(map[uint]uint),
	}
}

func (h *Hub) Register(userID uint, c *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*websocket.Conn]struct{})
	}
	h.clients[userID][c] = struct{}{}
}

func (h *Hub) Unregister(userID uint, c *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.clients[userID]; ok {
		delete(conns, c)
		if len(conns) == 0 {
			delete(h.clients, userID)
		}
	}
}

// Publish envía la actualización a las conexiones del usuario dueño del
// pedido. Devuelve false si el evento quedó descartado por traer una
// secuencia ya entregada.
func (h *Hub) Publish(userID uint, upd OrderUpdate) bool {
	h.mu.Lock()

	if upd.Seq != 0 && upd.Seq <= h.lastSeq[upd.OrderID] {
		h.mu.Unlock()
		return false
	}
	if upd.Seq != 0 {
		h.lastSeq[upd.OrderID] = upd.Seq
		if upd.Status.Terminal() {
			h.terminal = append(h.terminal, upd.OrderID)
			for len(h.terminal) > maxTerminalSeqs {
				delete(h.lastSeq, h.terminal[0])
				h.terminal = h.terminal[1:]
			}
		}
	}

	// La escritura se hace fuera del lock: un cliente lento no debe frenar
	// el resto de publicaciones ni los registros de conexión.
	conns := make([]*websocket.Conn, 0, len(h.clients[userID]))
	for c := range h.clients[userID] {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, c := range conns {
		if err := c.WriteJSON(upd); err != nil {
			log.Printf("No se pudo enviar la notificación al usuario %d: %v", userID, err)
			c.Close()
			h.Unregister(userID, c)
		}
	}
	return true
}
