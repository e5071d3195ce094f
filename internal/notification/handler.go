package notification

import (
	"farmacia-backend/internal/auth"
	"farmacia-backend/internal/config"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// UpgradeMiddleware rechaza las peticiones que no son un handshake de
// websocket antes de llegar al handler de conexión.
func UpgradeMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}
}

// WSHandler: GET /api/ws/orders?token=<jwt>. El navegador no puede mandar
// encabezados en el handshake, así que el bearer token viaja como query
// param. La conexión queda registrada hasta que el cliente la cierra.
func WSHandler(cfg *config.Config, hub *Hub) fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		claims, err := auth.ParseToken(cfg.JWTSecret, c.Query("token"))
		if err != nil {
			c.WriteJSON(fiber.Map{"error": "Token inválido o expirado"})
			c.Close()
			return
		}

		hub.Register(claims.UserID, c)
		defer hub.Unregister(claims.UserID, c)

		// El canal es de solo lectura para el cliente: el bucle consume
		// mensajes entrantes únicamente para detectar el cierre.
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	})
}
