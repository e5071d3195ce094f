package main

import (
	"log"
	"strings"

	"farmacia-backend/internal/address"
	"farmacia-backend/internal/admin"
	"farmacia-backend/internal/audit"
	"farmacia-backend/internal/auth"
	"farmacia-backend/internal/cart"
	"farmacia-backend/internal/catalog"
	"farmacia-backend/internal/checkout"
	"farmacia-backend/internal/config"
	"farmacia-backend/internal/coupon"
	"farmacia-backend/internal/dashboard"
	"farmacia-backend/internal/database"
	"farmacia-backend/internal/models"
	"farmacia-backend/internal/notification"
	"farmacia-backend/internal/order"
	"farmacia-backend/internal/payment"
	"farmacia-backend/internal/tracking"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	sessions := checkout.NewGormStore(database.DB)
	hub := notification.NewHub()

	var publisher *notification.Publisher
	if cfg.RabbitMQURL != "" {
		var err error
		publisher, err = notification.NewPublisher(cfg.RabbitMQURL)
		if err != nil {
			log.Printf("RabbitMQ no disponible, se continúa sin publicar eventos: %v", err)
			publisher = nil
		} else {
			defer publisher.Close()
		}
	}

	orderSvc := order.NewService(sessions, cart.Store{}, hub, publisher)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Error inesperado del servidor",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Auth público
	api.Post("/auth/register", auth.RegisterHandler(cfg))
	api.Post("/auth/register-super-admin", auth.RegisterSuperAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Catálogo y directorios públicos
	api.Get("/products", catalog.ListProductsHandler())
	api.Get("/products/:id", catalog.GetProductHandler())
	api.Get("/categories", catalog.ListCategoriesHandler())
	api.Get("/branches", admin.ListBranchesHandler())
	api.Get("/branches/:id", admin.GetBranchHandler())
	api.Get("/banks", payment.ListBanksHandler())
	api.Get("/coupons/:code", coupon.GetByCodeHandler())

	// WebSocket de seguimiento de pedidos. El token viaja en el query string
	// porque los navegadores no mandan headers en el handshake.
	api.Use("/ws", notification.UpgradeMiddleware())
	api.Get("/ws/orders", notification.WSHandler(cfg, hub))

	// Rutas autenticadas
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Carrito
	protected.Get("/cart", cart.GetCartHandler(sessions))
	protected.Post("/cart/items", cart.AddItemHandler())
	protected.Put("/cart/items/:id", cart.UpdateItemHandler())
	protected.Delete("/cart/items/:id", cart.RemoveItemHandler())
	protected.Delete("/cart", cart.ClearCartHandler())

	// Direcciones del cliente
	protected.Get("/addresses", address.ListAddressesHandler())
	protected.Post("/addresses", address.CreateAddressHandler())
	protected.Put("/addresses/:id", address.UpdateAddressHandler())
	protected.Delete("/addresses/:id", address.DeleteAddressHandler())

	// Sesión de checkout
	protected.Get("/checkout/session", checkout.GetSessionHandler(sessions))
	protected.Put("/checkout/delivery-method", checkout.SetDeliveryMethodHandler(sessions))
	protected.Put("/checkout/payment-method", checkout.SetPaymentMethodHandler(sessions))
	protected.Put("/checkout/branch", checkout.SetBranchHandler(sessions))
	protected.Put("/checkout/address", checkout.SetAddressHandler(sessions))
	protected.Post("/checkout/coupon", checkout.ApplyCouponHandler(sessions))
	protected.Delete("/checkout/coupon", checkout.RemoveCouponHandler(sessions))
	protected.Post("/checkout/reset", checkout.ResetSessionHandler(sessions))
	protected.Get("/checkout/steps", checkout.StepsHandler(sessions))

	// Pedidos
	protected.Post("/orders", order.CreateOrderHandler(sessions))
	protected.Get("/orders", order.ListMyOrdersHandler())
	protected.Get("/orders/:id", order.GetOrderHandler())
	protected.Get("/orders/:id/history", order.OrderHistoryHandler())
	protected.Get("/orders/:id/tracking", tracking.GetOrderTrackingHandler())

	// Comprobantes de pago
	protected.Post("/payment-confirmations", payment.CreateConfirmationHandler())

	// Administración
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleSuperAdmin, models.RoleBranchAdmin))

	// Gestión de pedidos
	adminRoutes.Get("/orders", order.ListOrdersHandler())
	adminRoutes.Put("/orders/:id/status", order.UpdateOrderStatusHandler(orderSvc))
	adminRoutes.Get("/payment-confirmations", payment.ListConfirmationsHandler())

	// Catálogo
	adminRoutes.Post("/products", catalog.CreateProductHandler())
	adminRoutes.Put("/products/:id", catalog.UpdateProductHandler())
	adminRoutes.Delete("/products/:id", catalog.DeleteProductHandler())
	adminRoutes.Post("/products/import", catalog.ImportProductsHandler())
	adminRoutes.Post("/products/:id/presentations", catalog.CreatePresentationHandler())
	adminRoutes.Put("/presentations/:id", catalog.UpdatePresentationHandler())
	adminRoutes.Post("/categories", catalog.CreateCategoryHandler())

	// Cupones
	adminRoutes.Post("/coupons", coupon.CreateCouponHandler())
	adminRoutes.Get("/coupons", coupon.ListCouponsHandler())
	adminRoutes.Put("/coupons/:id", coupon.UpdateCouponHandler())
	adminRoutes.Delete("/coupons/:id", coupon.DeleteCouponHandler())

	// Bancos receptores
	adminRoutes.Get("/banks", payment.ListAllBanksHandler())
	adminRoutes.Post("/banks", payment.CreateBankHandler())
	adminRoutes.Put("/banks/:id", payment.UpdateBankHandler())
	adminRoutes.Delete("/banks/:id", payment.DeleteBankHandler())

	// Reportes de ventas
	adminRoutes.Get("/reports/sales", admin.SalesReportHandler())
	adminRoutes.Get("/reports/sales/export", admin.ExportSalesReportHandler())

	// Panel y auditoría
	adminRoutes.Get("/dashboard/sales-chart", dashboard.SalesChartHandler())
	adminRoutes.Get("/audit-logs", audit.ListAuditLogsHandler())

	// Solo super admin: sucursales y sus administradores
	superRoutes := protected.Group("/admin")
	superRoutes.Use(auth.RequireRole(models.RoleSuperAdmin))

	superRoutes.Post("/branches", admin.CreateBranchHandler())
	superRoutes.Get("/branches", admin.ListAllBranchesHandler())
	superRoutes.Put("/branches/:id", admin.UpdateBranchHandler())
	superRoutes.Delete("/branches/:id", admin.DeleteBranchHandler())
	superRoutes.Post("/branches/:id/admin", admin.CreateBranchAdminHandler())
	superRoutes.Get("/branches/:id/admins", admin.ListBranchAdminsHandler())

	log.Println("Servidor escuchando en el puerto:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
