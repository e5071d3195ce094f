package database

import (
	"log"

	"farmacia-backend/internal/config"
	"farmacia-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("No se pudo conectar a la base de datos: %v", err)
	}

	// Migración manual: el código de cupón del pedido se guardaba en mayúsculas
	// mixtas en versiones anteriores, normalizar ANTES del AutoMigrate para no
	// romper la búsqueda por código.
	if DB.Migrator().HasTable(&models.Order{}) && DB.Migrator().HasColumn(&models.Order{}, "coupon_code") {
		if err := DB.Exec("UPDATE orders SET coupon_code = UPPER(coupon_code) WHERE coupon_code <> ''").Error; err != nil {
			log.Printf("No se pudo normalizar coupon_code (continuando): %v", err)
		}
	}

	err = DB.AutoMigrate(
		&models.Branch{},
		&models.User{},
		&models.UserAddress{},
		&models.ProductCategory{},
		&models.Product{},
		&models.ProductPresentation{},
		&models.CartItem{},
		&models.Coupon{},
		&models.Order{},
		&models.OrderDetail{},
		&models.OrderStatusHistory{},
		&models.Bank{},
		&models.PaymentConfirmation{},
		&models.CheckoutSession{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("Error de AutoMigrate: %v", err)
	}

	log.Println("Conexión a la base de datos establecida. Migración completada.")
}
