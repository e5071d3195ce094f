package payment

import (
	"strings"

	"farmacia-backend/internal/database"
	"farmacia-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type BankRequest struct {
	Name          string `json:"name"`
	AccountNumber string `json:"account_number"`
	AccountHolder string `json:"account_holder"`
	DocumentID    string `json:"document_id"`
	PhoneNumber   string `json:"phone_number"`
	IsActive      *bool  `json:"is_active"`
}

// GET /api/banks — listado público de cuentas activas para que el cliente
// sepa a dónde transferir durante la revisión de datos.
func ListBanksHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var banks []models.Bank
		if err := database.DB.Where("is_active = ?", true).Order("name ASC").Find(&banks).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los bancos")
		}
		return c.JSON(banks)
	}
}

// GET /api/admin/banks
func ListAllBanksHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var banks []models.Bank
		if err := database.DB.Order("name ASC").Find(&banks).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los bancos")
		}
		return c.JSON(banks)
	}
}

// POST /api/admin/banks
func CreateBankHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body BankRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.Name = strings.TrimSpace(body.Name)
		body.AccountNumber = strings.TrimSpace(body.AccountNumber)
		if body.Name == "" || body.AccountNumber == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nombre y número de cuenta son obligatorios")
		}

		bank := models.Bank{
			Name:          body.Name,
			AccountNumber: body.AccountNumber,
			AccountHolder: strings.TrimSpace(body.AccountHolder),
			DocumentID:    strings.TrimSpace(body.DocumentID),
			Phone:         strings.TrimSpace(body.PhoneNumber),
			IsActive:      true,
		}
		if body.IsActive != nil {
			bank.IsActive = *body.IsActive
		}

		if err := database.DB.Create(&bank).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el banco")
		}
		return c.Status(fiber.StatusCreated).JSON(bank)
	}
}

// PUT /api/admin/banks/:id
func UpdateBankHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var bank models.Bank
		if err := database.DB.First(&bank, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Banco no encontrado")
		}

		var body BankRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		if v := strings.TrimSpace(body.Name); v != "" {
			bank.Name = v
		}
		if v := strings.TrimSpace(body.AccountNumber); v != "" {
			bank.AccountNumber = v
		}
		if v := strings.TrimSpace(body.AccountHolder); v != "" {
			bank.AccountHolder = v
		}
		if v := strings.TrimSpace(body.DocumentID); v != "" {
			bank.DocumentID = v
		}
		if v := strings.TrimSpace(body.PhoneNumber); v != "" {
			bank.Phone = v
		}
		if body.IsActive != nil {
			bank.IsActive = *body.IsActive
		}

		if err := database.DB.Save(&bank).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el banco")
		}
		return c.JSON(bank)
	}
}

// DELETE /api/admin/banks/:id
func DeleteBankHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		if err := database.DB.Delete(&models.Bank{}, id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar el banco")
		}
		return c.JSON(fiber.Map{"message": "Banco eliminado"})
	}
}
