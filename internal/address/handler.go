package address

import (
	"strings"

	"farmacia-backend/internal/auth"
	"farmacia-backend/internal/database"
	"farmacia-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateAddressRequest struct {
	Label     string `json:"label"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zip_code"`
	Reference string `json:"reference"`
}

type UpdateAddressRequest struct {
	Label     *string `json:"label"`
	Street    *string `json:"street"`
	City      *string `json:"city"`
	State     *string `json:"state"`
	ZipCode   *string `json:"zip_code"`
	Reference *string `json:"reference"`
}

type AddressResponse struct {
	ID        uint   `json:"id"`
	Label     string `json:"label"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zip_code"`
	Reference string `json:"reference"`
}

func addressResponse(a *models.UserAddress) AddressResponse {
	return AddressResponse{
		ID:        a.ID,
		Label:     a.Label,
		Street:    a.Street,
		City:      a.City,
		State:     a.State,
		ZipCode:   a.ZipCode,
		Reference: a.Reference,
	}
}

// GET /api/addresses — direcciones del usuario autenticado.
func ListAddressesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var addresses []models.UserAddress
		if err := database.DB.
			Where("user_id = ?", userID).
			Order("created_at ASC").
			Find(&addresses).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar las direcciones")
		}

		res := make([]AddressResponse, 0, len(addresses))
		for i := range addresses {
			res = append(res, addressResponse(&addresses[i]))
		}
		return c.JSON(res)
	}
}

// POST /api/addresses
func CreateAddressHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var body CreateAddressRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.Street = strings.TrimSpace(body.Street)
		body.City = strings.TrimSpace(body.City)
		if body.Street == "" || body.City == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Calle y ciudad son obligatorias")
		}

		addr := models.UserAddress{
			UserID:    userID,
			Label:     strings.TrimSpace(body.Label),
			Street:    body.Street,
			City:      body.City,
			State:     strings.TrimSpace(body.State),
			ZipCode:   strings.TrimSpace(body.ZipCode),
			Reference: strings.TrimSpace(body.Reference),
		}

		if err := database.DB.Create(&addr).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo guardar la dirección")
		}

		return c.Status(fiber.StatusCreated).JSON(addressResponse(&addr))
	}
}

// PUT /api/addresses/:id
func UpdateAddressHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var addr models.UserAddress
		if err := database.DB.First(&addr, "id = ? AND user_id = ?", c.Params("id"), userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Dirección no encontrada")
		}

		var body UpdateAddressRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		if body.Street != nil {
			street := strings.TrimSpace(*body.Street)
			if street == "" {
				return fiber.NewError(fiber.StatusBadRequest, "La calle no puede quedar vacía")
			}
			addr.Street = street
		}
		if body.City != nil {
			city := strings.TrimSpace(*body.City)
			if city == "" {
				return fiber.NewError(fiber.StatusBadRequest, "La ciudad no puede quedar vacía")
			}
			addr.City = city
		}
		if body.Label != nil {
			addr.Label = strings.TrimSpace(*body.Label)
		}
		if body.State != nil {
			addr.State = strings.TrimSpace(*body.State)
		}
		if body.ZipCode != nil {
			addr.ZipCode = strings.TrimSpace(*body.ZipCode)
		}
		if body.Reference != nil {
			addr.Reference = strings.TrimSpace(*body.Reference)
		}

		if err := database.DB.Save(&addr).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar la dirección")
		}

		return c.JSON(addressResponse(&addr))
	}
}

// DELETE /api/addresses/:id
func DeleteAddressHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		if err := database.DB.
			Where("id = ? AND user_id = ?", c.Params("id"), userID).
			Delete(&models.UserAddress{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar la dirección")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
