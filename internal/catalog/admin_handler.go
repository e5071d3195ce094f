package catalog

import (
	"strings"

	"farmacia-backend/internal/database"
	"farmacia-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ProductRequest struct {
	Name                 string `json:"name"`
	Description          string `json:"description"`
	CategoryID           *uint  `json:"category_id"`
	Laboratory           string `json:"laboratory"`
	RequiresPrescription *bool  `json:"requires_prescription"`
	ImageURL             string `json:"image_url"`
	IsActive             *bool  `json:"is_active"`
}

type PresentationRequest struct {
	Name            string   `json:"name"`
	Price           *float64 `json:"price"`
	DiscountPercent *float64 `json:"discount_percent"`
	Stock           *int     `json:"stock"`
	IsActive        *bool    `json:"is_active"`
}

// POST /api/admin/products
func CreateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "El nombre es obligatorio")
		}
		if body.CategoryID != nil {
			var category models.ProductCategory
			if err := database.DB.First(&category, *body.CategoryID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Categoría no encontrada")
			}
		}

		product := models.Product{
			Name:        body.Name,
			Description: strings.TrimSpace(body.Description),
			CategoryID:  body.CategoryID,
			Laboratory:  strings.TrimSpace(body.Laboratory),
			ImageURL:    strings.TrimSpace(body.ImageURL),
			IsActive:    true,
		}
		if body.RequiresPrescription != nil {
			product.RequiresPrescription = *body.RequiresPrescription
		}
		if body.IsActive != nil {
			product.IsActive = *body.IsActive
		}

		if err := database.DB.Create(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el producto")
		}
		return c.Status(fiber.StatusCreated).JSON(productResponse(&product))
	}
}

// PUT /api/admin/products/:id
func UpdateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var product models.Product
		if err := database.DB.First(&product, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Producto no encontrado")
		}

		var body ProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		if v := strings.TrimSpace(body.Name); v != "" {
			product.Name = v
		}
		if v := strings.TrimSpace(body.Description); v != "" {
			product.Description = v
		}
		if body.CategoryID != nil {
			var category models.ProductCategory
			if err := database.DB.First(&category, *body.CategoryID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Categoría no encontrada")
			}
			product.CategoryID = body.CategoryID
		}
		if v := strings.TrimSpace(body.Laboratory); v != "" {
			product.Laboratory = v
		}
		if v := strings.TrimSpace(body.ImageURL); v != "" {
			product.ImageURL = v
		}
		if body.RequiresPrescription != nil {
			product.RequiresPrescription = *body.RequiresPrescription
		}
		if body.IsActive != nil {
			product.IsActive = *body.IsActive
		}

		if err := database.DB.Save(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el producto")
		}
		return c.JSON(productResponse(&product))
	}
}

// DELETE /api/admin/products/:id — desactiva, no borra: los pedidos viejos
// siguen referenciando sus presentaciones.
func DeleteProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var product models.Product
		if err := database.DB.First(&product, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Producto no encontrado")
		}

		if err := database.DB.Model(&product).Update("is_active", false).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo desactivar el producto")
		}
		return c.JSON(fiber.Map{"message": "Producto desactivado"})
	}
}

// POST /api/admin/products/:id/presentations
func CreatePresentationHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		productID, err := c.ParamsInt("id")
		if err != nil || productID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var product models.Product
		if err := database.DB.First(&product, productID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Producto no encontrado")
		}

		var body PresentationRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" || body.Price == nil || *body.Price <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Nombre y precio son obligatorios")
		}

		presentation := models.ProductPresentation{
			ProductID: product.ID,
			Name:      body.Name,
			Price:     *body.Price,
			IsActive:  true,
		}
		if body.DiscountPercent != nil {
			if *body.DiscountPercent < 0 || *body.DiscountPercent > 100 {
				return fiber.NewError(fiber.StatusBadRequest, "El descuento debe estar entre 0 y 100")
			}
			presentation.DiscountPercent = *body.DiscountPercent
		}
		if body.Stock != nil {
			if *body.Stock < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "El stock no puede ser negativo")
			}
			presentation.Stock = *body.Stock
		}
		if body.IsActive != nil {
			presentation.IsActive = *body.IsActive
		}

		if err := database.DB.Create(&presentation).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear la presentación")
		}
		return c.Status(fiber.StatusCreated).JSON(presentation)
	}
}

// PUT /api/admin/presentations/:id
func UpdatePresentationHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var presentation models.ProductPresentation
		if err := database.DB.First(&presentation, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Presentación no encontrada")
		}

		var body PresentationRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		if v := strings.TrimSpace(body.Name); v != "" {
			presentation.Name = v
		}
		if body.Price != nil {
			if *body.Price <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "El precio debe ser mayor a cero")
			}
			presentation.Price = *body.Price
		}
		if body.DiscountPercent != nil {
			if *body.DiscountPercent < 0 || *body.DiscountPercent > 100 {
				return fiber.NewError(fiber.StatusBadRequest, "El descuento debe estar entre 0 y 100")
			}
			presentation.DiscountPercent = *body.DiscountPercent
		}
		if body.Stock != nil {
			if *body.Stock < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "El stock no puede ser negativo")
			}
			presentation.Stock = *body.Stock
		}
		if body.IsActive != nil {
			presentation.IsActive = *body.IsActive
		}

		if err := database.DB.Save(&presentation).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar la presentación")
		}
		return c.JSON(presentation)
	}
}

// POST /api/admin/categories
func CreateCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			Name string `json:"name"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "El nombre es obligatorio")
		}

		category := models.ProductCategory{Name: body.Name}
		if err := database.DB.Create(&category).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Ya existe una categoría con ese nombre")
		}
		return c.Status(fiber.StatusCreated).JSON(category)
	}
}
