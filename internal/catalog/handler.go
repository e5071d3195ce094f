package catalog

import (
	"strconv"
	"strings"

	"farmacia-backend/internal/database"
	"farmacia-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type PresentationResponse struct {
	ID              uint    `json:"id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DiscountPercent float64 `json:"discount_percent"`
	Stock           int     `json:"stock"`
}

type ProductResponse struct {
	ID                   uint                   `json:"id"`
	Name                 string                 `json:"name"`
	Description          string                 `json:"description"`
	Category             string                 `json:"category"`
	Laboratory           string                 `json:"laboratory"`
	RequiresPrescription bool                   `json:"requires_prescription"`
	ImageURL             string                 `json:"image_url"`
	Presentations        []PresentationResponse `json:"presentations"`
}

func productResponse(p *models.Product) ProductResponse {
	res := ProductResponse{
		ID:                   p.ID,
		Name:                 p.Name,
		Description:          p.Description,
		Laboratory:           p.Laboratory,
		RequiresPrescription: p.RequiresPrescription,
		ImageURL:             p.ImageURL,
		Presentations:        make([]PresentationResponse, 0, len(p.Presentations)),
	}
	if p.Category != nil {
		res.Category = p.Category.Name
	}
	for _, pr := range p.Presentations {
		if !pr.IsActive {
			continue
		}
		res.Presentations = append(res.Presentations, PresentationResponse{
			ID:              pr.ID,
			Name:            pr.Name,
			Price:           pr.Price,
			DiscountPercent: pr.DiscountPercent,
			Stock:           pr.Stock,
		})
	}
	return res
}

// GET /api/products?search=&category_id=&page=&limit=
// Catálogo público, paginado. Solo productos activos.
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, _ := strconv.Atoi(c.Query("page", "1"))
		if page < 1 {
			page = 1
		}
		limit, _ := strconv.Atoi(c.Query("limit", "20"))
		if limit < 1 || limit > 100 {
			limit = 20
		}

		q := database.DB.Model(&models.Product{}).Where("is_active = ?", true)
		if search := strings.TrimSpace(c.Query("search")); search != "" {
			like := "%" + strings.ToLower(search) + "%"
			q = q.Where("LOWER(name) LIKE ? OR LOWER(laboratory) LIKE ?", like, like)
		}
		if categoryID := c.Query("category_id"); categoryID != "" {
			q = q.Where("category_id = ?", categoryID)
		}

		var total int64
		if err := q.Count(&total).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los productos")
		}

		var products []models.Product
		if err := q.Preload("Category").Preload("Presentations").
			Order("name ASC").Offset((page - 1) * limit).Limit(limit).
			Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los productos")
		}

		items := make([]ProductResponse, 0, len(products))
		for i := range products {
			items = append(items, productResponse(&products[i]))
		}

		return c.JSON(fiber.Map{
			"items": items,
			"page":  page,
			"limit": limit,
			"total": total,
		})
	}
}

// GET /api/products/:id
func GetProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var product models.Product
		if err := database.DB.Preload("Category").Preload("Presentations").
			Where("is_active = ?", true).First(&product, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Producto no encontrado")
		}
		return c.JSON(productResponse(&product))
	}
}

// GET /api/categories
func ListCategoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var categories []models.ProductCategory
		if err := database.DB.Order("name ASC").Find(&categories).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar las categorías")
		}
		return c.JSON(categories)
	}
}
