package catalog

import (
	"log"
	"strconv"
	"strings"

	"farmacia-backend/internal/database"
	"farmacia-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// POST /api/admin/products/import
// Carga masiva de catálogo desde un XLSX. Columnas esperadas:
// producto | presentación | precio | descuento % | stock | laboratorio | categoría
// Si el producto o la presentación ya existen (por nombre) se actualizan
// precio, descuento y stock; si no, se crean.
func ImportProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "No se pudo cargar el archivo: "+err.Error())
		}
		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
			return fiber.NewError(fiber.StatusBadRequest, "Solo se aceptan archivos .xlsx")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo abrir el archivo: "+err.Error())
		}
		defer file.Close()

		excelFile, err := excelize.OpenReader(file)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "No se pudo leer el archivo Excel: "+err.Error())
		}
		defer excelFile.Close()

		sheetList := excelFile.GetSheetList()
		if len(sheetList) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "El archivo no tiene hojas")
		}

		rows, err := excelFile.GetRows(sheetList[0])
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "No se pudo leer la hoja: "+err.Error())
		}
		if len(rows) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "El archivo está vacío")
		}

		// Si la primera fila parece encabezado, se salta
		startIndex := 0
		if len(rows[0]) > 0 {
			firstCell := strings.ToUpper(strings.TrimSpace(rows[0][0]))
			if strings.Contains(firstCell, "PRODUCTO") || strings.Contains(firstCell, "NOMBRE") ||
				strings.Contains(firstCell, "PRODUCT") {
				startIndex = 1
			}
		}

		created := 0
		updated := 0
		skipped := make([]string, 0)

		for i := startIndex; i < len(rows); i++ {
			row := rows[i]
			if len(row) < 3 {
				continue
			}

			productName := strings.TrimSpace(row[0])
			presentationName := strings.TrimSpace(row[1])
			if productName == "" || presentationName == "" {
				continue
			}

			price, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(row[2]), ",", "."), 64)
			if err != nil || price <= 0 {
				skipped = append(skipped, productName+" / "+presentationName)
				continue
			}

			discount := 0.0
			if len(row) > 3 && strings.TrimSpace(row[3]) != "" {
				discount, _ = strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(row[3]), ",", "."), 64)
				if discount < 0 || discount > 100 {
					discount = 0
				}
			}

			stock := 0
			if len(row) > 4 && strings.TrimSpace(row[4]) != "" {
				stock, _ = strconv.Atoi(strings.TrimSpace(row[4]))
				if stock < 0 {
					stock = 0
				}
			}

			laboratory := ""
			if len(row) > 5 {
				laboratory = strings.TrimSpace(row[5])
			}

			var categoryID *uint
			if len(row) > 6 && strings.TrimSpace(row[6]) != "" {
				categoryName := strings.TrimSpace(row[6])
				var category models.ProductCategory
				if err := database.DB.Where("LOWER(name) = ?", strings.ToLower(categoryName)).
					First(&category).Error; err != nil {
					category = models.ProductCategory{Name: categoryName}
					if err := database.DB.Create(&category).Error; err != nil {
						log.Printf("No se pudo crear la categoría %q: %v", categoryName, err)
					}
				}
				if category.ID != 0 {
					categoryID = &category.ID
				}
			}

			err = database.DB.Transaction(func(tx *gorm.DB) error {
				var product models.Product
				res := tx.Where("LOWER(name) = ?", strings.ToLower(productName)).First(&product)
				if res.Error != nil {
					product = models.Product{
						Name:       productName,
						CategoryID: categoryID,
						Laboratory: laboratory,
						IsActive:   true,
					}
					if err := tx.Create(&product).Error; err != nil {
						return err
					}
				}

				var presentation models.ProductPresentation
				res = tx.Where("product_id = ? AND LOWER(name) = ?", product.ID, strings.ToLower(presentationName)).
					First(&presentation)
				if res.Error != nil {
					presentation = models.ProductPresentation{
						ProductID:       product.ID,
						Name:            presentationName,
						Price:           price,
						DiscountPercent: discount,
						Stock:           stock,
						IsActive:        true,
					}
					if err := tx.Create(&presentation).Error; err != nil {
						return err
					}
					created++
					return nil
				}

				presentation.Price = price
				presentation.DiscountPercent = discount
				presentation.Stock = stock
				if err := tx.Save(&presentation).Error; err != nil {
					return err
				}
				updated++
				return nil
			})
			if err != nil {
				log.Printf("Fila %d no se pudo importar: %v", i+1, err)
				skipped = append(skipped, productName+" / "+presentationName)
			}
		}

		return c.JSON(fiber.Map{
			"created": created,
			"updated": updated,
			"skipped": skipped,
		})
	}
}
