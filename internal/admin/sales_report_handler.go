package admin

import (
	"fmt"
	"time"

	"farmacia-backend/internal/database"
	"farmacia-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

type SalesReportResponse struct {
	Year           int                `json:"year"`
	Month          int                `json:"month"`
	BranchID       *uint              `json:"branch_id"`
	OrderCount     int                `json:"order_count"`
	Subtotal       float64            `json:"subtotal"`
	ItemDiscount   float64            `json:"item_discount"`
	CouponDiscount float64            `json:"coupon_discount"`
	Total          float64            `json:"total"`
	ByPayment      map[string]float64 `json:"by_payment"`
	ByType         map[string]float64 `json:"by_type"`
}

func parseReportPeriod(c *fiber.Ctx) (int, int, time.Time, time.Time, error) {
	year := c.QueryInt("year", time.Now().Year())
	month := c.QueryInt("month", int(time.Now().Month()))
	if year < 2000 || month < 1 || month > 12 {
		return 0, 0, time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "Año o mes inválido")
	}

	loc := time.Now().Location()
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	to := from.AddDate(0, 1, 0)
	return year, month, from, to, nil
}

func loadCompletedOrders(c *fiber.Ctx, from, to time.Time) ([]models.Order, *uint, error) {
	q := database.DB.
		Where("status = ?", models.StatusCompleted).
		Where("created_at >= ? AND created_at < ?", from, to)

	var branchID *uint
	if bid := c.QueryInt("branch_id", 0); bid > 0 {
		b := uint(bid)
		branchID = &b
		q = q.Where("branch_id = ?", b)
	}

	var orders []models.Order
	if err := q.Order("created_at ASC").Find(&orders).Error; err != nil {
		return nil, nil, fiber.NewError(fiber.StatusInternalServerError, "No se pudieron cargar los pedidos")
	}
	return orders, branchID, nil
}

// GET /api/admin/reports/sales?year=&month=&branch_id=
// Resumen mensual de ventas sobre pedidos completados.
func SalesReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		year, month, from, to, err := parseReportPeriod(c)
		if err != nil {
			return err
		}

		orders, branchID, err := loadCompletedOrders(c, from, to)
		if err != nil {
			return err
		}

		res := SalesReportResponse{
			Year:      year,
			Month:     month,
			BranchID:  branchID,
			ByPayment: make(map[string]float64),
			ByType:    make(map[string]float64),
		}
		for _, o := range orders {
			res.OrderCount++
			res.Subtotal += o.Subtotal
			res.ItemDiscount += o.ItemDiscount
			res.CouponDiscount += o.CouponDiscount
			res.Total += o.Total
			res.ByPayment[string(o.PaymentMethod)] += o.Total
			res.ByType[string(o.Type)] += o.Total
		}

		return c.JSON(res)
	}
}

// GET /api/admin/reports/sales/export?year=&month=&branch_id=
// Descarga el detalle del mes en un XLSX.
func ExportSalesReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		year, month, from, to, err := parseReportPeriod(c)
		if err != nil {
			return err
		}

		orders, _, err := loadCompletedOrders(c, from, to)
		if err != nil {
			return err
		}

		f := excelize.NewFile()
		defer f.Close()

		sheet := f.GetSheetName(0)
		headers := []string{"Número", "Fecha", "Tipo", "Método de pago", "Subtotal", "Desc. artículos", "Desc. cupón", "Total"}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, h)
		}

		var total float64
		for row, o := range orders {
			values := []interface{}{
				o.Number,
				o.CreatedAt.Format("2006-01-02 15:04:05"),
				string(o.Type),
				string(o.PaymentMethod),
				o.Subtotal,
				o.ItemDiscount,
				o.CouponDiscount,
				o.Total,
			}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
				f.SetCellValue(sheet, cell, v)
			}
			total += o.Total
		}

		totalRow := len(orders) + 2
		labelCell, _ := excelize.CoordinatesToCellName(7, totalRow)
		valueCell, _ := excelize.CoordinatesToCellName(8, totalRow)
		f.SetCellValue(sheet, labelCell, "TOTAL")
		f.SetCellValue(sheet, valueCell, total)

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el archivo")
		}

		filename := fmt.Sprintf("ventas_%d_%02d.xlsx", year, month)
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
		return c.Send(buf.Bytes())
	}
}
