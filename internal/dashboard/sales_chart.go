package dashboard

import (
	"fmt"
	"sort"
	"time"

	"farmacia-backend/internal/database"
	"farmacia-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type SalesChartPoint struct {
	Label         string  `json:"label"` // fecha / inicio de semana / inicio de mes
	PointOfSale   float64 `json:"point_of_sale"`
	Cash          float64 `json:"cash"`
	BankTransfer  float64 `json:"bank_transfer"`
	MobilePayment float64 `json:"mobile_payment"`
	Total         float64 `json:"total"`
}

type SalesChartTotals struct {
	PointOfSale   float64 `json:"point_of_sale"`
	Cash          float64 `json:"cash"`
	BankTransfer  float64 `json:"bank_transfer"`
	MobilePayment float64 `json:"mobile_payment"`
	Total         float64 `json:"total"`
}

type SalesChartResponse struct {
	Period      string            `json:"period"` // daily | weekly | monthly
	From        string            `json:"from"`
	To          string            `json:"to"`
	Points      []SalesChartPoint `json:"points"`
	GrandTotals SalesChartTotals  `json:"grand_totals"`
}

// GET /api/admin/dashboard/sales-chart?period=daily&count=7&branch_id=1
// Ventas completadas agrupadas por método de pago.
func SalesChartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		period := c.Query("period", "daily") // daily | weekly | monthly
		countStr := c.Query("count", "")

		var count int
		if countStr == "" {
			switch period {
			case "weekly":
				count = 8
			case "monthly":
				count = 12
			default:
				period = "daily"
				count = 7
			}
		} else {
			if _, err := fmt.Sscan(countStr, &count); err != nil || count <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "count inválido")
			}
		}

		now := time.Now()
		loc := now.Location()
		end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)
		var start time.Time

		var bucketExpr string
		switch period {
		case "weekly":
			bucketExpr = "date_trunc('week', created_at)::date"
			start = end.AddDate(0, 0, -7*count)
		case "monthly":
			bucketExpr = "date_trunc('month', created_at)::date"
			start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc).AddDate(0, -(count - 1), 0)
		default:
			period = "daily"
			bucketExpr = "created_at::date"
			start = end.AddDate(0, 0, -count)
		}

		type row struct {
			Bucket time.Time `gorm:"column:bucket"`
			Method string    `gorm:"column:method"`
			Total  float64   `gorm:"column:total"`
		}
		var rows []row

		sql := `
			SELECT ` + bucketExpr + ` AS bucket,
				   payment_method AS method,
				   SUM(total) AS total
			FROM orders
			WHERE status = ? AND created_at >= ? AND created_at < ?
		`
		args := []interface{}{string(models.StatusCompleted), start, end}
		if bid := c.QueryInt("branch_id", 0); bid > 0 {
			sql += " AND branch_id = ?"
			args = append(args, bid)
		}
		sql += " GROUP BY bucket, method ORDER BY bucket ASC;"

		if err := database.DB.Raw(sql, args...).Scan(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron agregar las ventas")
		}

		buckets := make(map[time.Time]*SalesChartPoint)
		for _, r := range rows {
			p, ok := buckets[r.Bucket]
			if !ok {
				p = &SalesChartPoint{Label: r.Bucket.Format("2006-01-02")}
				buckets[r.Bucket] = p
			}

			switch r.Method {
			case string(models.PaymentPointOfSale):
				p.PointOfSale += r.Total
			case string(models.PaymentCash):
				p.Cash += r.Total
			case string(models.PaymentBankTransfer):
				p.BankTransfer += r.Total
			case string(models.PaymentMobile):
				p.MobilePayment += r.Total
			}
		}

		points := make([]SalesChartPoint, 0, len(buckets))
		for _, p := range buckets {
			p.Total = p.PointOfSale + p.Cash + p.BankTransfer + p.MobilePayment
			points = append(points, *p)
		}
		sort.Slice(points, func(i, j int) bool { return points[i].Label < points[j].Label })

		grand := SalesChartTotals{}
		for _, p := range points {
			grand.PointOfSale += p.PointOfSale
			grand.Cash += p.Cash
			grand.BankTransfer += p.BankTransfer
			grand.MobilePayment += p.MobilePayment
			grand.Total += p.Total
		}

		return c.JSON(SalesChartResponse{
			Period:      period,
			From:        start.Format("2006-01-02"),
			To:          end.AddDate(0, 0, -1).Format("2006-01-02"),
			Points:      points,
			GrandTotals: grand,
		})
	}
}
