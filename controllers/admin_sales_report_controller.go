package controllers

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/storecart/storecart/config"
	"github.com/storecart/storecart/middleware"
	"github.com/storecart/storecart/models"
	"github.com/storecart/storecart/repository"
	"github.com/storecart/storecart/utils"
	"github.com/tealeg/xlsx"
)

// reportWindow resolves a period query value into a start/end range.
func reportWindow(period string, now time.Time) (time.Time, time.Time, bool) {
	switch period {
	case "day":
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		end := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999999999, now.Location())
		return start, end, true
	case "week":
		end := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999999999, now.Location())
		start := end.AddDate(0, 0, -6)
		start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
		return start, end, true
	case "month":
		return now.AddDate(0, 0, -30).Truncate(24 * time.Hour), now.Add(24 * time.Hour), true
	}
	return time.Time{}, time.Time{}, false
}

// salesSummary holds the aggregated figures of a reporting window.
type salesSummary struct {
	TotalSales      int     `json:"total_sales"`
	TotalRevenue    float64 `json:"total_revenue"`
	TotalItems      int     `json:"total_items"`
	TotalCustomers  int     `json:"total_customers"`
	CancelledOrders int     `json:"cancelled_orders"`
	AverageOrderVal float64 `json:"average_order_value"`
}

func summarizeOrders(orders []models.Order) salesSummary {
	var summary salesSummary
	customerSet := make(map[uint]bool)
	for _, order := range orders {
		if order.Status == models.OrderStatusCancelled {
			summary.CancelledOrders++
			continue
		}
		summary.TotalSales++
		summary.TotalRevenue += order.Amount
		customerSet[order.UserID] = true
		for _, item := range order.Items {
			summary.TotalItems += item.Quantity
		}
	}
	summary.TotalCustomers = len(customerSet)
	if summary.TotalSales > 0 {
		summary.AverageOrderVal = math.Round((summary.TotalRevenue/float64(summary.TotalSales))*100) / 100
	}
	summary.TotalRevenue = math.Round(summary.TotalRevenue*100) / 100
	return summary
}

// topProductRow is one entry of the best-sellers aggregation.
type topProductRow struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Units     int     `json:"units"`
	Revenue   float64 `json:"revenue"`
}

// GetSalesReport returns a JSON summary of the storefront's sales for the
// requested period, including its best-selling products.
func GetSalesReport(c *gin.Context) {
	utils.LogInfo("GetSalesReport called")

	storefrontID, ok := middleware.CurrentStorefrontID(c)
	if !ok {
		utils.BadRequest(c, "No storefront selected")
		return
	}

	period := c.DefaultQuery("period", "day")
	startDate, endDate, ok := reportWindow(period, time.Now())
	if !ok {
		utils.LogError("Invalid period specified: %s", period)
		utils.BadRequest(c, "Period must be day, week, or month")
		return
	}

	var orders []models.Order
	if err := config.DB.Where("storefront_id = ? AND created_at >= ? AND created_at <= ?", storefrontID, startDate, endDate).
		Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		utils.LogError("Failed to fetch orders for report: %v", err)
		utils.InternalServerError(c, "Failed to fetch orders")
		return
	}

	var topProducts []topProductRow
	repo := repository.New[models.OrderItem](config.DB)
	err := repo.Aggregate(&topProducts,
		repository.SelectExpr("order_items.product_id as product_id, products.name as name, SUM(order_items.quantity) as units, SUM(order_items.price * order_items.quantity) as revenue"),
		repository.Join("JOIN orders ON orders.id = order_items.order_id"),
		repository.Join("JOIN products ON products.id = order_items.product_id"),
		repository.Where("orders.storefront_id = ? AND orders.created_at >= ? AND orders.created_at <= ? AND orders.status <> ?",
			storefrontID, startDate, endDate, models.OrderStatusCancelled),
		repository.GroupBy("order_items.product_id, products.name"),
		repository.OrderBy("units DESC"),
	)
	if err != nil {
		utils.LogError("Failed to aggregate top products: %v", err)
		utils.SendAppError(c, err)
		return
	}
	if len(topProducts) > 10 {
		topProducts = topProducts[:10]
	}

	utils.Success(c, "Sales report generated successfully", gin.H{
		"period":       period,
		"start_date":   startDate.Format("2006-01-02"),
		"end_date":     endDate.Format("2006-01-02"),
		"summary":      summarizeOrders(orders),
		"top_products": topProducts,
	})
}

// DownloadSalesReportExcel streams the storefront's sales report for the
// requested period as an Excel workbook.
func DownloadSalesReportExcel(c *gin.Context) {
	utils.LogInfo("DownloadSalesReportExcel called")

	storefrontID, ok := middleware.CurrentStorefrontID(c)
	if !ok {
		utils.BadRequest(c, "No storefront selected")
		return
	}

	period := c.DefaultQuery("period", "day")
	startDate, endDate, ok := reportWindow(period, time.Now())
	if !ok {
		utils.LogError("Invalid period specified: %s", period)
		utils.BadRequest(c, "Period must be day, week, or month")
		return
	}

	var storefront models.Storefront
	if err := config.DB.First(&storefront, storefrontID).Error; err != nil {
		utils.NotFound(c, "Storefront not found")
		return
	}

	var orders []models.Order
	if err := config.DB.Where("storefront_id = ? AND created_at >= ? AND created_at <= ?", storefrontID, startDate, endDate).
		Preload("User").
		Preload("Items.Product").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		utils.LogError("Failed to fetch orders: %v", err)
		utils.InternalServerError(c, "Failed to fetch orders")
		return
	}
	utils.LogDebug("Retrieved %d orders for Excel report", len(orders))

	summary := summarizeOrders(orders)

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Sales Report")
	if err != nil {
		utils.LogError("Failed to create Excel sheet: %v", err)
		utils.InternalServerError(c, "Failed to create Excel sheet")
		return
	}

	titleRow := sheet.AddRow()
	titleRow.AddCell().SetString(storefront.Name + " - Sales Report")
	titleRow = sheet.AddRow()
	titleRow.AddCell().SetString("Period: " + strings.ToUpper(period) + " | " + startDate.Format("2006-01-02") + " to " + endDate.Format("2006-01-02"))
	sheet.AddRow() // spacing

	headers := []string{"Order ID", "Customer", "Date", "Items", "Amount", "Payment Mode", "Status"}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		cell := headerRow.AddCell()
		cell.SetString(h)
		style := xlsx.NewStyle()
		font := xlsx.DefaultFont()
		font.Bold = true
		style.Font = *font
		cell.SetStyle(style)
	}

	for _, order := range orders {
		itemCount := 0
		for _, item := range order.Items {
			itemCount += item.Quantity
		}
		row := sheet.AddRow()
		row.AddCell().SetInt(int(order.ID))
		row.AddCell().SetString(order.User.Name)
		row.AddCell().SetString(order.CreatedAt.Format("2006-01-02 15:04"))
		row.AddCell().SetInt(itemCount)
		row.AddCell().SetFloat(order.Amount)
		row.AddCell().SetString(order.PaymentMethod)
		row.AddCell().SetString(order.Status)
	}

	sheet.AddRow() // spacing

	summaryRow := sheet.AddRow()
	summaryRow.AddCell().SetString("Summary")
	style := xlsx.NewStyle()
	font := xlsx.DefaultFont()
	font.Bold = true
	style.Font = *font
	summaryRow.Cells[0].SetStyle(style)

	summaryData := [][]string{
		{"Total Sales", fmt.Sprintf("%d", summary.TotalSales)},
		{"Total Revenue", fmt.Sprintf("%.2f", summary.TotalRevenue)},
		{"Total Items", fmt.Sprintf("%d", summary.TotalItems)},
		{"Total Customers", fmt.Sprintf("%d", summary.TotalCustomers)},
		{"Cancelled Orders", fmt.Sprintf("%d", summary.CancelledOrders)},
		{"Avg. Order Value", fmt.Sprintf("%.2f", summary.AverageOrderVal)},
	}
	for _, data := range summaryData {
		row := sheet.AddRow()
		row.AddCell().SetString(data[0])
		row.AddCell().SetString(data[1])
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=sales_report_%s.xlsx", period))
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write Excel file: %v", err)
		utils.InternalServerError(c, "Failed to write Excel file")
		return
	}
	utils.LogInfo("Successfully generated Excel report for period %s", period)
}
