package handlers

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"resto-qr-pos/config"
	"resto-qr-pos/models"

	"github.com/gin-gonic/gin"
)

// OrdersReportCSV exports orders as CSV for the reporting spreadsheet.
// Optional from/to query params (YYYY-MM-DD) bound the created_at range.
func OrdersReportCSV(c *gin.Context) {
	query := config.DB.Model(&models.Order{})

	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'from' date, want YYYY-MM-DD"})
			return
		}
		query = query.Where("created_at >= ?", t)
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'to' date, want YYYY-MM-DD"})
			return
		}
		query = query.Where("created_at < ?", t.AddDate(0, 0, 1))
	}

	var orders []models.Order
	if err := query.Order("created_at asc").Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load orders"})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="orders.csv"`)

	w := csv.NewWriter(c.Writer)
	defer w.Flush()

	w.Write([]string{"id", "created_at", "table_id", "customer_name", "status", "delivery_method", "payment_type", "transaction_id", "total_amount"})
	for _, o := range orders {
		tableID := ""
		if o.TableID != nil {
			tableID = strconv.FormatUint(uint64(*o.TableID), 10)
		}
		w.Write([]string{
			strconv.FormatUint(uint64(o.ID), 10),
			o.CreatedAt.Format(time.RFC3339),
			tableID,
			o.CustomerName,
			string(o.Status),
			string(o.DeliveryMethod),
			o.PaymentType,
			o.TransactionID,
			strconv.FormatFloat(o.TotalAmount, 'f', -1, 64),
		})
	}
}
