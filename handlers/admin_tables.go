package handlers

import (
	"net/http"
	"strconv"

	"resto-qr-pos/config"
	"resto-qr-pos/models"

	"github.com/gin-gonic/gin"
)

type TableRequest struct {
	TableNumber string `json:"table_number" binding:"required"`
	Seats       int    `json:"seats" binding:"omitempty,min=1"`
}

func AdminListTables(c *gin.Context) {
	var tables []models.DiningTable
	config.DB.Order("table_number asc").Find(&tables)
	c.JSON(http.StatusOK, gin.H{"count": len(tables), "tables": tables})
}

func AddTable(c *gin.Context) {
	var req TableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	table := models.DiningTable{TableNumber: req.TableNumber, Seats: req.Seats}
	if table.Seats == 0 {
		table.Seats = 2
	}
	if err := config.DB.Create(&table).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Failed to create table (number may already exist)"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Table created", "table": table})
}

func DeleteTable(c *gin.Context) {
	res := config.DB.Delete(&models.DiningTable{}, c.Param("tableId"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete table"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Table deleted"})
}

// GetTableQR renders the printable QR code PNG for one table
func (a *API) GetTableQR(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("tableId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid table id"})
		return
	}

	var table models.DiningTable
	if err := config.DB.First(&table, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
		return
	}

	png, err := a.QR.TableQR(table.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate QR code"})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
