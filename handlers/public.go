package handlers

import (
	"net/http"

	"resto-qr-pos/config"
	"resto-qr-pos/models"
	"resto-qr-pos/statemachine"

	"github.com/gin-gonic/gin"
)

// GetMenu returns the orderable menu: available items only, grouped for
// display by category then name.
func GetMenu(c *gin.Context) {
	var items []models.MenuItem
	if err := config.DB.
		Where("available = ?", true).
		Order("category asc").
		Order("name asc").
		Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load menu"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(items), "items": items})
}

// GetPromotions returns active promotions ordered by title. Display only;
// discounts are never applied to order totals.
func GetPromotions(c *gin.Context) {
	var promos []models.Promotion
	if err := config.DB.
		Where("active = ?", true).
		Order("title asc").
		Find(&promos).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load promotions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(promos), "promotions": promos})
}

// GetTable resolves a scanned QR code's table id for the ordering page
func GetTable(c *gin.Context) {
	var table models.DiningTable
	if err := config.DB.First(&table, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"table": table})
}

// GetStateMachineInfo publishes the order lifecycle for docs and clients
func GetStateMachineInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"states": []models.OrderStatus{
			models.StatusPending,
			models.StatusPaid,
			models.StatusPreparing,
			models.StatusReady,
			models.StatusCompleted,
			models.StatusCancelled,
		},
		"terminal":    []models.OrderStatus{models.StatusCompleted, models.StatusCancelled},
		"transitions": statemachine.GetAllTransitions(),
	})
}
