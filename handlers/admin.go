package handlers

import (
	"net/http"
	"strconv"

	"resto-qr-pos/config"
	"resto-qr-pos/middleware"
	"resto-qr-pos/models"
	"resto-qr-pos/statemachine"

	"github.com/gin-gonic/gin"
)

// ── Menu management ────────────────────────────────────────────────

type MenuItemRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" binding:"required,gte=0"`
	Category    string   `json:"category"`
	ImageURL    string   `json:"image_url"`
	Available   *bool    `json:"available"`
}

// AdminListMenu shows everything, including unavailable items
func AdminListMenu(c *gin.Context) {
	var items []models.MenuItem
	config.DB.Order("category asc").Order("name asc").Find(&items)
	c.JSON(http.StatusOK, gin.H{"count": len(items), "items": items})
}

func AddMenuItem(c *gin.Context) {
	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := models.MenuItem{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Available:   true,
	}
	if req.Available != nil {
		item.Available = *req.Available
	}

	if err := config.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create menu item"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Menu item created", "item": item})
}

func UpdateMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := config.DB.First(&item, c.Param("itemId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}

	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item.Name = req.Name
	item.Description = req.Description
	item.Price = *req.Price
	item.Category = req.Category
	item.ImageURL = req.ImageURL
	if req.Available != nil {
		item.Available = *req.Available
	}

	if err := config.DB.Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update menu item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item updated", "item": item})
}

func DeleteMenuItem(c *gin.Context) {
	res := config.DB.Delete(&models.MenuItem{}, c.Param("itemId"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete menu item"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted"})
}

// ── Promotions ─────────────────────────────────────────────────────

type PromotionRequest struct {
	Title           string `json:"title" binding:"required"`
	Description     string `json:"description"`
	DiscountPercent *int   `json:"discount_percent" binding:"required,gte=0,lte=100"`
	ImageURL        string `json:"image_url"`
	Active          *bool  `json:"active"`
}

func AdminListPromotions(c *gin.Context) {
	var promos []models.Promotion
	config.DB.Order("title asc").Find(&promos)
	c.JSON(http.StatusOK, gin.H{"count": len(promos), "promotions": promos})
}

func AddPromotion(c *gin.Context) {
	var req PromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	promo := models.Promotion{
		Title:           req.Title,
		Description:     req.Description,
		DiscountPercent: *req.DiscountPercent,
		ImageURL:        req.ImageURL,
		Active:          true,
	}
	if req.Active != nil {
		promo.Active = *req.Active
	}

	if err := config.DB.Create(&promo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create promotion"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Promotion created", "promotion": promo})
}

func UpdatePromotion(c *gin.Context) {
	var promo models.Promotion
	if err := config.DB.First(&promo, c.Param("promoId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Promotion not found"})
		return
	}

	var req PromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	promo.Title = req.Title
	promo.Description = req.Description
	promo.DiscountPercent = *req.DiscountPercent
	promo.ImageURL = req.ImageURL
	if req.Active != nil {
		promo.Active = *req.Active
	}

	if err := config.DB.Save(&promo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update promotion"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Promotion updated", "promotion": promo})
}

func DeletePromotion(c *gin.Context) {
	res := config.DB.Delete(&models.Promotion{}, c.Param("promoId"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete promotion"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Promotion not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Promotion deleted"})
}

// ── Orders ─────────────────────────────────────────────────────────

// AdminListOrders returns all orders, newest first, optionally filtered by
// status.
func AdminListOrders(c *gin.Context) {
	var orders []models.Order
	query := config.DB.Preload("Items").Preload("Table")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	query.Order("created_at desc").Find(&orders)

	summary := map[string]int{}
	for _, o := range orders {
		summary[string(o.Status)]++
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "order_summary": summary, "orders": orders})
}

type ForceStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
	Note   string             `json:"note"`
}

var knownStatuses = map[models.OrderStatus]bool{
	models.StatusPending:   true,
	models.StatusPaid:      true,
	models.StatusPreparing: true,
	models.StatusReady:     true,
	models.StatusCompleted: true,
	models.StatusCancelled: true,
}

// AdminForceOrderStatus sets an order status directly, bypassing the actor
// checks. Terminal states still accept nothing.
func (a *API) AdminForceOrderStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	var req ForceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !knownStatuses[req.Status] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status '" + string(req.Status) + "'"})
		return
	}

	order, err := a.Orders.GetOrder(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if statemachine.IsTerminal(order.Status) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":          "Order is in a terminal state",
			"current_status": order.Status,
		})
		return
	}

	if err := a.Orders.UpdateOrderStatus(c.Request.Context(), uint(id), req.Status, statemachine.ActorAdmin, req.Note); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Order status forced",
		"order_id":        order.ID,
		"previous_status": order.Status,
		"current_status":  req.Status,
	})
}

// ── Users ──────────────────────────────────────────────────────────

func AdminListUsers(c *gin.Context) {
	var users []models.User
	config.DB.Order("created_at asc").Find(&users)
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}

type SetRoleRequest struct {
	Role models.UserRole `json:"role" binding:"required,oneof=admin cashier"`
}

func AdminSetUserRole(c *gin.Context) {
	var user models.User
	if err := config.DB.First(&user, c.Param("userId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var req SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if user.ID == middleware.GetUserID(c) && req.Role != models.RoleAdmin {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot demote your own account"})
		return
	}

	if err := config.DB.Model(&user).Update("role", req.Role).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Role updated", "user_id": user.ID, "role": req.Role})
}
