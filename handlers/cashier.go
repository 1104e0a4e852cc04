package handlers

import (
	"net/http"
	"strconv"

	"resto-qr-pos/config"
	"resto-qr-pos/middleware"
	"resto-qr-pos/models"
	"resto-qr-pos/payment"
	"resto-qr-pos/statemachine"
	"resto-qr-pos/store"

	"github.com/gin-gonic/gin"
)

// GetOrderQueue serves the live working set of active orders, oldest
// first. The list comes from the projection, which refetches on every
// store change notification.
func (a *API) GetOrderQueue(c *gin.Context) {
	orders := a.Queue.Snapshot()

	summary := map[string]int{}
	for _, o := range orders {
		summary[string(o.Status)]++
	}

	resp := gin.H{
		"count":         len(orders),
		"order_summary": summary,
		"orders":        orders,
	}
	if err := a.Queue.Err(); err != nil {
		// Stale snapshot; the next refetch recovers.
		resp["stale"] = true
	}
	c.JSON(http.StatusOK, resp)
}

type WalkInOrderRequest struct {
	CustomerName   string                `json:"customer_name" binding:"required"`
	Phone          string                `json:"phone" binding:"required"`
	PaymentType    string                `json:"payment_type" binding:"required,oneof=cash edc ewallet"`
	DeliveryMethod models.DeliveryMethod `json:"delivery_method" binding:"omitempty,oneof=dine_in takeaway delivery"`
	Notes          string                `json:"notes"`
	Items          []struct {
		MenuItemID uint   `json:"menu_item_id" binding:"required"`
		Quantity   int    `json:"quantity" binding:"required,min=1"`
		Notes      string `json:"notes"`
		Takeaway   bool   `json:"takeaway"`
	} `json:"items" binding:"required,min=1"`
}

// CreateWalkInOrder keys in an order at the counter. Cash and EDC payments
// are settled on the spot and attested by the cashier, so the order is
// created directly as paid. E-wallet payments wait for the provider and
// start pending with a payment session attached.
func (a *API) CreateWalkInOrder(c *gin.Context) {
	var req WalkInOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var items []store.OrderItemInput
	for _, reqItem := range req.Items {
		var menuItem models.MenuItem
		if err := config.DB.First(&menuItem, reqItem.MenuItemID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Menu item not found: " + strconv.FormatUint(uint64(reqItem.MenuItemID), 10)})
			return
		}
		if !menuItem.Available {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Menu item '" + menuItem.Name + "' is not available"})
			return
		}
		items = append(items, store.OrderItemInput{
			MenuItemID: menuItem.ID,
			Name:       menuItem.Name,
			UnitPrice:  menuItem.Price,
			Quantity:   reqItem.Quantity,
			Notes:      reqItem.Notes,
			Takeaway:   reqItem.Takeaway,
		})
	}

	status := models.StatusPaid
	if req.PaymentType == models.PaymentEwallet {
		status = models.StatusPending
	}

	orderID, err := a.Orders.CreateOrder(c.Request.Context(), store.CreateOrderParams{
		Items:          items, // TableID nil: walk-in orders have no table QR
		CustomerName:   req.CustomerName,
		Phone:          req.Phone,
		DeliveryMethod: req.DeliveryMethod,
		Notes:          req.Notes,
		Status:         status,
		PaymentType:    req.PaymentType,
		Actor:          statemachine.ActorCashier,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	order, err := a.Orders.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load created order"})
		return
	}

	resp := gin.H{
		"message":  "Walk-in order created",
		"order_id": orderID,
		"order":    order,
	}

	if req.PaymentType == models.PaymentEwallet {
		session, err := a.Payments.CreateSession(c.Request.Context(), payment.SessionRequest{
			OrderID:      orderID,
			Amount:       order.TotalAmount,
			Method:       models.PaymentEwallet,
			CustomerName: req.CustomerName,
			Phone:        req.Phone,
		})
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{
				"error":    "Order created but payment session failed. Please retry payment.",
				"order_id": orderID,
			})
			return
		}
		resp["payment"] = session
	}

	c.JSON(http.StatusCreated, resp)
}

// AdvanceOrder moves an order one step along the kitchen path. Pending
// orders are locked until payment clears; terminal orders never move.
func (a *API) AdvanceOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	order, err := a.Orders.GetOrder(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	next, ok := statemachine.NextKitchenStatus(order.Status)
	if !ok {
		reason := "order is in a terminal state"
		if order.Status == models.StatusPending {
			reason = "order is awaiting payment and cannot be advanced"
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":          "Cannot advance order",
			"reason":         reason,
			"current_status": order.Status,
		})
		return
	}

	if err := statemachine.CanTransition(order.Status, next, statemachine.ActorCashier); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":             "Invalid state transition",
			"current_status":    order.Status,
			"requested":         next,
			"reason":            err.Error(),
			"valid_next_states": statemachine.ValidTransitionsFrom(order.Status),
		})
		return
	}

	actor := statemachine.ActorCashier
	if middleware.GetRole(c) == models.RoleAdmin {
		actor = statemachine.ActorAdmin
	}
	// No optimistic mutation: a rejected write leaves the queue view to the
	// next projection refresh.
	if err := a.Orders.UpdateOrderStatus(c.Request.Context(), uint(id), next, actor, ""); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Order status updated",
		"order_id":        order.ID,
		"previous_status": order.Status,
		"current_status":  next,
	})
}
