package handlers

import (
	"log"
	"net/http"

	"resto-qr-pos/models"
	"resto-qr-pos/payment"
	"resto-qr-pos/statemachine"
	"resto-qr-pos/store"

	"github.com/gin-gonic/gin"
)

type CheckoutRequest struct {
	CustomerName   string                `json:"customer_name" binding:"required"`
	Phone          string                `json:"phone" binding:"required"`
	DeliveryMethod models.DeliveryMethod `json:"delivery_method" binding:"omitempty,oneof=dine_in takeaway delivery"`
	Notes          string                `json:"notes"`
	PaymentMethod  string                `json:"payment_method" binding:"required,oneof=qris gopay ovo"`
}

// Checkout turns the session cart into a pending order and opens a payment
// session. The order exists before payment starts; if the customer abandons
// the popup it simply stays pending until the provider says otherwise.
func (a *API) Checkout(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessionCart := a.Carts.Get(sid)
	lines := sessionCart.Items()
	if len(lines) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		return
	}

	var items []store.OrderItemInput
	for _, line := range lines {
		items = append(items, store.OrderItemInput{
			MenuItemID: line.MenuItem.ID,
			Name:       line.MenuItem.Name,
			UnitPrice:  line.MenuItem.Price,
			Quantity:   line.Quantity,
			Notes:      line.Notes,
			Takeaway:   line.Takeaway,
		})
	}

	var tableID *uint
	if id, has := sessionCart.TableID(); has {
		tableID = &id
	}

	orderID, err := a.Orders.CreateOrder(c.Request.Context(), store.CreateOrderParams{
		TableID:        tableID,
		Items:          items,
		CustomerName:   req.CustomerName,
		Phone:          req.Phone,
		DeliveryMethod: req.DeliveryMethod,
		Notes:          req.Notes,
		// Status omitted: electronic payments start pending and are
		// resolved by the settlement bridge.
		Actor: statemachine.ActorSystem,
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

	// Order submitted; the cart's job is done.
	sessionCart.Clear()

	session, err := a.Payments.CreateSession(c.Request.Context(), payment.SessionRequest{
		OrderID:      orderID,
		Amount:       order.TotalAmount,
		Method:       req.PaymentMethod,
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
	})
	if err != nil {
		// The order is already persisted as pending; surface the failure
		// and let the customer retry payment from the confirmation page.
		log.Printf("payment session for order %d failed: %v", orderID, err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error":    "Order created but payment session failed. Please retry payment.",
			"order_id": orderID,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Order created",
		"order_id": orderID,
		"order":    order,
		"payment":  session,
	})
}
