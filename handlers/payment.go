package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"resto-qr-pos/payment"
	"resto-qr-pos/store"

	"github.com/gin-gonic/gin"
)

type PaymentSessionRequest struct {
	OrderID       uint   `json:"order_id" binding:"required"`
	PaymentMethod string `json:"payment_method" binding:"required,oneof=qris gopay ovo ewallet"`
}

// CreatePaymentSession re-opens a provider session for an existing pending
// order, e.g. after the customer dismissed the payment popup.
func (a *API) CreatePaymentSession(c *gin.Context) {
	var req PaymentSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := a.Orders.GetOrder(c.Request.Context(), req.OrderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	session, err := a.Payments.CreateSession(c.Request.Context(), payment.SessionRequest{
		OrderID:      order.ID,
		Amount:       order.TotalAmount,
		Method:       req.PaymentMethod,
		CustomerName: order.CustomerName,
		Phone:        order.Phone,
	})
	if err != nil {
		if errors.Is(err, payment.ErrNotConfigured) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Payment provider not configured"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create payment session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order_id": order.ID, "payment": session})
}

// PaymentCallback is the provider's webhook. The settlement bridge maps the
// transaction status onto the order; reapplying the same notification is
// harmless.
func (a *API) PaymentCallback(c *gin.Context) {
	var n payment.Notification
	if err := c.ShouldBindJSON(&n); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, err := a.Bridge.Apply(c.Request.Context(), n)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrBadOrderID):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed order_id"})
		case errors.Is(err, store.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order " + strconv.Quote(n.OrderID) + " not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply payment notification"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "status": status})
}
