package handlers

import (
	"net/http"

	"resto-qr-pos/cart"
	"resto-qr-pos/payment"
	"resto-qr-pos/projection"
	"resto-qr-pos/qr"
	"resto-qr-pos/store"

	"github.com/gin-gonic/gin"
)

// API bundles the injected collaborators for the order-taking flows. Cart
// state in particular is owned here and reached only through these
// handlers — no package globals.
type API struct {
	Carts    *cart.Registry
	Orders   *store.OrderStore
	Queue    *projection.Queue
	Payments *payment.Client
	Bridge   *payment.Bridge
	QR       qr.Generator
}

func NewAPI(carts *cart.Registry, orders *store.OrderStore, queue *projection.Queue, payments *payment.Client, generator qr.Generator) *API {
	return &API{
		Carts:    carts,
		Orders:   orders,
		Queue:    queue,
		Payments: payments,
		Bridge:   payment.NewBridge(orders),
		QR:       generator,
	}
}

// sessionID pulls the opaque browsing-session identifier carts are keyed
// by. Aborts with 400 when missing.
func sessionID(c *gin.Context) (string, bool) {
	id := c.GetHeader("X-Session-ID")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Session-ID header required"})
		return "", false
	}
	return id, true
}
