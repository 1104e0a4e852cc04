package payment

import (
	"context"
	"errors"
	"strconv"

	"resto-qr-pos/models"
)

// Notification is the provider's asynchronous callback payload.
type Notification struct {
	OrderID           string `json:"order_id" binding:"required"`
	TransactionStatus string `json:"transaction_status" binding:"required"`
	PaymentType       string `json:"payment_type"`
	TransactionID     string `json:"transaction_id"`
}

// OrderUpdater is the slice of the order store the bridge needs.
type OrderUpdater interface {
	UpdateOrderPayment(ctx context.Context, id uint, to models.OrderStatus, paymentType, transactionID string) error
}

var ErrBadOrderID = errors.New("notification carries a malformed order id")

// MapStatus translates provider transaction statuses to order statuses.
// Unrecognized values fall back to pending: an unknown status must never be
// guessed as a successful payment.
func MapStatus(transactionStatus string) models.OrderStatus {
	switch transactionStatus {
	case "capture", "settlement":
		return models.StatusPaid
	case "deny", "cancel", "expire":
		return models.StatusCancelled
	case "pending":
		return models.StatusPending
	default:
		return models.StatusPending
	}
}

// Bridge applies settlement notifications to orders. Application is a plain
// status overwrite, so repeated delivery of the same notification is
// idempotent.
type Bridge struct {
	Orders OrderUpdater
}

func NewBridge(orders OrderUpdater) *Bridge {
	return &Bridge{Orders: orders}
}

func (b *Bridge) Apply(ctx context.Context, n Notification) (models.OrderStatus, error) {
	id, err := strconv.ParseUint(n.OrderID, 10, 32)
	if err != nil {
		return "", ErrBadOrderID
	}

	status := MapStatus(n.TransactionStatus)
	if err := b.Orders.UpdateOrderPayment(ctx, uint(id), status, n.PaymentType, n.TransactionID); err != nil {
		return "", err
	}
	return status, nil
}
