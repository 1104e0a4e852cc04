package payment

import (
	"context"
	"testing"

	"resto-qr-pos/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOrders records payment updates the way the store would apply them:
// a plain overwrite of status and payment metadata.
type fakeOrders struct {
	status  map[uint]models.OrderStatus
	ptype   map[uint]string
	txid    map[uint]string
	applied int
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{
		status: map[uint]models.OrderStatus{},
		ptype:  map[uint]string{},
		txid:   map[uint]string{},
	}
}

func (f *fakeOrders) UpdateOrderPayment(_ context.Context, id uint, to models.OrderStatus, paymentType, transactionID string) error {
	f.status[id] = to
	f.ptype[id] = paymentType
	f.txid[id] = transactionID
	f.applied++
	return nil
}

func TestMapStatus(t *testing.T) {
	tests := []struct {
		provider string
		want     models.OrderStatus
	}{
		{"capture", models.StatusPaid},
		{"settlement", models.StatusPaid},
		{"pending", models.StatusPending},
		{"deny", models.StatusCancelled},
		{"cancel", models.StatusCancelled},
		{"expire", models.StatusCancelled},
		{"refund", models.StatusPending},    // unknown: never guess paid
		{"authorize", models.StatusPending}, // unknown
		{"", models.StatusPending},          // unknown
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MapStatus(tt.provider), "transaction_status %q", tt.provider)
	}
}

func TestApplySettlementIsIdempotent(t *testing.T) {
	orders := newFakeOrders()
	bridge := NewBridge(orders)
	ctx := context.Background()

	n := Notification{
		OrderID:           "42",
		TransactionStatus: "settlement",
		PaymentType:       "gopay",
		TransactionID:     "tx-abc",
	}

	status, err := bridge.Apply(ctx, n)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, status)
	assert.Equal(t, models.StatusPaid, orders.status[42])

	// Same notification again: same final state, no drift.
	status, err = bridge.Apply(ctx, n)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, status)
	assert.Equal(t, models.StatusPaid, orders.status[42])
	assert.Equal(t, "gopay", orders.ptype[42])
	assert.Equal(t, "tx-abc", orders.txid[42])
}

func TestApplyPersistsPaymentMetadata(t *testing.T) {
	orders := newFakeOrders()
	bridge := NewBridge(orders)

	_, err := bridge.Apply(context.Background(), Notification{
		OrderID:           "7",
		TransactionStatus: "expire",
		PaymentType:       "qris",
		TransactionID:     "tx-expired",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, orders.status[7])
	assert.Equal(t, "qris", orders.ptype[7])
	assert.Equal(t, "tx-expired", orders.txid[7])
}

func TestApplyRejectsMalformedOrderID(t *testing.T) {
	bridge := NewBridge(newFakeOrders())

	_, err := bridge.Apply(context.Background(), Notification{
		OrderID:           "not-a-number",
		TransactionStatus: "settlement",
	})
	assert.ErrorIs(t, err, ErrBadOrderID)
}
