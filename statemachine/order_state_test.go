package statemachine

import (
	"testing"

	"resto-qr-pos/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForwardKitchenPath(t *testing.T) {
	steps := []struct {
		from models.OrderStatus
		to   models.OrderStatus
	}{
		{models.StatusPaid, models.StatusPreparing},
		{models.StatusPreparing, models.StatusReady},
		{models.StatusReady, models.StatusCompleted},
	}
	for _, s := range steps {
		assert.NoError(t, CanTransition(s.from, s.to, ActorCashier),
			"cashier should advance %s -> %s", s.from, s.to)
	}
}

func TestPendingIsLockedFromKitchenAdvance(t *testing.T) {
	err := CanTransition(models.StatusPending, models.StatusPreparing, ActorCashier)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "awaiting payment")

	// The bridge is the only actor allowed to resolve a pending order.
	assert.NoError(t, CanTransition(models.StatusPending, models.StatusPaid, ActorSystem))
	assert.NoError(t, CanTransition(models.StatusPending, models.StatusCancelled, ActorSystem))
	assert.Error(t, CanTransition(models.StatusPending, models.StatusPaid, ActorCashier))
}

func TestNoBackwardOrSkippingTransitions(t *testing.T) {
	invalid := []struct {
		from  models.OrderStatus
		to    models.OrderStatus
		actor string
	}{
		{models.StatusPreparing, models.StatusPending, ActorCashier},
		{models.StatusPreparing, models.StatusPending, ActorSystem},
		{models.StatusPaid, models.StatusReady, ActorCashier},          // skips preparing
		{models.StatusPreparing, models.StatusCompleted, ActorCashier}, // skips ready
		{models.StatusPaid, models.StatusPending, ActorSystem},
	}
	for _, tt := range invalid {
		assert.Error(t, CanTransition(tt.from, tt.to, tt.actor),
			"%s -> %s by %s must be rejected", tt.from, tt.to, tt.actor)
	}
}

func TestTerminalStatesAcceptNothing(t *testing.T) {
	terminals := []models.OrderStatus{models.StatusCompleted, models.StatusCancelled}
	targets := []models.OrderStatus{
		models.StatusPending, models.StatusPaid, models.StatusPreparing,
		models.StatusReady, models.StatusCompleted, models.StatusCancelled,
	}
	actors := []string{ActorSystem, ActorCashier, ActorAdmin}

	for _, from := range terminals {
		assert.True(t, IsTerminal(from))
		assert.Empty(t, ValidTransitionsFrom(from))
		for _, to := range targets {
			for _, actor := range actors {
				assert.Error(t, CanTransition(from, to, actor))
			}
		}
	}
}

func TestNextKitchenStatus(t *testing.T) {
	tests := []struct {
		status models.OrderStatus
		next   models.OrderStatus
		ok     bool
	}{
		{models.StatusPaid, models.StatusPreparing, true},
		{models.StatusPreparing, models.StatusReady, true},
		{models.StatusReady, models.StatusCompleted, true},
		{models.StatusPending, "", false}, // locked until payment clears
		{models.StatusCompleted, "", false},
		{models.StatusCancelled, "", false},
	}
	for _, tt := range tests {
		next, ok := NextKitchenStatus(tt.status)
		assert.Equal(t, tt.ok, ok, "status %s", tt.status)
		assert.Equal(t, tt.next, next, "status %s", tt.status)
	}
}
