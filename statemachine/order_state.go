package statemachine

import (
	"errors"

	"resto-qr-pos/models"
)

// Actors allowed to drive order transitions
const (
	ActorSystem  = "system" // payment settlement bridge
	ActorCashier = "cashier"
	ActorAdmin   = "admin"
)

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string
}

// validTransitions is the authoritative state machine definition.
// A pending order is deliberately locked from kitchen advancement: only
// the settlement bridge can move it to paid or cancelled, which prevents
// preparing an order whose electronic payment has not cleared. Walk-in
// cash/EDC orders are created directly as paid and never pass through here
// as pending.
var validTransitions = []Transition{
	// Settlement bridge resolves payment
	{From: models.StatusPending, To: models.StatusPaid, Actor: ActorSystem},
	{From: models.StatusPending, To: models.StatusCancelled, Actor: ActorSystem},
	// Kitchen path, cashier-driven, no skipping
	{From: models.StatusPaid, To: models.StatusPreparing, Actor: ActorCashier},
	{From: models.StatusPreparing, To: models.StatusReady, Actor: ActorCashier},
	{From: models.StatusReady, To: models.StatusCompleted, Actor: ActorCashier},
}

// transitionKey is used to look up valid transitions quickly
type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string
}

var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// IsTerminal reports whether no further transitions are accepted
func IsTerminal(status models.OrderStatus) bool {
	return status == models.StatusCompleted || status == models.StatusCancelled
}

// NextKitchenStatus returns the cashier's single forward step for an order,
// or false when the order cannot be advanced (pending, terminal, unknown).
func NextKitchenStatus(status models.OrderStatus) (models.OrderStatus, bool) {
	switch status {
	case models.StatusPaid:
		return models.StatusPreparing, true
	case models.StatusPreparing:
		return models.StatusReady, true
	case models.StatusReady:
		return models.StatusCompleted, true
	default:
		return "", false
	}
}

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given actor can move from one state to another
func CanTransition(from, to models.OrderStatus, actor string) error {
	key := transitionKey{From: from, To: to, Actor: actor}
	if transitionMap[key] {
		return nil
	}
	if from == models.StatusPending && actor == ActorCashier {
		return errors.New("order is awaiting payment and cannot be advanced by the cashier")
	}
	return errors.New(
		"invalid transition: " + string(from) + " -> " + string(to) +
			" is not allowed for actor '" + actor + "'. " +
			"Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
	)
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
