package statemachine

import (
	"errors"

	"journeatz-api/models"
)

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor models.UserRole
}

// validTransitions is the authoritative state machine definition
var validTransitions = []Transition{
	// Kitchen accepts the order and starts preparing
	{From: models.StatusPending, To: models.StatusInProgress, Actor: models.RoleKitchen},
	// Kitchen or customer can cancel a pending order
	{From: models.StatusPending, To: models.StatusCancelled, Actor: models.RoleKitchen},
	{From: models.StatusPending, To: models.StatusCancelled, Actor: models.RoleCustomer},
	// Kitchen marks the order ready for pickup, or cancels mid-preparation
	{From: models.StatusInProgress, To: models.StatusReady, Actor: models.RoleKitchen},
	{From: models.StatusInProgress, To: models.StatusCancelled, Actor: models.RoleKitchen},
	// Driver delivers a ready order
	{From: models.StatusReady, To: models.StatusDelivered, Actor: models.RoleDriver},
}

type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor models.UserRole
}

var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// IsTerminal reports whether no further transitions leave the given status
func IsTerminal(status models.OrderStatus) bool {
	return len(ValidTransitionsFrom(status)) == 0
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

// CanTransition checks if a given actor can move an order from one state to
// another. Admin may force any change between distinct states.
func CanTransition(from, to models.OrderStatus, actor models.UserRole) error {
	if actor == models.RoleAdmin && from != to {
		return nil
	}
	if transitionMap[transitionKey{From: from, To: to, Actor: actor}] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " -> " + string(to) +
			" is not allowed for role '" + string(actor) + "'. " +
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
