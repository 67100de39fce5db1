package policy

import (
	"fmt"
	"strings"

	"gogo-delivery/models"
)

// Transition defines a valid order state change and who can perform it
type Transition struct {
	From  models.OrderState `json:"from"`
	To    models.OrderState `json:"to"`
	Actor models.UserRole   `json:"actor"`
}

// transitions is the authoritative order lifecycle. Cancellation is open to every
// role; ownership is checked by the store.
var transitions = []Transition{
	// Rider claims a placed order
	{From: models.StatePlaced, To: models.StateTaken, Actor: models.RoleRider},
	// Rider delivers the claimed order
	{From: models.StateTaken, To: models.StateCompleted, Actor: models.RoleRider},
	// Owner withdraws the order before anyone claims it
	{From: models.StatePlaced, To: models.StateCancelled, Actor: models.RoleCustomer},
	{From: models.StatePlaced, To: models.StateCancelled, Actor: models.RoleManager},
	{From: models.StatePlaced, To: models.StateCancelled, Actor: models.RoleRider},
}

type transitionKey struct {
	from  models.OrderState
	to    models.OrderState
	actor models.UserRole
}

var transitionSet = func() map[transitionKey]struct{} {
	m := make(map[transitionKey]struct{}, len(transitions))
	for _, t := range transitions {
		m[transitionKey{t.From, t.To, t.Actor}] = struct{}{}
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(state models.OrderState) []models.OrderState {
	var nexts []models.OrderState
	seen := map[models.OrderState]bool{}
	for _, t := range transitions {
		if t.From == state && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given role can move an order from one state to another.
// A denial wraps models.ErrAccessDenied.
func CanTransition(from, to models.OrderState, actor models.UserRole) error {
	if _, ok := transitionSet[transitionKey{from, to, actor}]; ok {
		return nil
	}
	return fmt.Errorf("%w: %s → %s is not allowed for %s, valid transitions from %s: %s",
		models.ErrAccessDenied, from, to, actor, from, describeValidFrom(from))
}

func describeValidFrom(state models.OrderState) string {
	nexts := ValidTransitionsFrom(state)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	names := make([]string, 0, len(nexts))
	for _, s := range nexts {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}

// Transitions returns the full lifecycle for documentation
func Transitions() []Transition {
	out := make([]Transition, len(transitions))
	copy(out, transitions)
	return out
}
