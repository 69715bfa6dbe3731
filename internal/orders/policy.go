package orders

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition indicates the target status is not reachable
// from the current one. It never reaches the network client.
var ErrInvalidTransition = errors.New("invalid status transition")

// allowedTransitions defines the valid status transitions. The key is
// the current status, the value the set of legal targets. Completed
// and Cancelled are terminal.
var allowedTransitions = map[Status][]Status{
	StatusNew:        {StatusPending, StatusHold, StatusCancelled},
	StatusPending:    {StatusProcessing, StatusHold, StatusCancelled},
	StatusProcessing: {StatusPicked, StatusHold, StatusCancelled},
	StatusHold:       {StatusNew, StatusPending, StatusProcessing, StatusPicked, StatusDispatched, StatusCompleted, StatusCancelled},
	StatusPicked:     {StatusDispatched, StatusHold},
	StatusDispatched: {StatusCompleted},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// CanTransition reports whether an order may move from one status to
// another. Inputs are matched case-insensitively; an unknown current
// status allows no targets.
func CanTransition(from, to string) bool {
	current, ok := ParseStatus(from)
	if !ok {
		return false
	}
	target, ok := ParseStatus(to)
	if !ok {
		return false
	}
	for _, allowed := range allowedTransitions[current] {
		if allowed == target {
			return true
		}
	}
	return false
}

// AllowedTargets returns the legal next statuses for the given status.
func AllowedTargets(from Status) []Status {
	current, ok := ParseStatus(string(from))
	if !ok {
		return nil
	}
	targets := allowedTransitions[current]
	out := make([]Status, len(targets))
	copy(out, targets)
	return out
}

// IsTerminal reports whether no outbound transition exists.
func IsTerminal(s Status) bool {
	current, ok := ParseStatus(string(s))
	if !ok {
		return false
	}
	return len(allowedTransitions[current]) == 0
}

// GuardMessagePicked is the fixed user-facing message for the picked
// guard.
const GuardMessagePicked = "All items must be picked before changing status to Picked"

// GuardError is a failed transition precondition, carrying the message
// shown to the user as-is.
type GuardError struct {
	Message string
}

func (e *GuardError) Error() string { return e.Message }

// ValidatePickedGuard enforces the one cross-field rule in the system:
// moving Processing -> Picked requires every line item to be picked.
// Any other transition pair passes unconditionally.
func ValidatePickedGuard(current, target Status, items []OrderItem) error {
	cur, _ := ParseStatus(string(current))
	tgt, _ := ParseStatus(string(target))
	if cur != StatusProcessing || tgt != StatusPicked {
		return nil
	}
	for _, item := range items {
		if !item.Picked {
			return &GuardError{Message: GuardMessagePicked}
		}
	}
	return nil
}

// ValidateTransition combines the table check and the picked guard.
func ValidateTransition(current, target Status, items []OrderItem) error {
	if !CanTransition(string(current), string(target)) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, target)
	}
	return ValidatePickedGuard(current, target, items)
}
