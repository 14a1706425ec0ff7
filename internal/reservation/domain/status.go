package domain

import (
	"fmt"
	"strings"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

// transitions is the full allowed set. CANCELLED and COMPLETED are terminal.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// ParseStatus validates a caller-supplied status value.
func ParseStatus(value string) (Status, error) {
	normalized := Status(strings.ToUpper(strings.TrimSpace(value)))
	switch normalized {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return normalized, nil
	default:
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidStatus, value)
	}
}

// CanTransition reports whether from may move to target. Self-transitions are
// not allowed.
func CanTransition(from, to Status) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions exist for status.
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// Qualifies reports whether the status triggers the financial side effects.
func (s Status) Qualifies() bool {
	return s == StatusConfirmed || s == StatusCompleted
}
