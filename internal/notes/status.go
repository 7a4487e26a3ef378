package notes

import (
	"encoding/json"
	"slices"
)

// Status is a note's position in the approval workflow. Permanent deletion
// is not a stored status; a deleted note is simply absent.
type Status string

// Approval workflow statuses.
const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

var statuses = []Status{
	StatusPending,
	StatusApproved,
	StatusRejected,
}

// transitions is the single source of truth for legal status changes.
// Every mutation of a note's approval status flows through CanTransition;
// anything not listed here is rejected without touching the record.
var transitions = map[Status][]Status{
	StatusPending:  {StatusApproved, StatusRejected},
	StatusRejected: {StatusPending},
}

// Statuses returns the list of valid approval statuses.
func Statuses() []Status {
	return statuses
}

// ParseStatus validates a string as a known approval status.
func ParseStatus(s string) (Status, error) {
	v := Status(s)
	if !slices.Contains(statuses, v) {
		return "", ErrInvalidTransition
	}
	return v, nil
}

// UnmarshalJSON validates that the decoded string is a known status value.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// CanTransition reports whether a note may move from one status to another.
func CanTransition(from, to Status) bool {
	return slices.Contains(transitions[from], to)
}

// CanDelete reports whether a note in the given status may be permanently
// removed. Only rejected notes are deletable; deletion is terminal.
func CanDelete(from Status) bool {
	return from == StatusRejected
}
