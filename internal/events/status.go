package events

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// LiveStatuses hold a venue slot
var LiveStatuses = []Status{StatusPending, StatusConfirmed}

func (s Status) String() string {
	return string(s)
}

// CanTransitionTo enforces the one-directional lifecycle
// pending -> confirmed -> cancelled, with pending -> cancelled allowed.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCancelled
	}
	return false
}

// IsLive reports whether the event still holds its venue slot
func (s Status) IsLive() bool {
	return s == StatusPending || s == StatusConfirmed
}
