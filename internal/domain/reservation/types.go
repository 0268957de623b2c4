package reservation

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusPickedUp  Status = "picked_up"
	StatusReturned  Status = "returned"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// allowedTransitions is the closed transition table of the booking lifecycle.
// Anything not listed here is rejected; handlers never branch on raw strings.
var allowedTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusPickedUp, StatusCancelled},
	StatusPickedUp:  {StatusReturned},
	StatusReturned:  {StatusCompleted},
	// terminal states
	StatusCompleted: {},
	StatusCancelled: {},
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// IsBlocking reports whether a reservation in this status holds its vehicle
// for the booked date range.
func (s Status) IsBlocking() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPickedUp:
		return true
	default:
		return false
	}
}

func CanTransition(from, to Status) bool {
	allowed, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// BlockingStatuses returns the statuses considered by the availability check,
// in a stable order usable as SQL parameters.
func BlockingStatuses() []Status {
	return []Status{StatusPending, StatusConfirmed, StatusPickedUp}
}

type PaymentStatus string

const (
	PaymentApproved PaymentStatus = "approved"
	PaymentRejected PaymentStatus = "rejected"
	PaymentPending  PaymentStatus = "pending"
)

func (p PaymentStatus) IsValid() bool {
	switch p {
	case PaymentApproved, PaymentRejected, PaymentPending:
		return true
	default:
		return false
	}
}
