package orders

type Status string

const (
	StatusPaid            Status = "PAID"
	StatusRefundRequested Status = "REFUND_REQUESTED"
	StatusRefunded        Status = "REFUNDED"
	StatusCancelled       Status = "CANCELLED"
)

// transitions lists the allowed edges of the order lifecycle. CANCELLED is terminal.
var transitions = map[Status][]Status{
	StatusPaid:            {StatusCancelled, StatusRefundRequested},
	StatusRefundRequested: {StatusRefunded, StatusPaid, StatusCancelled},
	StatusRefunded:        {StatusCancelled},
}

// IsValid checks if the order status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusPaid, StatusRefundRequested, StatusRefunded, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo reports whether next is a legal successor of s
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TicketsValid reports whether tickets of an order in this status admit entry
func (s Status) TicketsValid() bool {
	return s == StatusPaid || s == StatusRefundRequested
}
