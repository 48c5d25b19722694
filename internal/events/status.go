package events

type Status string

const (
	StatusDraft  Status = "DRAFT"
	StatusOnSale Status = "ON_SALE"
	StatusClosed Status = "CLOSED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusOnSale, StatusClosed:
		return true
	}
	return false
}

// AcceptsHolds reports whether new seat holds may be granted
func (s Status) AcceptsHolds() bool {
	return s == StatusOnSale
}
