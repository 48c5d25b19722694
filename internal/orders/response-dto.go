package orders

// Verification outcomes
const (
	ReasonValid          = "VALID"
	ReasonNotFound       = "NOT_FOUND"
	ReasonOrderCancelled = "ORDER_CANCELLED"
	ReasonOrderRefunded  = "ORDER_REFUNDED"
	ReasonAlreadyUsed    = "ALREADY_USED"
)

type TicketVerification struct {
	Valid       bool    `json:"valid"`
	Reason      string  `json:"reason"`
	OrderStatus Status  `json:"order_status,omitempty"`
	Ticket      *Ticket `json:"ticket,omitempty"`
}

type PaginatedOrders struct {
	Orders     []Order `json:"orders"`
	TotalCount int64   `json:"total_count"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	TotalPages int     `json:"total_pages"`
}
