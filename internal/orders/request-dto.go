package orders

// CreateOrderRequest commits a previously granted hold
type CreateOrderRequest struct {
	EventID       string   `json:"event_id" binding:"required,uuid"`
	SeatIDs       []string `json:"seat_ids" binding:"required,min=1,dive,required,seatid"`
	HolderToken   string   `json:"holder_token" binding:"required,max=100"`
	CustomerName  string   `json:"customer_name" binding:"required,max=255"`
	CustomerEmail string   `json:"customer_email" binding:"required,email"`
	CouponCode    string   `json:"coupon_code" binding:"omitempty,max=40"`
	PaymentMode   string   `json:"payment_mode" binding:"omitempty,oneof=CARD UPI WALLET CASH"`
}

type RefundStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PAID REFUND_REQUESTED REFUNDED"`
}

type TicketLookupRequest struct {
	QRPayload string `json:"qr_payload" binding:"required,max=64"`
}

type OrderListQuery struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}
