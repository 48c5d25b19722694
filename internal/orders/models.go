package orders

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ticket types follow the seat tier
const (
	TicketTypeStandard = "STANDARD"
	TicketTypePremium  = "PREMIUM"
)

// Order is the receipt of one committed checkout. It is never deleted, only transitioned.
type Order struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	OrderRef        string     `gorm:"size:30;uniqueIndex;not null" json:"order_ref"`
	UserID          uuid.UUID  `gorm:"type:uuid;index;not null" json:"user_id"`
	EventID         uuid.UUID  `gorm:"type:uuid;index;not null" json:"event_id"`
	EventName       string     `gorm:"size:255;not null" json:"event_name"`
	HolderToken     string     `gorm:"size:100;uniqueIndex;not null" json:"-"`
	CustomerName    string     `gorm:"size:255;not null" json:"customer_name"`
	CustomerEmail   string     `gorm:"size:255;not null" json:"customer_email"`
	Subtotal        float64    `gorm:"not null" json:"subtotal"`
	DiscountApplied float64    `gorm:"not null;default:0" json:"discount_applied"`
	CouponCode      string     `gorm:"size:40" json:"coupon_code,omitempty"`
	ServiceFee      float64    `gorm:"not null;default:0" json:"service_fee"`
	TotalAmount     float64    `gorm:"not null" json:"total_amount"`
	Currency        string     `gorm:"type:varchar(3);not null" json:"currency"`
	Status          Status     `gorm:"type:varchar(20);not null;check:status IN ('PAID', 'REFUND_REQUESTED', 'REFUNDED', 'CANCELLED');default:'PAID';index" json:"status"`
	PaymentMode     string     `gorm:"type:varchar(20);not null" json:"payment_mode"`
	Date            time.Time  `gorm:"not null" json:"date"`
	CancelledAt     *time.Time `json:"cancelled_at,omitempty"`
	RefundUpdatedAt *time.Time `json:"refund_updated_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	// Relationships
	Tickets []Ticket `json:"tickets" gorm:"foreignKey:OrderID;constraint:OnDelete:RESTRICT;"`
}

// Ticket is a snapshot of one seat taken at commit; later layout edits do not change it
type Ticket struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID       uuid.UUID  `gorm:"type:uuid;index;not null" json:"order_id"`
	EventID       uuid.UUID  `gorm:"type:uuid;index;not null" json:"event_id"`
	EventName     string     `gorm:"size:255;not null" json:"event_name"`
	EventStartsAt time.Time  `gorm:"not null" json:"event_starts_at"`
	SeatID        string     `gorm:"size:20;not null" json:"seat_id"`
	RowLabel      string     `gorm:"size:10;not null" json:"row_label"`
	SeatNumber    int        `gorm:"not null" json:"seat_number"`
	TicketType    string     `gorm:"type:varchar(20);not null" json:"ticket_type"`
	ListPrice     float64    `gorm:"not null" json:"list_price"`
	Price         float64    `gorm:"not null" json:"price"`
	QRPayload     string     `gorm:"size:64;uniqueIndex;not null" json:"qr_payload"`
	CheckedInAt   *time.Time `json:"checked_in_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

func (t *Ticket) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName sets the table name for Order
func (Order) TableName() string {
	return "orders"
}

// TableName sets the table name for Ticket
func (Ticket) TableName() string {
	return "tickets"
}

// SeatIDs returns the seats the order booked
func (o *Order) SeatIDs() []string {
	ids := make([]string, 0, len(o.Tickets))
	for _, ticket := range o.Tickets {
		ids = append(ids, ticket.SeatID)
	}
	return ids
}
