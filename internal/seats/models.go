package seats

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusHeld      Status = "HELD"
	StatusBooked    Status = "BOOKED"
)

// EventSeat is one seat of one event. Holder token and expiry are set only while HELD.
type EventSeat struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	EventID         uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_event_seat" json:"event_id"`
	SeatID          string     `gorm:"size:20;not null;uniqueIndex:idx_event_seat" json:"seat_id"`
	RowLabel        string     `gorm:"size:10;not null" json:"row_label"`
	SeatNumber      int        `gorm:"not null" json:"seat_number"`
	Tier            string     `gorm:"size:20;not null;default:'STANDARD'" json:"tier"`
	PriceMultiplier float64    `gorm:"not null;default:1" json:"price_multiplier"`
	Status          Status     `gorm:"type:varchar(20);not null;default:'AVAILABLE';check:status IN ('AVAILABLE', 'HELD', 'BOOKED')" json:"status"`
	HolderToken     *string    `gorm:"size:100;index" json:"-"`
	HoldExpiresAt   *time.Time `json:"hold_expires_at,omitempty"`
	OrderID         *uuid.UUID `gorm:"type:uuid;index" json:"order_id,omitempty"`
	Version         int64      `gorm:"not null;default:1" json:"version"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (s *EventSeat) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName sets the table name for EventSeat
func (EventSeat) TableName() string {
	return "event_seats"
}

// EffectiveStatus reports a dead hold as AVAILABLE even before the reaper reverts it
func (s *EventSeat) EffectiveStatus(now time.Time) Status {
	if s.Status == StatusHeld && s.HoldExpiresAt != nil && !s.HoldExpiresAt.After(now) {
		return StatusAvailable
	}
	return s.Status
}

// IsHeldBy reports whether token holds the seat at now
func (s *EventSeat) IsHeldBy(token string, now time.Time) bool {
	return s.Status == StatusHeld &&
		s.HolderToken != nil && *s.HolderToken == token &&
		s.HoldExpiresAt != nil && s.HoldExpiresAt.After(now)
}
