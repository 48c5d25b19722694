package events

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Event struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	TheaterID   uuid.UUID  `json:"theater_id" gorm:"type:uuid;not null;index"`
	Name        string     `json:"name" gorm:"not null;size:255"`
	Description string     `json:"description" gorm:"type:text"`
	StartsAt    time.Time  `json:"starts_at" gorm:"not null"`
	BasePrice   float64    `json:"base_price" gorm:"not null;check:base_price >= 0"`
	Status      Status     `json:"status" gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	TotalSeats  int        `json:"total_seats" gorm:"not null;default:0"`
	CreatedBy   *uuid.UUID `json:"created_by,omitempty" gorm:"type:uuid"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName specifies the table name for GORM
func (Event) TableName() string {
	return "events"
}

type CreateEventRequest struct {
	TheaterID     string    `json:"theater_id" binding:"required,uuid"`
	Name          string    `json:"name" binding:"required,min=3,max=255"`
	Description   string    `json:"description" binding:"max=2000"`
	StartsAt      time.Time `json:"starts_at" binding:"required"`
	BasePrice     float64   `json:"base_price" binding:"min=0"`
	Status        string    `json:"status" binding:"omitempty,oneof=DRAFT ON_SALE CLOSED"`
	DisabledSeats []string  `json:"disabled_seats"` // seats left out of this event, e.g. camera positions
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=DRAFT ON_SALE CLOSED"`
}

type EventListQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search string `form:"search"`
	Status string `form:"status" binding:"omitempty,oneof=DRAFT ON_SALE CLOSED"`
}

type PaginatedEvents struct {
	Events     []Event `json:"events"`
	TotalCount int64   `json:"total_count"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	TotalPages int     `json:"total_pages"`
}
