package venues

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Stage placement relative to the seating grid
const (
	StageFront  = "FRONT"
	StageCenter = "CENTER"
)

// Seat tiers priced through PriceMultiplier
const (
	TierStandard = "STANDARD"
	TierPremium  = "PREMIUM"
)

// Theater is the static seat grid events are provisioned from
type Theater struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name              string    `gorm:"uniqueIndex;not null" json:"name"`
	RowStart          string    `gorm:"not null" json:"row_start"`
	RowEnd            string    `gorm:"not null" json:"row_end"`
	SeatsPerRow       int       `gorm:"not null" json:"seats_per_row"`
	StagePosition     string    `gorm:"not null;default:'FRONT'" json:"stage_position"`
	PremiumRows       string    `json:"premium_rows"` // comma separated row labels
	PremiumMultiplier float64   `gorm:"not null;default:1" json:"premium_multiplier"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (t *Theater) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (t *Theater) premiumRowSet() map[string]bool {
	set := make(map[string]bool)
	for _, row := range strings.Split(t.PremiumRows, ",") {
		if row = strings.TrimSpace(row); row != "" {
			set[row] = true
		}
	}
	return set
}

// SeatDefinition is one cell of a theater layout
type SeatDefinition struct {
	SeatID          string  `json:"seat_id"`
	RowLabel        string  `json:"row_label"`
	SeatNumber      int     `json:"seat_number"`
	Tier            string  `json:"tier"`
	PriceMultiplier float64 `json:"price_multiplier"`
}
