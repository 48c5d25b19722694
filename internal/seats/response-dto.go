package seats

import "time"

type HoldResponse struct {
	HolderToken string     `json:"holder_token"`
	EventID     string     `json:"event_id"`
	Seats       []SeatView `json:"seats"`
	TotalPrice  float64    `json:"total_price"`
	ExpiresAt   time.Time  `json:"expires_at"`
	TTL         int        `json:"ttl_seconds"`
}

type ReleaseResponse struct {
	EventID  string   `json:"event_id"`
	Released []string `json:"released"`
}

type OverwriteResponse struct {
	EventID string   `json:"event_id"`
	Updated []string `json:"updated"`
}

// SeatView is the public shape of a seat; holder tokens are never exposed
type SeatView struct {
	SeatID        string     `json:"seat_id"`
	RowLabel      string     `json:"row_label"`
	SeatNumber    int        `json:"seat_number"`
	Tier          string     `json:"tier"`
	Price         float64    `json:"price"`
	Status        Status     `json:"status"`
	HoldExpiresAt *time.Time `json:"hold_expires_at,omitempty"`
}

type SeatCounts struct {
	Available int `json:"available"`
	Held      int `json:"held"`
	Booked    int `json:"booked"`
}

type SeatMapResponse struct {
	EventID     string     `json:"event_id"`
	GeneratedAt time.Time  `json:"generated_at"`
	Counts      SeatCounts `json:"counts"`
	Seats       []SeatView `json:"seats"`
}
