package seats

// HoldSeatsRequest holds or extends seats. EventID is taken from the path on
// /events/:id/lock-seats and from the body on /seats/hold.
type HoldSeatsRequest struct {
	EventID     string   `json:"event_id" binding:"omitempty,uuid"`
	SeatIDs     []string `json:"seat_ids" binding:"required,min=1,dive,required,seatid"`
	HolderToken string   `json:"holder_token" binding:"omitempty,max=100"`
	TTLSeconds  int      `json:"ttl_seconds" binding:"omitempty,min=1"`
}

type ReleaseSeatsRequest struct {
	SeatIDs     []string `json:"seat_ids" binding:"required,min=1,dive,required,seatid"`
	HolderToken string   `json:"holder_token" binding:"required,max=100"`
}

// OverwriteSeatsRequest is the admin correction path. Force also clears live holds
// and detaches seats from their orders.
type OverwriteSeatsRequest struct {
	Seats []SeatOverwrite `json:"seats" binding:"required,min=1,dive"`
	Force bool            `json:"force"`
}
