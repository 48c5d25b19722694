package venues

type LayoutResponse struct {
	Theater    *Theater         `json:"theater"`
	TotalSeats int              `json:"total_seats"`
	Seats      []SeatDefinition `json:"seats"`
}
