package venues

type CreateTheaterRequest struct {
	Name              string   `json:"name" binding:"required,min=2,max=255"`
	RowStart          string   `json:"row_start" binding:"required,max=3"`
	RowEnd            string   `json:"row_end" binding:"required,max=3"`
	SeatsPerRow       int      `json:"seats_per_row" binding:"required,min=1,max=200"`
	StagePosition     string   `json:"stage_position" binding:"omitempty,oneof=FRONT CENTER"`
	PremiumRows       []string `json:"premium_rows"`
	PremiumMultiplier float64  `json:"premium_multiplier" binding:"omitempty,gte=1"`
}
