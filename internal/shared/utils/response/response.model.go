package response

type StandardApiResponse struct {
	Status     string      `json:"status"`           // "success" or "error"
	StatusCode int         `json:"status_code"`      // HTTP status code
	Message    string      `json:"message"`          // Human-readable message
	Data       interface{} `json:"data,omitempty"`   // Payload for success
	Errors     interface{} `json:"errors,omitempty"` // Validation or error details
}

// ErrorDetail is the errors payload for domain failures that name the offending records
type ErrorDetail struct {
	Code    string   `json:"code"`
	Detail  string   `json:"detail,omitempty"`
	SeatIDs []string `json:"seat_ids,omitempty"`
}
