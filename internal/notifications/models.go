package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventTypeSeatsHeld          EventType = "SEATS_HELD"
	EventTypeSeatsReleased      EventType = "SEATS_RELEASED"
	EventTypeHoldsExpired       EventType = "HOLDS_EXPIRED"
	EventTypeSeatsOverwritten   EventType = "SEATS_OVERWRITTEN"
	EventTypeOrderConfirmed     EventType = "ORDER_CONFIRMED"
	EventTypeOrderCancelled     EventType = "ORDER_CANCELLED"
	EventTypeRefundStatusChange EventType = "ORDER_REFUND_STATUS_CHANGED"
	EventTypeTicketCheckedIn    EventType = "TICKET_CHECKED_IN"
)

// DomainEvent is one state change published after it became durable
type DomainEvent struct {
	ID         uuid.UUID              `json:"id"`
	Type       EventType              `json:"type"`
	EventID    string                 `json:"event_id,omitempty"`
	OrderID    string                 `json:"order_id,omitempty"`
	SeatIDs    []string               `json:"seat_ids,omitempty"`
	Payload    map[string]interface{} `json:"payload,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
}

// NewDomainEvent stamps an event with a fresh id and the given time
func NewDomainEvent(eventType EventType, eventID string, occurredAt time.Time) *DomainEvent {
	return &DomainEvent{
		ID:         uuid.New(),
		Type:       eventType,
		EventID:    eventID,
		OccurredAt: occurredAt.UTC(),
	}
}

func (e *DomainEvent) WithOrder(orderID string) *DomainEvent {
	e.OrderID = orderID
	return e
}

func (e *DomainEvent) WithSeats(seatIDs []string) *DomainEvent {
	e.SeatIDs = seatIDs
	return e
}

func (e *DomainEvent) With(key string, value interface{}) *DomainEvent {
	if e.Payload == nil {
		e.Payload = make(map[string]interface{})
	}
	e.Payload[key] = value
	return e
}

// PartitionKey keeps every change to one event's inventory on one partition, in order
func (e *DomainEvent) PartitionKey() string {
	if e.EventID != "" {
		return e.EventID
	}
	return e.OrderID
}

func (e *DomainEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}
