package notifications

import (
	"context"
	"sync"
)

// Publisher delivers domain events. Callers publish after the change is committed
// and treat failures as non-fatal.
type Publisher interface {
	Publish(ctx context.Context, event *DomainEvent) error
	Close() error
}

type noopPublisher struct{}

// NewNoopPublisher is used when Kafka is disabled
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, *DomainEvent) error { return nil }

func (noopPublisher) Close() error { return nil }

// Recorder keeps published events in memory
type Recorder struct {
	mu     sync.Mutex
	events []*DomainEvent
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Publish(_ context.Context, event *DomainEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *Recorder) Close() error { return nil }

// Events returns the recorded events of the given type
func (r *Recorder) Events(eventType EventType) []*DomainEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*DomainEvent
	for _, e := range r.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}
