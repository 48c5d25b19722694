package seats

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"boxoffice/internal/notifications"
	"boxoffice/internal/shared/constants"
	"boxoffice/pkg/cache"
	"boxoffice/pkg/logger"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// maxSweepPasses bounds one sweep so a flood of expiring holds cannot pin it forever
const maxSweepPasses = 20

// ReaperStats contains sweep statistics
type ReaperStats struct {
	TotalRuns     int64         `json:"total_runs"`
	TotalReleased int64         `json:"total_released"`
	LastRunAt     time.Time     `json:"last_run_at"`
	LastReleased  int           `json:"last_released"`
	LastDuration  time.Duration `json:"last_duration_ns"`
	LastError     string        `json:"last_error,omitempty"`
}

// Reaper returns expired holds to AVAILABLE. It goes through the same
// compare-and-set path as holds and commits, so a seat booked or re-held after
// it was read is left alone.
type Reaper struct {
	repo      Repository
	cache     cache.Service
	publisher notifications.Publisher
	clock     clockwork.Clock
	batchSize int
	log       *logger.Logger

	mu    sync.RWMutex
	stats ReaperStats
}

func NewReaper(repo Repository, cacheService cache.Service, publisher notifications.Publisher, clock clockwork.Clock, batchSize int) *Reaper {
	if batchSize <= 0 {
		batchSize = 500
	}
	return &Reaper{
		repo:      repo,
		cache:     cacheService,
		publisher: publisher,
		clock:     clock,
		batchSize: batchSize,
		log:       logger.GetDefault().WithComponent("hold-reaper"),
	}
}

// Sweep releases every hold expired at the start of the run. A failed run keeps
// what it already released; the next run picks up the rest.
func (r *Reaper) Sweep(ctx context.Context) (int, error) {
	started := r.clock.Now()
	now := Now(r.clock)

	releasedByEvent := make(map[uuid.UUID][]string)
	released, err := r.sweep(ctx, now, releasedByEvent)

	for eventID, seatIDs := range releasedByEvent {
		sort.Strings(seatIDs)
		if err := r.cache.Delete(ctx, constants.BuildSeatMapKey(eventID.String())); err != nil {
			r.log.Warn("Failed to invalidate seat map cache", "event_id", eventID.String(), "error", err)
		}
		event := notifications.NewDomainEvent(notifications.EventTypeHoldsExpired, eventID.String(), now).WithSeats(seatIDs)
		if err := r.publisher.Publish(ctx, event); err != nil {
			r.log.WithError(err).Warn("Failed to publish expired holds", "event_id", eventID.String())
		}
	}

	duration := r.clock.Since(started)
	r.record(now, released, duration, err)

	if err != nil {
		r.log.ErrorWithContext(ctx, "Hold sweep failed", err, map[string]interface{}{
			"released": released,
		})
		return released, err
	}
	if released > 0 {
		r.log.LogHoldsReaped(ctx, released, duration)
	}
	return released, nil
}

func (r *Reaper) sweep(ctx context.Context, now time.Time, releasedByEvent map[uuid.UUID][]string) (int, error) {
	released := 0
	for pass := 0; pass < maxSweepPasses; pass++ {
		candidates, err := r.repo.FindExpiredHolds(ctx, now, r.batchSize)
		if err != nil {
			return released, fmt.Errorf("failed to find expired holds: %w", err)
		}

		passReleased := 0
		for _, seat := range candidates {
			ok, err := r.repo.ReleaseExpiredHold(ctx, seat, now)
			if err != nil {
				return released, fmt.Errorf("failed to release seat %s: %w", seat.SeatID, err)
			}
			if ok {
				passReleased++
				releasedByEvent[seat.EventID] = append(releasedByEvent[seat.EventID], seat.SeatID)
			}
		}
		released += passReleased

		if len(candidates) < r.batchSize || passReleased == 0 {
			break
		}
	}
	return released, nil
}

func (r *Reaper) record(at time.Time, released int, duration time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stats.TotalRuns++
	r.stats.TotalReleased += int64(released)
	r.stats.LastRunAt = at
	r.stats.LastReleased = released
	r.stats.LastDuration = duration
	r.stats.LastError = ""
	if err != nil {
		r.stats.LastError = err.Error()
	}
}

// Stats returns a snapshot of sweep statistics
func (r *Reaper) Stats() ReaperStats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.stats
}
