package seats

import (
	"context"
	"testing"
	"time"

	"boxoffice/internal/notifications"
	"boxoffice/pkg/cache"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReaper(f *fixture, batchSize int) *Reaper {
	return NewReaper(f.repo, cache.NewNoop(), f.publisher, f.clock, batchSize)
}

func TestReaper_ReclaimsOnlyExpiredHolds(t *testing.T) {
	f := newFixture(t)
	reaper := newTestReaper(f, 100)
	ctx := context.Background()

	_, err := f.hold(t, "T1", 5*time.Minute, "A-1", "A-2")
	require.NoError(t, err)
	_, err = f.hold(t, "T2", 10*time.Minute, "A-3")
	require.NoError(t, err)

	f.clock.Advance(5*time.Minute - time.Second)
	released, err := reaper.Sweep(ctx)
	require.NoError(t, err)
	assert.Zero(t, released)
	assert.Equal(t, StatusHeld, f.seat(t, "A-1").Status)

	f.clock.Advance(time.Second)
	released, err = reaper.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, released)

	for _, seatID := range []string{"A-1", "A-2"} {
		seat := f.seat(t, seatID)
		assert.Equal(t, StatusAvailable, seat.Status)
		assert.Nil(t, seat.HolderToken)
		assert.Nil(t, seat.HoldExpiresAt)
	}
	assert.Equal(t, StatusHeld, f.seat(t, "A-3").Status)

	expired := f.publisher.Events(notifications.EventTypeHoldsExpired)
	require.Len(t, expired, 1)
	assert.Equal(t, []string{"A-1", "A-2"}, expired[0].SeatIDs)
	assert.Equal(t, f.event.ID.String(), expired[0].EventID)

	stats := reaper.Stats()
	assert.Equal(t, int64(2), stats.TotalRuns)
	assert.Equal(t, int64(2), stats.TotalReleased)
	assert.Equal(t, 2, stats.LastReleased)
	assert.Empty(t, stats.LastError)
}

func TestReaper_LeavesBookedSeatsAlone(t *testing.T) {
	f := newFixture(t)
	reaper := newTestReaper(f, 100)
	ctx := context.Background()

	_, err := f.hold(t, "T1", time.Minute, "A-1")
	require.NoError(t, err)

	orderID := uuid.New()
	failed, err := f.repo.BookHeldSeats(ctx, f.event.ID, []string{"A-1"}, "T1", orderID, Now(f.clock))
	require.NoError(t, err)
	require.Empty(t, failed)

	f.clock.Advance(time.Hour)
	released, err := reaper.Sweep(ctx)
	require.NoError(t, err)
	assert.Zero(t, released)

	seat := f.seat(t, "A-1")
	assert.Equal(t, StatusBooked, seat.Status)
	assert.Equal(t, orderID, *seat.OrderID)
}

func TestReaper_StaleCandidateLosesCompareAndSet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.hold(t, "T1", time.Minute, "A-1")
	require.NoError(t, err)
	f.clock.Advance(2 * time.Minute)

	candidates, err := f.repo.FindExpiredHolds(ctx, Now(f.clock), 10)
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	// The holder comes back between the read and the revert
	_, err = f.hold(t, "T1", 5*time.Minute, "A-1")
	require.NoError(t, err)

	ok, err := f.repo.ReleaseExpiredHold(ctx, candidates[0], Now(f.clock))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, StatusHeld, f.seat(t, "A-1").Status)
}

func TestReaper_PagesThroughBatches(t *testing.T) {
	f := newFixture(t)
	reaper := newTestReaper(f, 2)

	_, err := f.hold(t, "T1", time.Minute, "A-1", "A-2", "A-3")
	require.NoError(t, err)
	_, err = f.hold(t, "T2", 2*time.Minute, "B-1", "B-2")
	require.NoError(t, err)

	f.clock.Advance(3 * time.Minute)
	released, err := reaper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, released)

	var held int64
	require.NoError(t, f.db.Model(&EventSeat{}).Where("status = ?", StatusHeld).Count(&held).Error)
	assert.Zero(t, held)
}
