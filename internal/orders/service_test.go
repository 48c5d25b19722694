package orders

import (
	"context"
	"testing"
	"time"

	"boxoffice/internal/coupons"
	"boxoffice/internal/events"
	"boxoffice/internal/notifications"
	"boxoffice/internal/seats"
	"boxoffice/internal/shared/config"
	"boxoffice/internal/shared/middleware"
	"boxoffice/internal/shared/testutil"
	"boxoffice/internal/venues"
	"boxoffice/pkg/cache"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db        *gorm.DB
	clock     *clockwork.FakeClock
	seatRepo  seats.Repository
	holds     seats.Service
	service   Service
	publisher *notifications.Recorder
	event     *events.Event
	customer  Actor
	admin     Actor
}

type fixtureOption func(*fixtureDeps)

type fixtureDeps struct {
	seatRepo seats.Repository
}

func withSeatRepository(wrap func(seats.Repository) seats.Repository) fixtureOption {
	return func(d *fixtureDeps) { d.seatRepo = wrap(d.seatRepo) }
}

func newFixture(t *testing.T, opts ...fixtureOption) *fixture {
	t.Helper()

	db := testutil.NewTestDB(t, &events.Event{}, &seats.EventSeat{}, &Order{}, &Ticket{}, &coupons.Coupon{})
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC))
	publisher := notifications.NewRecorder()
	seatRepo := seats.NewRepository(db)
	eventRepo := events.NewRepository(db)

	event := &events.Event{
		TheaterID: uuid.New(),
		Name:      "Evening Show",
		StartsAt:  time.Date(2026, 3, 8, 20, 0, 0, 0, time.UTC),
		BasePrice: 50,
		Status:    events.StatusOnSale,
	}
	require.NoError(t, db.Create(event).Error)
	require.NoError(t, seatRepo.ProvisionSeats(db, event.ID, []venues.SeatDefinition{
		{SeatID: "A-1", RowLabel: "A", SeatNumber: 1, Tier: venues.TierStandard, PriceMultiplier: 1},
		{SeatID: "A-2", RowLabel: "A", SeatNumber: 2, Tier: venues.TierStandard, PriceMultiplier: 1},
		{SeatID: "A-3", RowLabel: "A", SeatNumber: 3, Tier: venues.TierStandard, PriceMultiplier: 1},
		{SeatID: "B-1", RowLabel: "B", SeatNumber: 1, Tier: venues.TierPremium, PriceMultiplier: 1.5},
	}))

	holds := seats.NewService(seatRepo, eventRepo, cache.NewNoop(), publisher, clock, config.HoldConfig{
		DefaultTTL: 10 * time.Minute,
		MaxTTL:     30 * time.Minute,
		MaxSeats:   6,
	})

	deps := &fixtureDeps{seatRepo: seatRepo}
	for _, opt := range opts {
		opt(deps)
	}

	svc := NewService(
		NewRepository(db),
		deps.seatRepo,
		eventRepo,
		coupons.NewService(coupons.NewRepository(db), clock),
		holds,
		publisher,
		clock,
		config.PricingConfig{ServiceFeeRate: 0.1, Currency: "INR"},
	)

	return &fixture{
		db:        db,
		clock:     clock,
		seatRepo:  seatRepo,
		holds:     holds,
		service:   svc,
		publisher: publisher,
		event:     event,
		customer:  Actor{UserID: uuid.NewString(), Role: middleware.RoleUser},
		admin:     Actor{UserID: uuid.NewString(), Role: middleware.RoleAdmin},
	}
}

func (f *fixture) hold(t *testing.T, token string, ttl time.Duration, seatIDs ...string) {
	t.Helper()
	_, err := f.holds.HoldSeats(context.Background(), f.event.ID, seats.HoldSeatsRequest{
		SeatIDs:     seatIDs,
		HolderToken: token,
		TTLSeconds:  int(ttl / time.Second),
	})
	require.NoError(t, err)
}

func (f *fixture) commit(token, coupon string, seatIDs ...string) (*Order, error) {
	return f.service.Commit(context.Background(), f.customer, CreateOrderRequest{
		EventID:       f.event.ID.String(),
		SeatIDs:       seatIDs,
		HolderToken:   token,
		CustomerName:  "Asha Rao",
		CustomerEmail: "Asha@Example.com",
		CouponCode:    coupon,
	})
}

func (f *fixture) seat(t *testing.T, seatID string) seats.EventSeat {
	t.Helper()
	var seat seats.EventSeat
	require.NoError(t, f.db.Where("event_id = ? AND seat_id = ?", f.event.ID, seatID).First(&seat).Error)
	return seat
}

func (f *fixture) orderCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, f.db.Model(&Order{}).Count(&count).Error)
	return count
}

// stealingRepository frees a seat inside the commit transaction, standing in for
// a concurrent writer that wins between the early check and the booking update.
type stealingRepository struct {
	seats.Repository
	steal string
}

func (r *stealingRepository) WithTx(tx *gorm.DB) seats.Repository {
	return &stealingRepository{Repository: r.Repository.WithTx(tx), steal: r.steal}
}

func (r *stealingRepository) BookHeldSeats(ctx context.Context, eventID uuid.UUID, seatIDs []string, token string, orderID uuid.UUID, now time.Time) ([]string, error) {
	if _, err := r.Repository.OverwriteSeats(ctx, eventID, []seats.SeatOverwrite{{SeatID: r.steal, Status: seats.StatusAvailable}}, true, now); err != nil {
		return nil, err
	}
	return r.Repository.BookHeldSeats(ctx, eventID, seatIDs, token, orderID, now)
}

func TestCommit_BooksHeldSeats(t *testing.T) {
	f := newFixture(t)
	f.hold(t, "T1", 5*time.Minute, "A-1", "B-1")

	order, err := f.commit("T1", "", "b-1", "A-1")
	require.NoError(t, err)

	assert.Equal(t, StatusPaid, order.Status)
	assert.Equal(t, "asha@example.com", order.CustomerEmail)
	assert.Equal(t, "INR", order.Currency)
	assert.Equal(t, "CARD", order.PaymentMode)
	assert.InDelta(t, 125.0, order.Subtotal, 0.001)
	assert.InDelta(t, 12.5, order.ServiceFee, 0.001)
	assert.InDelta(t, 137.5, order.TotalAmount, 0.001)
	assert.Regexp(t, `^BO-20260301-[A-Z]{6}$`, order.OrderRef)
	require.Len(t, order.Tickets, 2)

	for _, seatID := range []string{"A-1", "B-1"} {
		seat := f.seat(t, seatID)
		assert.Equal(t, seats.StatusBooked, seat.Status, seatID)
		require.NotNil(t, seat.OrderID, seatID)
		assert.Equal(t, order.ID, *seat.OrderID, seatID)
		assert.Nil(t, seat.HolderToken, seatID)
		assert.Nil(t, seat.HoldExpiresAt, seatID)
	}

	stored, err := f.service.GetOrder(context.Background(), order.ID, f.customer)
	require.NoError(t, err)
	assert.Equal(t, []string{"A-1", "B-1"}, stored.SeatIDs())
	assert.Equal(t, TicketTypePremium, stored.Tickets[1].TicketType)
	assert.InDelta(t, 75.0, stored.Tickets[1].Price, 0.001)
	assert.NotEqual(t, stored.Tickets[0].QRPayload, stored.Tickets[1].QRPayload)

	confirmed := f.publisher.Events(notifications.EventTypeOrderConfirmed)
	require.Len(t, confirmed, 1)
	assert.Equal(t, order.ID.String(), confirmed[0].OrderID)
}

func TestCommit_ExpiredHold(t *testing.T) {
	f := newFixture(t)
	f.hold(t, "T1", time.Minute, "A-1", "A-2")
	f.clock.Advance(2 * time.Minute)

	_, err := f.commit("T1", "", "A-1", "A-2")
	require.ErrorIs(t, err, seats.ErrHoldExpired)
	assert.Equal(t, []string{"A-1", "A-2"}, seats.ConflictingSeats(err))

	assert.Zero(t, f.orderCount(t))
	assert.Equal(t, seats.StatusHeld, f.seat(t, "A-1").Status)
}

func TestCommit_ForeignToken(t *testing.T) {
	f := newFixture(t)
	f.hold(t, "T1", 5*time.Minute, "A-1")
	f.hold(t, "T2", 5*time.Minute, "A-2")

	_, err := f.commit("T1", "", "A-1", "A-2")
	require.ErrorIs(t, err, seats.ErrHoldInvalid)
	assert.NotErrorIs(t, err, seats.ErrHoldExpired)
	assert.Equal(t, []string{"A-2"}, seats.ConflictingSeats(err))

	assert.Zero(t, f.orderCount(t))
	assert.Equal(t, seats.StatusHeld, f.seat(t, "A-1").Status)
}

func TestCommit_AvailableSeatIsNotAHold(t *testing.T) {
	f := newFixture(t)
	f.hold(t, "T1", 5*time.Minute, "A-1")

	_, err := f.commit("T1", "", "A-1", "A-3")
	require.ErrorIs(t, err, seats.ErrHoldInvalid)
	assert.Equal(t, seats.StatusAvailable, f.seat(t, "A-3").Status)
}

func TestCommit_AllOrNothingWhenSeatLostMidCommit(t *testing.T) {
	f := newFixture(t, withSeatRepository(func(repo seats.Repository) seats.Repository {
		return &stealingRepository{Repository: repo, steal: "A-2"}
	}))
	f.hold(t, "T1", 5*time.Minute, "A-1", "A-2")

	_, err := f.commit("T1", "", "A-1", "A-2")
	require.ErrorIs(t, err, seats.ErrHoldInvalid)
	assert.Equal(t, []string{"A-2"}, seats.ConflictingSeats(err))

	assert.Zero(t, f.orderCount(t))
	var tickets int64
	require.NoError(t, f.db.Model(&Ticket{}).Count(&tickets).Error)
	assert.Zero(t, tickets)

	// The stolen write rolled back with the rest
	for _, seatID := range []string{"A-1", "A-2"} {
		seat := f.seat(t, seatID)
		assert.Equal(t, seats.StatusHeld, seat.Status, seatID)
		assert.Nil(t, seat.OrderID, seatID)
	}
	assert.Empty(t, f.publisher.Events(notifications.EventTypeOrderConfirmed))
}

func TestCommit_UnknownSeat(t *testing.T) {
	f := newFixture(t)
	f.hold(t, "T1", 5*time.Minute, "A-1")

	_, err := f.commit("T1", "", "A-1", "Z-9")
	require.ErrorIs(t, err, seats.ErrSeatNotFound)
	assert.Equal(t, []string{"Z-9"}, seats.ConflictingSeats(err))
}

func TestCommit_AppliesCoupon(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.db.Create(&coupons.Coupon{
		Code:         "launch10",
		DiscountType: coupons.DiscountPercentage,
		Value:        10,
		Active:       true,
	}).Error)
	f.hold(t, "T1", 5*time.Minute, "A-1", "A-2")

	order, err := f.commit("T1", "Launch10", "A-1", "A-2")
	require.NoError(t, err)

	assert.Equal(t, "LAUNCH10", order.CouponCode)
	assert.InDelta(t, 100.0, order.Subtotal, 0.001)
	assert.InDelta(t, 10.0, order.DiscountApplied, 0.001)
	assert.InDelta(t, 9.0, order.ServiceFee, 0.001)
	assert.InDelta(t, 99.0, order.TotalAmount, 0.001)
	for _, ticket := range order.Tickets {
		assert.InDelta(t, 50.0, ticket.ListPrice, 0.001)
		assert.InDelta(t, 45.0, ticket.Price, 0.001)
	}
}

func TestCommit_RecordsAcceptedZeroDiscountCoupon(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.db.Create(&coupons.Coupon{
		Code:         "press",
		DiscountType: coupons.DiscountNone,
		Active:       true,
	}).Error)
	f.hold(t, "T1", 5*time.Minute, "A-1")

	order, err := f.commit("T1", " Press ", "A-1")
	require.NoError(t, err)

	assert.Equal(t, "PRESS", order.CouponCode)
	assert.Zero(t, order.DiscountApplied)
	assert.InDelta(t, 55.0, order.TotalAmount, 0.001)

	f.hold(t, "T2", 5*time.Minute, "A-2")
	plain, err := f.commit("T2", "", "A-2")
	require.NoError(t, err)
	assert.Empty(t, plain.CouponCode)
}

func TestCommit_UnknownCouponLeavesHold(t *testing.T) {
	f := newFixture(t)
	f.hold(t, "T1", 5*time.Minute, "A-1")

	_, err := f.commit("T1", "NOPE", "A-1")
	require.ErrorIs(t, err, coupons.ErrCouponNotFound)

	seat := f.seat(t, "A-1")
	assert.Equal(t, seats.StatusHeld, seat.Status)
	assert.Equal(t, "T1", *seat.HolderToken)
}

func TestCommit_TokenBacksOneOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.hold(t, "T1", 5*time.Minute, "A-1")
	first, err := f.commit("T1", "", "A-1")
	require.NoError(t, err)

	// The same token may hold again, but that hold can never become an order
	f.hold(t, "T1", 5*time.Minute, "A-2")
	_, err = f.commit("T1", "", "A-2")
	require.ErrorIs(t, err, ErrTokenAlreadyCommitted)
	assert.ErrorIs(t, err, seats.ErrHoldInvalid)
	assert.Equal(t, int64(1), f.orderCount(t))

	seat := f.seat(t, "A-2")
	assert.Equal(t, seats.StatusAvailable, seat.Status)
	assert.Nil(t, seat.HolderToken)

	t.Run("after the first order is cancelled", func(t *testing.T) {
		_, err := f.service.CancelOrder(ctx, first.ID, f.customer)
		require.NoError(t, err)

		f.hold(t, "T1", 5*time.Minute, "A-3")
		_, err = f.commit("T1", "", "A-3")
		require.ErrorIs(t, err, ErrTokenAlreadyCommitted)
		assert.Equal(t, seats.StatusAvailable, f.seat(t, "A-3").Status)
	})

	t.Run("a fresh token commits", func(t *testing.T) {
		f.hold(t, "T2", 5*time.Minute, "A-2")
		order, err := f.commit("T2", "", "A-2")
		require.NoError(t, err)
		assert.Equal(t, "T2", order.HolderToken)
	})
}

func TestGetOrder_OtherCustomerForbidden(t *testing.T) {
	f := newFixture(t)
	f.hold(t, "T1", 5*time.Minute, "A-1")
	order, err := f.commit("T1", "", "A-1")
	require.NoError(t, err)

	stranger := Actor{UserID: uuid.NewString(), Role: middleware.RoleUser}
	_, err = f.service.GetOrder(context.Background(), order.ID, stranger)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.service.GetOrder(context.Background(), order.ID, f.admin)
	assert.NoError(t, err)

	_, err = f.service.GetOrder(context.Background(), uuid.New(), f.admin)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestListUserOrders(t *testing.T) {
	f := newFixture(t)
	f.hold(t, "T1", 5*time.Minute, "A-1")
	_, err := f.commit("T1", "", "A-1")
	require.NoError(t, err)
	f.hold(t, "T2", 5*time.Minute, "A-2")
	_, err = f.commit("T2", "", "A-2")
	require.NoError(t, err)

	page, err := f.service.ListUserOrders(context.Background(), f.customer, OrderListQuery{Page: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.TotalCount)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Orders, 1)
}

func TestCancelOrder_ReleasesSeats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.hold(t, "T1", 5*time.Minute, "A-1", "A-2")
	order, err := f.commit("T1", "", "A-1", "A-2")
	require.NoError(t, err)

	cancelled, err := f.service.CancelOrder(ctx, order.ID, f.customer)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancelledAt)

	for _, seatID := range []string{"A-1", "A-2"} {
		seat := f.seat(t, seatID)
		assert.Equal(t, seats.StatusAvailable, seat.Status, seatID)
		assert.Nil(t, seat.OrderID, seatID)
	}

	published := f.publisher.Events(notifications.EventTypeOrderCancelled)
	require.Len(t, published, 1)
	assert.Equal(t, []string{"A-1", "A-2"}, published[0].SeatIDs)

	// Cancelling again changes nothing
	again, err := f.service.CancelOrder(ctx, order.ID, f.customer)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, again.Status)
	assert.Len(t, f.publisher.Events(notifications.EventTypeOrderCancelled), 1)

	// Freed seats are sellable again
	f.hold(t, "T2", 5*time.Minute, "A-1")
}

func TestCancelOrder_DoesNotTouchReheldSeats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.hold(t, "T1", 5*time.Minute, "A-1", "A-2")
	order, err := f.commit("T1", "", "A-1", "A-2")
	require.NoError(t, err)

	// An admin moved A-2 out of the order before the cancel
	_, err = f.holds.OverwriteSeats(ctx, f.event.ID, seats.OverwriteSeatsRequest{
		Seats: []seats.SeatOverwrite{{SeatID: "A-2", Status: seats.StatusAvailable}},
		Force: true,
	})
	require.NoError(t, err)
	f.hold(t, "T2", 5*time.Minute, "A-2")

	_, err = f.service.CancelOrder(ctx, order.ID, f.admin)
	require.NoError(t, err)

	assert.Equal(t, seats.StatusAvailable, f.seat(t, "A-1").Status)
	seat := f.seat(t, "A-2")
	assert.Equal(t, seats.StatusHeld, seat.Status)
	assert.Equal(t, "T2", *seat.HolderToken)
}

func TestUpdateRefundStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.hold(t, "T1", 5*time.Minute, "A-1")
	order, err := f.commit("T1", "", "A-1")
	require.NoError(t, err)

	t.Run("customer cannot approve", func(t *testing.T) {
		_, err := f.service.UpdateRefundStatus(ctx, order.ID, StatusRefunded, f.customer)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("cancelled is not a refund status", func(t *testing.T) {
		_, err := f.service.UpdateRefundStatus(ctx, order.ID, StatusCancelled, f.admin)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("paid cannot jump to refunded", func(t *testing.T) {
		_, err := f.service.UpdateRefundStatus(ctx, order.ID, StatusRefunded, f.admin)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("customer requests refund", func(t *testing.T) {
		updated, err := f.service.UpdateRefundStatus(ctx, order.ID, StatusRefundRequested, f.customer)
		require.NoError(t, err)
		assert.Equal(t, StatusRefundRequested, updated.Status)
		assert.NotNil(t, updated.RefundUpdatedAt)

		// Seats stay booked while a refund is pending
		assert.Equal(t, seats.StatusBooked, f.seat(t, "A-1").Status)
	})

	t.Run("repeating the same status is a no-op", func(t *testing.T) {
		before := len(f.publisher.Events(notifications.EventTypeRefundStatusChange))
		_, err := f.service.UpdateRefundStatus(ctx, order.ID, StatusRefundRequested, f.customer)
		require.NoError(t, err)
		assert.Len(t, f.publisher.Events(notifications.EventTypeRefundStatusChange), before)
	})

	t.Run("admin approves", func(t *testing.T) {
		updated, err := f.service.UpdateRefundStatus(ctx, order.ID, StatusRefunded, f.admin)
		require.NoError(t, err)
		assert.Equal(t, StatusRefunded, updated.Status)
	})

	t.Run("refunded cannot go back to paid", func(t *testing.T) {
		_, err := f.service.UpdateRefundStatus(ctx, order.ID, StatusPaid, f.admin)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("refunded order can still be cancelled", func(t *testing.T) {
		cancelled, err := f.service.CancelOrder(ctx, order.ID, f.admin)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, cancelled.Status)
		assert.Equal(t, seats.StatusAvailable, f.seat(t, "A-1").Status)
	})

	t.Run("cancelled is terminal", func(t *testing.T) {
		_, err := f.service.UpdateRefundStatus(ctx, order.ID, StatusPaid, f.admin)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestCheckInTicket_OnlyOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.hold(t, "T1", 5*time.Minute, "A-1")
	order, err := f.commit("T1", "", "A-1")
	require.NoError(t, err)
	payload := order.Tickets[0].QRPayload

	verification, err := f.service.VerifyTicket(ctx, payload)
	require.NoError(t, err)
	assert.True(t, verification.Valid)
	assert.Equal(t, ReasonValid, verification.Reason)

	ticket, err := f.service.CheckInTicket(ctx, payload)
	require.NoError(t, err)
	require.NotNil(t, ticket.CheckedInAt)
	firstCheckIn := *ticket.CheckedInAt

	f.clock.Advance(time.Minute)
	again, err := f.service.CheckInTicket(ctx, payload)
	require.ErrorIs(t, err, ErrAlreadyCheckedIn)
	require.NotNil(t, again.CheckedInAt)
	assert.True(t, again.CheckedInAt.Equal(firstCheckIn))

	verification, err = f.service.VerifyTicket(ctx, payload)
	require.NoError(t, err)
	assert.False(t, verification.Valid)
	assert.Equal(t, ReasonAlreadyUsed, verification.Reason)

	assert.Len(t, f.publisher.Events(notifications.EventTypeTicketCheckedIn), 1)
}

func TestCheckInTicket_CancelledOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.hold(t, "T1", 5*time.Minute, "A-1")
	order, err := f.commit("T1", "", "A-1")
	require.NoError(t, err)
	_, err = f.service.CancelOrder(ctx, order.ID, f.customer)
	require.NoError(t, err)

	verification, err := f.service.VerifyTicket(ctx, order.Tickets[0].QRPayload)
	require.NoError(t, err)
	assert.False(t, verification.Valid)
	assert.Equal(t, ReasonOrderCancelled, verification.Reason)
	assert.Equal(t, StatusCancelled, verification.OrderStatus)

	_, err = f.service.CheckInTicket(ctx, order.Tickets[0].QRPayload)
	assert.ErrorIs(t, err, ErrTicketNotValid)

	var stored Ticket
	require.NoError(t, f.db.First(&stored, "id = ?", order.Tickets[0].ID).Error)
	assert.Nil(t, stored.CheckedInAt)
}

func TestVerifyTicket_UnknownPayload(t *testing.T) {
	f := newFixture(t)

	verification, err := f.service.VerifyTicket(context.Background(), "TKT-DOESNOTEXIST")
	require.NoError(t, err)
	assert.False(t, verification.Valid)
	assert.Equal(t, ReasonNotFound, verification.Reason)

	_, err = f.service.CheckInTicket(context.Background(), "TKT-DOESNOTEXIST")
	assert.ErrorIs(t, err, ErrTicketNotFound)
}

func TestTicketQR(t *testing.T) {
	f := newFixture(t)
	f.hold(t, "T1", 5*time.Minute, "A-1")
	order, err := f.commit("T1", "", "A-1")
	require.NoError(t, err)

	png, err := f.service.TicketQR(context.Background(), order.ID, order.Tickets[0].ID, 128)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), png[:4])

	_, err = f.service.TicketQR(context.Background(), uuid.New(), order.Tickets[0].ID, 128)
	assert.ErrorIs(t, err, ErrTicketNotFound)
}
