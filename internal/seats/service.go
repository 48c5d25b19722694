package seats

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"boxoffice/internal/events"
	"boxoffice/internal/notifications"
	"boxoffice/internal/shared/config"
	"boxoffice/internal/shared/constants"
	"boxoffice/pkg/cache"
	"boxoffice/pkg/logger"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// EventReader is the authoritative event lookup; it must not be served from cache
type EventReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*events.Event, error)
}

type Service interface {
	HoldSeats(ctx context.Context, eventID uuid.UUID, req HoldSeatsRequest) (*HoldResponse, error)
	ReleaseSeats(ctx context.Context, eventID uuid.UUID, req ReleaseSeatsRequest) (*ReleaseResponse, error)
	GetSeatMap(ctx context.Context, eventID uuid.UUID) (*SeatMapResponse, error)
	OverwriteSeats(ctx context.Context, eventID uuid.UUID, req OverwriteSeatsRequest) (*OverwriteResponse, error)
	InvalidateSeatMap(ctx context.Context, eventID uuid.UUID)
}

type service struct {
	repo      Repository
	events    EventReader
	cache     cache.Service
	publisher notifications.Publisher
	clock     clockwork.Clock
	holds     config.HoldConfig
	logger    *logger.Logger
}

func NewService(
	repo Repository,
	eventReader EventReader,
	cacheService cache.Service,
	publisher notifications.Publisher,
	clock clockwork.Clock,
	holds config.HoldConfig,
) Service {
	return &service{
		repo:      repo,
		events:    eventReader,
		cache:     cacheService,
		publisher: publisher,
		clock:     clock,
		holds:     holds,
		logger:    logger.GetDefault().WithComponent("seats"),
	}
}

// SEAT HOLDING

// HoldSeats grants or refreshes a hold on every requested seat, or on none.
// An empty holder token starts a new checkout session.
func (s *service) HoldSeats(ctx context.Context, eventID uuid.UUID, req HoldSeatsRequest) (*HoldResponse, error) {
	seatIDs := NormalizeSeatIDs(req.SeatIDs)
	if len(seatIDs) == 0 {
		return nil, ErrNoSeatsRequested
	}
	if s.holds.MaxSeats > 0 && len(seatIDs) > s.holds.MaxSeats {
		return nil, fmt.Errorf("%w: at most %d per hold", ErrTooManySeats, s.holds.MaxSeats)
	}

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.Status.AcceptsHolds() {
		return nil, ErrEventNotOnSale
	}

	if err := s.requireSeats(ctx, eventID, seatIDs); err != nil {
		return nil, err
	}

	token := strings.TrimSpace(req.HolderToken)
	if token == "" {
		token = NewHolderToken()
	}

	ttl := s.holdTTL(req.TTLSeconds)
	now := Now(s.clock)
	expiresAt := now.Add(ttl)

	held, conflicts, err := s.repo.HoldSeats(ctx, eventID, seatIDs, token, expiresAt, now)
	if err != nil {
		return nil, fmt.Errorf("failed to hold seats: %w", err)
	}
	if len(conflicts) > 0 {
		s.logger.LogHoldRejected(ctx, eventID.String(), token, conflicts)
		return nil, &SeatConflictError{Err: ErrSeatUnavailable, SeatIDs: conflicts}
	}

	s.logger.LogHoldGranted(ctx, eventID.String(), token, seatIDs, expiresAt)
	s.InvalidateSeatMap(ctx, eventID)
	s.publish(ctx, notifications.NewDomainEvent(notifications.EventTypeSeatsHeld, eventID.String(), now).
		WithSeats(seatIDs).
		With("expires_at", expiresAt))

	resp := &HoldResponse{
		HolderToken: token,
		EventID:     eventID.String(),
		Seats:       make([]SeatView, 0, len(held)),
		ExpiresAt:   expiresAt,
		TTL:         int(ttl / time.Second),
	}
	for i := range held {
		view := toSeatView(&held[i], event.BasePrice, now)
		resp.TotalPrice += view.Price
		resp.Seats = append(resp.Seats, view)
	}
	resp.TotalPrice = RoundPrice(resp.TotalPrice)

	return resp, nil
}

// ReleaseSeats frees the seats the token still holds. Seats it does not hold are
// skipped silently so late or duplicate releases are harmless.
func (s *service) ReleaseSeats(ctx context.Context, eventID uuid.UUID, req ReleaseSeatsRequest) (*ReleaseResponse, error) {
	seatIDs := NormalizeSeatIDs(req.SeatIDs)
	if len(seatIDs) == 0 {
		return nil, ErrNoSeatsRequested
	}
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	released, err := s.repo.ReleaseSeats(ctx, eventID, seatIDs, req.HolderToken)
	if err != nil {
		return nil, fmt.Errorf("failed to release seats: %w", err)
	}

	if len(released) > 0 {
		s.InvalidateSeatMap(ctx, eventID)
		s.publish(ctx, notifications.NewDomainEvent(notifications.EventTypeSeatsReleased, eventID.String(), Now(s.clock)).
			WithSeats(released))
	}

	return &ReleaseResponse{EventID: eventID.String(), Released: released}, nil
}

// SEAT MAP

func (s *service) GetSeatMap(ctx context.Context, eventID uuid.UUID) (*SeatMapResponse, error) {
	var seatMap SeatMapResponse
	err := s.cache.GetOrSet(ctx, constants.BuildSeatMapKey(eventID.String()), constants.TTL_SEAT_MAP, func() (interface{}, error) {
		return s.buildSeatMap(ctx, eventID)
	}, &seatMap)
	if err != nil {
		return nil, err
	}
	return &seatMap, nil
}

func (s *service) buildSeatMap(ctx context.Context, eventID uuid.UUID) (*SeatMapResponse, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.GetEventSeats(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to load seats: %w", err)
	}

	now := Now(s.clock)
	seatMap := &SeatMapResponse{
		EventID:     eventID.String(),
		GeneratedAt: now,
		Seats:       make([]SeatView, 0, len(rows)),
	}
	for i := range rows {
		view := toSeatView(&rows[i], event.BasePrice, now)
		switch view.Status {
		case StatusAvailable:
			seatMap.Counts.Available++
		case StatusHeld:
			seatMap.Counts.Held++
		case StatusBooked:
			seatMap.Counts.Booked++
		}
		seatMap.Seats = append(seatMap.Seats, view)
	}
	return seatMap, nil
}

// InvalidateSeatMap drops the cached seat map after a mutation
func (s *service) InvalidateSeatMap(ctx context.Context, eventID uuid.UUID) {
	if err := s.cache.Delete(ctx, constants.BuildSeatMapKey(eventID.String())); err != nil {
		s.logger.Warn("Failed to invalidate seat map cache", "event_id", eventID.String(), "error", err)
	}
}

// ADMIN OVERWRITE

// OverwriteSeats applies manual corrections. It never creates a hold, always clears
// hold metadata and, unless forced, refuses seats under a live hold or booked by an order.
func (s *service) OverwriteSeats(ctx context.Context, eventID uuid.UUID, req OverwriteSeatsRequest) (*OverwriteResponse, error) {
	if len(req.Seats) == 0 {
		return nil, ErrNoSeatsRequested
	}

	changes := make(map[string]SeatOverwrite, len(req.Seats))
	for _, change := range req.Seats {
		change.SeatID = normalizeSeatID(change.SeatID)
		change.Status = Status(strings.ToUpper(strings.TrimSpace(string(change.Status))))
		if change.SeatID == "" {
			return nil, fmt.Errorf("%w: empty seat id", ErrInvalidOverwrite)
		}
		if change.Status != StatusAvailable && change.Status != StatusBooked {
			return nil, fmt.Errorf("%w: status %q cannot be set directly", ErrInvalidOverwrite, change.Status)
		}
		changes[change.SeatID] = change
	}

	seatIDs := make([]string, 0, len(changes))
	for seatID := range changes {
		seatIDs = append(seatIDs, seatID)
	}
	sort.Strings(seatIDs)
	ordered := make([]SeatOverwrite, 0, len(seatIDs))
	for _, seatID := range seatIDs {
		ordered = append(ordered, changes[seatID])
	}

	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	if err := s.requireSeats(ctx, eventID, seatIDs); err != nil {
		return nil, err
	}

	now := Now(s.clock)
	conflicts, err := s.repo.OverwriteSeats(ctx, eventID, ordered, req.Force, now)
	if err != nil {
		return nil, fmt.Errorf("failed to overwrite seats: %w", err)
	}
	if len(conflicts) > 0 {
		return nil, &SeatConflictError{Err: ErrSeatUnavailable, SeatIDs: conflicts}
	}

	s.logger.Info("Seats overwritten",
		"event_id", eventID.String(),
		"seats", seatIDs,
		"force", req.Force,
	)
	s.InvalidateSeatMap(ctx, eventID)
	s.publish(ctx, notifications.NewDomainEvent(notifications.EventTypeSeatsOverwritten, eventID.String(), now).
		WithSeats(seatIDs).
		With("force", req.Force))

	return &OverwriteResponse{EventID: eventID.String(), Updated: seatIDs}, nil
}

// HELPERS

func (s *service) requireSeats(ctx context.Context, eventID uuid.UUID, seatIDs []string) error {
	rows, err := s.repo.GetSeats(ctx, eventID, seatIDs)
	if err != nil {
		return fmt.Errorf("failed to load seats: %w", err)
	}
	if len(rows) == len(seatIDs) {
		return nil
	}

	found := make(map[string]bool, len(rows))
	for _, row := range rows {
		found[row.SeatID] = true
	}
	var missing []string
	for _, seatID := range seatIDs {
		if !found[seatID] {
			missing = append(missing, seatID)
		}
	}
	return &SeatConflictError{Err: ErrSeatNotFound, SeatIDs: missing}
}

func (s *service) holdTTL(seconds int) time.Duration {
	ttl := s.holds.DefaultTTL
	if seconds > 0 {
		ttl = time.Duration(seconds) * time.Second
	}
	if s.holds.MaxTTL > 0 && ttl > s.holds.MaxTTL {
		ttl = s.holds.MaxTTL
	}
	return ttl
}

func (s *service) publish(ctx context.Context, event *notifications.DomainEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WithError(err).Warn("Failed to publish domain event", "type", string(event.Type))
	}
}

func toSeatView(seat *EventSeat, basePrice float64, now time.Time) SeatView {
	view := SeatView{
		SeatID:     seat.SeatID,
		RowLabel:   seat.RowLabel,
		SeatNumber: seat.SeatNumber,
		Tier:       seat.Tier,
		Price:      RoundPrice(basePrice * seat.PriceMultiplier),
		Status:     seat.EffectiveStatus(now),
	}
	if view.Status == StatusHeld {
		view.HoldExpiresAt = seat.HoldExpiresAt
	}
	return view
}

// NormalizeSeatIDs upper-cases, de-duplicates and sorts seat ids. The sorted
// order is the row lock order for every batch.
func NormalizeSeatIDs(seatIDs []string) []string {
	seen := make(map[string]bool, len(seatIDs))
	out := make([]string, 0, len(seatIDs))
	for _, seatID := range seatIDs {
		seatID = normalizeSeatID(seatID)
		if seatID == "" || seen[seatID] {
			continue
		}
		seen[seatID] = true
		out = append(out, seatID)
	}
	sort.Strings(out)
	return out
}

func normalizeSeatID(seatID string) string {
	return strings.ToUpper(strings.TrimSpace(seatID))
}

// NewHolderToken returns an opaque checkout session token
func NewHolderToken() string {
	return "hold_" + uuid.NewString()
}

// Now is the store timestamp: UTC at microsecond precision, matching Postgres
func Now(clock clockwork.Clock) time.Time {
	return clock.Now().UTC().Truncate(time.Microsecond)
}

// RoundPrice rounds to cents
func RoundPrice(amount float64) float64 {
	return math.Round(amount*100) / 100
}
