package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"boxoffice/internal/coupons"
	"boxoffice/internal/events"
	"boxoffice/internal/notifications"
	"boxoffice/internal/seats"
	"boxoffice/internal/shared/config"
	"boxoffice/internal/shared/middleware"
	"boxoffice/pkg/logger"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"
)

// EventReader is the authoritative event lookup
type EventReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*events.Event, error)
}

// DiscountCalculator prices a coupon code against a subtotal
type DiscountCalculator interface {
	ComputeDiscount(ctx context.Context, code string, subtotal float64) (float64, error)
}

// SeatMapInvalidator drops derived seat map caches after seats change
type SeatMapInvalidator interface {
	InvalidateSeatMap(ctx context.Context, eventID uuid.UUID)
}

// Actor is the authenticated caller
type Actor struct {
	UserID string
	Role   string
}

func (a Actor) IsAdmin() bool {
	return a.Role == middleware.RoleAdmin
}

func (a Actor) owns(order *Order) bool {
	return order.UserID.String() == a.UserID
}

type Service interface {
	Commit(ctx context.Context, actor Actor, req CreateOrderRequest) (*Order, error)
	GetOrder(ctx context.Context, id uuid.UUID, actor Actor) (*Order, error)
	ListUserOrders(ctx context.Context, actor Actor, query OrderListQuery) (*PaginatedOrders, error)
	CancelOrder(ctx context.Context, id uuid.UUID, actor Actor) (*Order, error)
	UpdateRefundStatus(ctx context.Context, id uuid.UUID, target Status, actor Actor) (*Order, error)
	VerifyTicket(ctx context.Context, qrPayload string) (*TicketVerification, error)
	CheckInTicket(ctx context.Context, qrPayload string) (*Ticket, error)
	TicketQR(ctx context.Context, orderID, ticketID uuid.UUID, size int) ([]byte, error)
}

type service struct {
	repo      Repository
	seats     seats.Repository
	events    EventReader
	discounts DiscountCalculator
	seatMaps  SeatMapInvalidator
	publisher notifications.Publisher
	clock     clockwork.Clock
	pricing   config.PricingConfig
	logger    *logger.Logger
}

func NewService(
	repo Repository,
	seatRepo seats.Repository,
	eventReader EventReader,
	discounts DiscountCalculator,
	seatMaps SeatMapInvalidator,
	publisher notifications.Publisher,
	clock clockwork.Clock,
	pricing config.PricingConfig,
) Service {
	return &service{
		repo:      repo,
		seats:     seatRepo,
		events:    eventReader,
		discounts: discounts,
		seatMaps:  seatMaps,
		publisher: publisher,
		clock:     clock,
		pricing:   pricing,
		logger:    logger.GetDefault().WithComponent("orders"),
	}
}

// COMMIT

// Commit books every seat held by the request's token and writes the order in one
// transaction. If any seat is no longer validly held nothing is written.
func (s *service) Commit(ctx context.Context, actor Actor, req CreateOrderRequest) (*Order, error) {
	userID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: missing user", ErrForbidden)
	}
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID: %w", err)
	}

	seatIDs := seats.NormalizeSeatIDs(req.SeatIDs)
	if len(seatIDs) == 0 {
		return nil, seats.ErrNoSeatsRequested
	}

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	rows, err := s.seats.GetSeats(ctx, eventID, seatIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load seats: %w", err)
	}
	if len(rows) != len(seatIDs) {
		return nil, &seats.SeatConflictError{Err: seats.ErrSeatNotFound, SeatIDs: missingSeats(seatIDs, rows)}
	}

	// Early rejection only; the booking update below is authoritative
	now := seats.Now(s.clock)
	if err := holdError(rows, req.HolderToken, now); err != nil {
		return nil, err
	}
	if err := s.rejectSpentToken(ctx, eventID, seatIDs, req.HolderToken); err != nil {
		return nil, err
	}

	multipliers := make([]float64, len(rows))
	for i, row := range rows {
		multipliers[i] = row.PriceMultiplier
	}
	listed := PriceOrder(event.BasePrice, multipliers, 0, s.pricing.ServiceFeeRate)

	discount, err := s.discounts.ComputeDiscount(ctx, req.CouponCode, listed.Subtotal)
	if err != nil {
		return nil, err
	}
	price := PriceOrder(event.BasePrice, multipliers, discount, s.pricing.ServiceFeeRate)

	order, err := s.buildOrder(userID, event, rows, req, price, now)
	if err != nil {
		return nil, err
	}

	var failed []string
	err = s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		failed, err = s.seats.WithTx(tx).BookHeldSeats(ctx, eventID, seatIDs, req.HolderToken, order.ID, now)
		if err != nil {
			return err
		}
		if len(failed) > 0 {
			return seats.ErrHoldInvalid
		}
		return s.repo.WithTx(tx).Create(ctx, order)
	})
	if errors.Is(err, seats.ErrHoldInvalid) {
		return nil, s.classifyHoldFailure(ctx, eventID, failed, req.HolderToken, now)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost a race with another commit on the same token
		return nil, ErrTokenAlreadyCommitted
	}
	if err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	s.logger.LogOrderCommitted(ctx, order.ID.String(), eventID.String(), userID.String(), len(order.Tickets))
	s.seatMaps.InvalidateSeatMap(ctx, eventID)
	s.publish(ctx, notifications.NewDomainEvent(notifications.EventTypeOrderConfirmed, eventID.String(), now).
		WithOrder(order.ID.String()).
		WithSeats(seatIDs).
		With("total_amount", order.TotalAmount).
		With("currency", order.Currency))

	return order, nil
}

func (s *service) buildOrder(userID uuid.UUID, event *events.Event, rows []seats.EventSeat, req CreateOrderRequest, price PriceBreakdown, now time.Time) (*Order, error) {
	orderRef, err := newOrderRef(now)
	if err != nil {
		return nil, fmt.Errorf("failed to generate order reference: %w", err)
	}

	paymentMode := req.PaymentMode
	if paymentMode == "" {
		paymentMode = "CARD"
	}

	order := &Order{
		ID:              uuid.New(),
		OrderRef:        orderRef,
		UserID:          userID,
		EventID:         event.ID,
		EventName:       event.Name,
		HolderToken:     req.HolderToken,
		CustomerName:    strings.TrimSpace(req.CustomerName),
		CustomerEmail:   strings.ToLower(strings.TrimSpace(req.CustomerEmail)),
		Subtotal:        price.Subtotal,
		DiscountApplied: price.Discount,
		ServiceFee:      price.ServiceFee,
		TotalAmount:     price.Total,
		Currency:        s.pricing.Currency,
		Status:          StatusPaid,
		PaymentMode:     paymentMode,
		Date:            now,
		Tickets:         make([]Ticket, 0, len(rows)),
	}
	// Any code the discount calculator accepted goes on the receipt, even at zero
	order.CouponCode = coupons.NormalizeCode(req.CouponCode)

	for i, row := range rows {
		ticketType := TicketTypeStandard
		if row.Tier == TicketTypePremium {
			ticketType = TicketTypePremium
		}
		order.Tickets = append(order.Tickets, Ticket{
			EventID:       event.ID,
			EventName:     event.Name,
			EventStartsAt: event.StartsAt,
			SeatID:        row.SeatID,
			RowLabel:      row.RowLabel,
			SeatNumber:    row.SeatNumber,
			TicketType:    ticketType,
			ListPrice:     price.ListPrices[i],
			Price:         price.NetPrices[i],
			QRPayload:     NewQRPayload(),
		})
	}
	return order, nil
}

// rejectSpentToken refuses a token that already placed an order. Its seats are
// released so a hold that can never be committed does not block them until expiry.
func (s *service) rejectSpentToken(ctx context.Context, eventID uuid.UUID, seatIDs []string, token string) error {
	used, err := s.repo.HolderTokenUsed(ctx, token)
	if err != nil {
		return fmt.Errorf("failed to check holder token: %w", err)
	}
	if !used {
		return nil
	}

	released, err := s.seats.ReleaseSeats(ctx, eventID, seatIDs, token)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to release seats held by a spent token", "event_id", eventID.String())
	} else if len(released) > 0 {
		s.seatMaps.InvalidateSeatMap(ctx, eventID)
	}
	return ErrTokenAlreadyCommitted
}

// classifyHoldFailure re-reads the seats that failed to book. When every one of
// them is still held by token but past its expiry the hold merely timed out.
func (s *service) classifyHoldFailure(ctx context.Context, eventID uuid.UUID, failed []string, token string, now time.Time) error {
	rows, err := s.seats.GetSeats(ctx, eventID, failed)
	if err != nil || len(rows) != len(failed) {
		return &seats.SeatConflictError{Err: seats.ErrHoldInvalid, SeatIDs: failed}
	}

	for _, row := range rows {
		expiredOwnHold := row.Status == seats.StatusHeld &&
			row.HolderToken != nil && *row.HolderToken == token &&
			row.HoldExpiresAt != nil && !row.HoldExpiresAt.After(now)
		if !expiredOwnHold {
			return &seats.SeatConflictError{Err: seats.ErrHoldInvalid, SeatIDs: failed}
		}
	}
	return &seats.SeatConflictError{Err: seats.ErrHoldExpired, SeatIDs: failed}
}

func holdError(rows []seats.EventSeat, token string, now time.Time) error {
	var invalid []string
	allExpired := true
	for i := range rows {
		row := &rows[i]
		if row.IsHeldBy(token, now) {
			continue
		}
		invalid = append(invalid, row.SeatID)
		if row.Status != seats.StatusHeld || row.HolderToken == nil || *row.HolderToken != token {
			allExpired = false
		}
	}
	if len(invalid) == 0 {
		return nil
	}
	if allExpired {
		return &seats.SeatConflictError{Err: seats.ErrHoldExpired, SeatIDs: invalid}
	}
	return &seats.SeatConflictError{Err: seats.ErrHoldInvalid, SeatIDs: invalid}
}

func missingSeats(seatIDs []string, rows []seats.EventSeat) []string {
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
	return missing
}

// QUERIES

func (s *service) GetOrder(ctx context.Context, id uuid.UUID, actor Actor) (*Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !actor.owns(order) {
		return nil, ErrForbidden
	}
	return order, nil
}

func (s *service) ListUserOrders(ctx context.Context, actor Actor, query OrderListQuery) (*PaginatedOrders, error) {
	userID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: missing user", ErrForbidden)
	}
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit < 1 {
		query.Limit = 20
	}

	orders, total, err := s.repo.GetUserOrders(ctx, userID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	totalPages := int(total) / query.Limit
	if int(total)%query.Limit != 0 {
		totalPages++
	}

	return &PaginatedOrders{
		Orders:     orders,
		TotalCount: total,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: totalPages,
	}, nil
}

// CANCELLATION AND REFUNDS

// errStatusMoved aborts a transition whose compare-and-set lost to a concurrent update
var errStatusMoved = errors.New("order status changed concurrently")

// CancelOrder cancels the order and frees its seats together. Cancelling a
// cancelled order returns it unchanged.
func (s *service) CancelOrder(ctx context.Context, id uuid.UUID, actor Actor) (*Order, error) {
	order, err := s.GetOrder(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	if order.Status == StatusCancelled {
		return order, nil
	}
	if !order.Status.CanTransitionTo(StatusCancelled) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, order.Status, StatusCancelled)
	}

	now := seats.Now(s.clock)
	var released []string
	err = s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		ok, err := s.repo.WithTx(tx).TransitionStatus(ctx, id, order.Status, StatusCancelled, now)
		if err != nil {
			return err
		}
		if !ok {
			return errStatusMoved
		}
		released, err = s.seats.WithTx(tx).ReleaseBookedSeats(ctx, order.EventID, order.ID)
		return err
	})
	if errors.Is(err, errStatusMoved) {
		// Lost to a concurrent cancel or transition; report what won
		current, getErr := s.repo.GetByID(ctx, id)
		if getErr != nil {
			return nil, getErr
		}
		if current.Status == StatusCancelled {
			return current, nil
		}
		return nil, fmt.Errorf("%w: order changed concurrently", ErrInvalidTransition)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to cancel order: %w", err)
	}

	s.logger.LogOrderCancelled(ctx, order.ID.String(), order.EventID.String(), len(released))
	s.seatMaps.InvalidateSeatMap(ctx, order.EventID)
	s.publish(ctx, notifications.NewDomainEvent(notifications.EventTypeOrderCancelled, order.EventID.String(), now).
		WithOrder(order.ID.String()).
		WithSeats(released))

	return s.repo.GetByID(ctx, id)
}

// UpdateRefundStatus is a pure order transition with no seat effect. Customers may
// only request a refund on their own paid orders; everything else is for admins.
func (s *service) UpdateRefundStatus(ctx context.Context, id uuid.UUID, target Status, actor Actor) (*Order, error) {
	if !target.IsValid() || target == StatusCancelled {
		return nil, fmt.Errorf("%w: %s is not a refund status", ErrInvalidTransition, target)
	}

	order, err := s.GetOrder(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && target != StatusRefundRequested {
		return nil, ErrForbidden
	}
	if order.Status == target {
		return order, nil
	}
	if !order.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, order.Status, target)
	}

	now := seats.Now(s.clock)
	ok, err := s.repo.TransitionStatus(ctx, id, order.Status, target, now)
	if err != nil {
		return nil, fmt.Errorf("failed to update refund status: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: order changed concurrently", ErrInvalidTransition)
	}

	s.logger.InfoWithContext(ctx, "Order refund status changed", map[string]interface{}{
		"order_id": id.String(),
		"from":     order.Status.String(),
		"to":       target.String(),
	})
	s.publish(ctx, notifications.NewDomainEvent(notifications.EventTypeRefundStatusChange, order.EventID.String(), now).
		WithOrder(id.String()).
		With("from", order.Status).
		With("to", target))

	return s.repo.GetByID(ctx, id)
}

// TICKETS

func (s *service) VerifyTicket(ctx context.Context, qrPayload string) (*TicketVerification, error) {
	ticket, err := s.repo.GetTicketByQR(ctx, strings.TrimSpace(qrPayload))
	if errors.Is(err, ErrTicketNotFound) {
		return &TicketVerification{Valid: false, Reason: ReasonNotFound}, nil
	}
	if err != nil {
		return nil, err
	}

	order, err := s.repo.GetByID(ctx, ticket.OrderID)
	if err != nil {
		return nil, err
	}

	verification := &TicketVerification{Ticket: ticket, OrderStatus: order.Status}
	switch {
	case order.Status == StatusCancelled:
		verification.Reason = ReasonOrderCancelled
	case !order.Status.TicketsValid():
		verification.Reason = ReasonOrderRefunded
	case ticket.CheckedInAt != nil:
		verification.Reason = ReasonAlreadyUsed
	default:
		verification.Valid = true
		verification.Reason = ReasonValid
	}
	return verification, nil
}

// CheckInTicket consumes a ticket exactly once. A second check-in reports
// ErrAlreadyCheckedIn and leaves the first check-in time untouched.
func (s *service) CheckInTicket(ctx context.Context, qrPayload string) (*Ticket, error) {
	verification, err := s.VerifyTicket(ctx, qrPayload)
	if err != nil {
		return nil, err
	}

	switch verification.Reason {
	case ReasonNotFound:
		s.logger.LogTicketCheckIn(ctx, "", ReasonNotFound)
		return nil, ErrTicketNotFound
	case ReasonAlreadyUsed:
		s.logger.LogTicketCheckIn(ctx, verification.Ticket.ID.String(), ReasonAlreadyUsed)
		return verification.Ticket, ErrAlreadyCheckedIn
	case ReasonOrderCancelled, ReasonOrderRefunded:
		s.logger.LogTicketCheckIn(ctx, verification.Ticket.ID.String(), verification.Reason)
		return nil, ErrTicketNotValid
	}

	ticket := verification.Ticket
	now := seats.Now(s.clock)
	ok, err := s.repo.MarkCheckedIn(ctx, ticket.ID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to check in ticket: %w", err)
	}
	if !ok {
		// Lost a race; re-verify to report why
		again, err := s.VerifyTicket(ctx, qrPayload)
		if err != nil {
			return nil, err
		}
		s.logger.LogTicketCheckIn(ctx, ticket.ID.String(), again.Reason)
		if again.Reason == ReasonAlreadyUsed {
			return again.Ticket, ErrAlreadyCheckedIn
		}
		return nil, ErrTicketNotValid
	}

	ticket.CheckedInAt = &now
	s.logger.LogTicketCheckIn(ctx, ticket.ID.String(), "CHECKED_IN")
	s.publish(ctx, notifications.NewDomainEvent(notifications.EventTypeTicketCheckedIn, ticket.EventID.String(), now).
		WithOrder(ticket.OrderID.String()).
		WithSeats([]string{ticket.SeatID}))

	return ticket, nil
}

func (s *service) TicketQR(ctx context.Context, orderID, ticketID uuid.UUID, size int) ([]byte, error) {
	ticket, err := s.repo.GetTicket(ctx, orderID, ticketID)
	if err != nil {
		return nil, err
	}
	return RenderQR(ticket.QRPayload, size)
}

func (s *service) publish(ctx context.Context, event *notifications.DomainEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WithError(err).Warn("Failed to publish domain event", "type", string(event.Type))
	}
}
