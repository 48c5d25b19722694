package seats

import (
	"context"
	"errors"
	"time"

	"boxoffice/internal/venues"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// errBatchLost rolls back a batch transaction after a lost compare-and-set
var errBatchLost = errors.New("seat batch lost compare-and-set")

// SeatOverwrite is one administrative status correction
type SeatOverwrite struct {
	SeatID string `json:"seat_id" binding:"required,seatid"`
	Status Status `json:"status" binding:"required"`
}

// Repository owns every write to event_seats. Each write is a conditional UPDATE
// whose WHERE clause is the expected prior state; RowsAffected decides the winner.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	ProvisionSeats(tx *gorm.DB, eventID uuid.UUID, defs []venues.SeatDefinition) error
	GetEventSeats(ctx context.Context, eventID uuid.UUID) ([]EventSeat, error)
	GetSeats(ctx context.Context, eventID uuid.UUID, seatIDs []string) ([]EventSeat, error)

	// Hold manager
	HoldSeats(ctx context.Context, eventID uuid.UUID, seatIDs []string, token string, expiresAt, now time.Time) ([]EventSeat, []string, error)
	ReleaseSeats(ctx context.Context, eventID uuid.UUID, seatIDs []string, token string) ([]string, error)
	OverwriteSeats(ctx context.Context, eventID uuid.UUID, changes []SeatOverwrite, force bool, now time.Time) ([]string, error)

	// Expiry reaper
	FindExpiredHolds(ctx context.Context, now time.Time, limit int) ([]EventSeat, error)
	ReleaseExpiredHold(ctx context.Context, seat EventSeat, now time.Time) (bool, error)

	// Booking committer; run on a repository bound with WithTx
	BookHeldSeats(ctx context.Context, eventID uuid.UUID, seatIDs []string, token string, orderID uuid.UUID, now time.Time) ([]string, error)
	ReleaseBookedSeats(ctx context.Context, eventID, orderID uuid.UUID) ([]string, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) ProvisionSeats(tx *gorm.DB, eventID uuid.UUID, defs []venues.SeatDefinition) error {
	rows := make([]EventSeat, 0, len(defs))
	for _, def := range defs {
		rows = append(rows, EventSeat{
			EventID:         eventID,
			SeatID:          def.SeatID,
			RowLabel:        def.RowLabel,
			SeatNumber:      def.SeatNumber,
			Tier:            def.Tier,
			PriceMultiplier: def.PriceMultiplier,
			Status:          StatusAvailable,
			Version:         1,
		})
	}
	return tx.CreateInBatches(&rows, 200).Error
}

func (r *repository) GetEventSeats(ctx context.Context, eventID uuid.UUID) ([]EventSeat, error) {
	var seats []EventSeat
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("row_label ASC, seat_number ASC").
		Find(&seats).Error
	return seats, err
}

func (r *repository) GetSeats(ctx context.Context, eventID uuid.UUID, seatIDs []string) ([]EventSeat, error) {
	var seats []EventSeat
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND seat_id IN ?", eventID, seatIDs).
		Order("seat_id ASC").
		Find(&seats).Error
	return seats, err
}

// HoldSeats claims every seat for token or none of them. Seats are updated in
// seat id order so concurrent batches lock rows in the same order.
func (r *repository) HoldSeats(ctx context.Context, eventID uuid.UUID, seatIDs []string, token string, expiresAt, now time.Time) ([]EventSeat, []string, error) {
	var held []EventSeat
	var conflicts []string

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, seatID := range seatIDs {
			result := tx.Model(&EventSeat{}).
				Where("event_id = ? AND seat_id = ?", eventID, seatID).
				Where("(status = ? OR (status = ? AND (holder_token = ? OR hold_expires_at <= ?)))",
					StatusAvailable, StatusHeld, token, now).
				Updates(map[string]interface{}{
					"status":          StatusHeld,
					"holder_token":    token,
					"hold_expires_at": expiresAt,
					"order_id":        nil,
					"version":         gorm.Expr("version + 1"),
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				conflicts = append(conflicts, seatID)
			}
		}
		if len(conflicts) > 0 {
			return errBatchLost
		}

		return tx.Where("event_id = ? AND seat_id IN ?", eventID, seatIDs).
			Order("seat_id ASC").
			Find(&held).Error
	})
	if errors.Is(err, errBatchLost) {
		return nil, conflicts, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return held, nil, nil
}

// ReleaseSeats frees the seats token still holds and skips the rest
func (r *repository) ReleaseSeats(ctx context.Context, eventID uuid.UUID, seatIDs []string, token string) ([]string, error) {
	released := []string{}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, seatID := range seatIDs {
			result := tx.Model(&EventSeat{}).
				Where("event_id = ? AND seat_id = ? AND status = ? AND holder_token = ?", eventID, seatID, StatusHeld, token).
				Updates(releasedColumns())
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected > 0 {
				released = append(released, seatID)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return released, nil
}

// OverwriteSeats applies admin corrections. Without force, seats under a live hold
// and seats booked by an order are refused and the whole batch is rolled back.
func (r *repository) OverwriteSeats(ctx context.Context, eventID uuid.UUID, changes []SeatOverwrite, force bool, now time.Time) ([]string, error) {
	var conflicts []string

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, change := range changes {
			query := tx.Model(&EventSeat{}).Where("event_id = ? AND seat_id = ?", eventID, change.SeatID)
			if !force {
				query = query.
					Where("NOT (status = ? AND hold_expires_at > ?)", StatusHeld, now).
					Where("NOT (status = ? AND order_id IS NOT NULL)", StatusBooked)
			}

			updates := map[string]interface{}{
				"status":          change.Status,
				"holder_token":    nil,
				"hold_expires_at": nil,
				"version":         gorm.Expr("version + 1"),
			}
			if change.Status == StatusAvailable {
				updates["order_id"] = nil
			}

			result := query.Updates(updates)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				conflicts = append(conflicts, change.SeatID)
			}
		}
		if len(conflicts) > 0 {
			return errBatchLost
		}
		return nil
	})
	if errors.Is(err, errBatchLost) {
		return conflicts, nil
	}
	return nil, err
}

// EXPIRY

func (r *repository) FindExpiredHolds(ctx context.Context, now time.Time, limit int) ([]EventSeat, error) {
	var seats []EventSeat
	err := r.db.WithContext(ctx).
		Where("status = ? AND hold_expires_at <= ?", StatusHeld, now).
		Order("hold_expires_at ASC").
		Limit(limit).
		Find(&seats).Error
	return seats, err
}

// ReleaseExpiredHold reverts seat only if it is unchanged since it was read and still expired
func (r *repository) ReleaseExpiredHold(ctx context.Context, seat EventSeat, now time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&EventSeat{}).
		Where("id = ? AND version = ? AND status = ? AND hold_expires_at <= ?", seat.ID, seat.Version, StatusHeld, now).
		Updates(releasedColumns())
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// BOOKING

// BookHeldSeats moves seats held by token to BOOKED and returns the seats that
// were not validly held. The caller owns the transaction and must roll back on
// any failure.
func (r *repository) BookHeldSeats(ctx context.Context, eventID uuid.UUID, seatIDs []string, token string, orderID uuid.UUID, now time.Time) ([]string, error) {
	var failed []string
	for _, seatID := range seatIDs {
		result := r.db.WithContext(ctx).Model(&EventSeat{}).
			Where("event_id = ? AND seat_id = ? AND status = ? AND holder_token = ? AND hold_expires_at > ?",
				eventID, seatID, StatusHeld, token, now).
			Updates(map[string]interface{}{
				"status":          StatusBooked,
				"holder_token":    nil,
				"hold_expires_at": nil,
				"order_id":        orderID,
				"version":         gorm.Expr("version + 1"),
			})
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			failed = append(failed, seatID)
		}
	}
	return failed, nil
}

func (r *repository) ReleaseBookedSeats(ctx context.Context, eventID, orderID uuid.UUID) ([]string, error) {
	var seats []EventSeat
	if err := r.db.WithContext(ctx).
		Select("seat_id").
		Where("event_id = ? AND order_id = ? AND status = ?", eventID, orderID, StatusBooked).
		Order("seat_id ASC").
		Find(&seats).Error; err != nil {
		return nil, err
	}

	released := make([]string, 0, len(seats))
	for _, seat := range seats {
		result := r.db.WithContext(ctx).Model(&EventSeat{}).
			Where("event_id = ? AND seat_id = ? AND order_id = ? AND status = ?", eventID, seat.SeatID, orderID, StatusBooked).
			Updates(map[string]interface{}{
				"status":   StatusAvailable,
				"order_id": nil,
				"version":  gorm.Expr("version + 1"),
			})
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected > 0 {
			released = append(released, seat.SeatID)
		}
	}
	return released, nil
}

func releasedColumns() map[string]interface{} {
	return map[string]interface{}{
		"status":          StatusAvailable,
		"holder_token":    nil,
		"hold_expires_at": nil,
		"version":         gorm.Expr("version + 1"),
	}
}
