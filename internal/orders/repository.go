package orders

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	// Transaction runs fn in one database transaction; fn must only use tx
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) Repository

	Create(ctx context.Context, order *Order) error
	// HolderTokenUsed reports whether an order, in any status, was placed with token
	HolderTokenUsed(ctx context.Context, token string) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)
	GetUserOrders(ctx context.Context, userID uuid.UUID, query OrderListQuery) ([]Order, int64, error)

	// TransitionStatus moves the order from one status to another; false if it was no longer in from
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to Status, at time.Time) (bool, error)

	GetTicketByQR(ctx context.Context, qrPayload string) (*Ticket, error)
	GetTicket(ctx context.Context, orderID, ticketID uuid.UUID) (*Ticket, error)
	// MarkCheckedIn consumes the ticket once, and only while its order admits entry
	MarkCheckedIn(ctx context.Context, ticketID uuid.UUID, at time.Time) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, order *Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *repository) HolderTokenUsed(ctx context.Context, token string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Order{}).Where("holder_token = ?", token).Count(&count).Error
	return count > 0, err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	var order Order
	err := r.db.WithContext(ctx).
		Preload("Tickets", func(db *gorm.DB) *gorm.DB {
			return db.Order("seat_id ASC")
		}).
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *repository) GetUserOrders(ctx context.Context, userID uuid.UUID, query OrderListQuery) ([]Order, int64, error) {
	var orders []Order
	var totalCount int64

	db := r.db.WithContext(ctx).Model(&Order{}).Where("user_id = ?", userID)
	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	offset := (query.Page - 1) * query.Limit
	err := db.Preload("Tickets").
		Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&orders).Error
	return orders, totalCount, err
}

func (r *repository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to Status, at time.Time) (bool, error) {
	updates := map[string]interface{}{
		"status": to,
	}
	if to == StatusCancelled {
		updates["cancelled_at"] = at
	} else {
		updates["refund_updated_at"] = at
	}

	result := r.db.WithContext(ctx).Model(&Order{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *repository) GetTicketByQR(ctx context.Context, qrPayload string) (*Ticket, error) {
	var ticket Ticket
	err := r.db.WithContext(ctx).Where("qr_payload = ?", qrPayload).First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *repository) GetTicket(ctx context.Context, orderID, ticketID uuid.UUID) (*Ticket, error) {
	var ticket Ticket
	err := r.db.WithContext(ctx).Where("id = ? AND order_id = ?", ticketID, orderID).First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *repository) MarkCheckedIn(ctx context.Context, ticketID uuid.UUID, at time.Time) (bool, error) {
	admitting := r.db.Model(&Order{}).
		Select("1").
		Where("orders.id = tickets.order_id AND orders.status IN ?", []Status{StatusPaid, StatusRefundRequested})

	result := r.db.WithContext(ctx).Model(&Ticket{}).
		Where("id = ? AND checked_in_at IS NULL", ticketID).
		Where("EXISTS (?)", admitting).
		Update("checked_in_at", at)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
