package database

import (
	"boxoffice/internal/coupons"
	"boxoffice/internal/events"
	"boxoffice/internal/orders"
	"boxoffice/internal/seats"
	"boxoffice/internal/venues"

	"gorm.io/gorm"
)

// Migrate creates or updates every table the service owns, then applies
// the Postgres-only constraints AutoMigrate cannot express.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&venues.Theater{},
		&events.Event{},
		&seats.EventSeat{},
		&orders.Order{},
		&orders.Ticket{},
		&coupons.Coupon{},
	); err != nil {
		return err
	}
	return MigrateConstraints(db)
}
