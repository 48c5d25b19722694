package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds the seat table constraints the hold protocol relies on
func MigrateConstraints(db *gorm.DB) error {
	// Hold metadata exists exactly when a seat is HELD
	err := db.Exec(`
		ALTER TABLE event_seats
		DROP CONSTRAINT IF EXISTS chk_event_seats_hold_metadata;
	`).Error
	if err != nil {
		return err
	}

	err = db.Exec(`
		ALTER TABLE event_seats
		ADD CONSTRAINT chk_event_seats_hold_metadata CHECK (
			(status = 'HELD' AND holder_token IS NOT NULL AND hold_expires_at IS NOT NULL)
			OR (status <> 'HELD' AND holder_token IS NULL AND hold_expires_at IS NULL)
		);
	`).Error
	if err != nil {
		return err
	}

	// Partial index for the reaper's expired-hold scan
	return db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_event_seats_held_expiry
		ON event_seats (hold_expires_at)
		WHERE status = 'HELD';
	`).Error
}
