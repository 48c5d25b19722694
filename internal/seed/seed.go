// Package seed loads a small demo catalogue: one theater, one event on sale and a coupon.
package seed

import (
	"context"
	"fmt"
	"time"

	"boxoffice/internal/coupons"
	"boxoffice/internal/events"
	"boxoffice/internal/venues"
	"boxoffice/pkg/logger"

	"github.com/jonboulle/clockwork"
)

const (
	DemoTheaterName = "Main Hall"
	DemoEventName   = "Opening Night"
	DemoCouponCode  = "WELCOME10"
)

type Seeder struct {
	theaters venues.Service
	events   events.Service
	coupons  coupons.Service
	clock    clockwork.Clock
	log      *logger.Logger
}

func NewSeeder(theaters venues.Service, eventService events.Service, couponService coupons.Service, clock clockwork.Clock) *Seeder {
	return &Seeder{
		theaters: theaters,
		events:   eventService,
		coupons:  couponService,
		clock:    clock,
		log:      logger.GetDefault().WithComponent("seed"),
	}
}

// SeedAll seeds all demo data. It does nothing once any theater exists.
func (s *Seeder) SeedAll(ctx context.Context) error {
	existing, err := s.theaters.ListTheaters(ctx)
	if err != nil {
		return fmt.Errorf("failed to list theaters: %w", err)
	}
	if len(existing) > 0 {
		s.log.Info("Seed skipped, theaters already present", "count", len(existing))
		return nil
	}

	theater, err := s.theaters.CreateTheater(ctx, venues.CreateTheaterRequest{
		Name:              DemoTheaterName,
		RowStart:          "A",
		RowEnd:            "J",
		SeatsPerRow:       12,
		StagePosition:     venues.StageFront,
		PremiumRows:       []string{"A", "B"},
		PremiumMultiplier: 1.5,
	})
	if err != nil {
		return fmt.Errorf("failed to seed theater: %w", err)
	}

	startsAt := s.clock.Now().UTC().Add(7 * 24 * time.Hour).Truncate(time.Hour)
	event, err := s.events.CreateEvent(ctx, events.CreateEventRequest{
		TheaterID:     theater.ID.String(),
		Name:          DemoEventName,
		Description:   "Demo event seeded on boot",
		StartsAt:      startsAt,
		BasePrice:     500,
		Status:        string(events.StatusOnSale),
		DisabledSeats: []string{"J-1", "J-12"}, // camera positions
	}, "")
	if err != nil {
		return fmt.Errorf("failed to seed event: %w", err)
	}

	if _, err := s.coupons.CreateCoupon(ctx, coupons.CreateCouponRequest{
		Code:         DemoCouponCode,
		DiscountType: coupons.DiscountPercentage,
		Value:        10,
		MaxDiscount:  200,
	}); err != nil {
		return fmt.Errorf("failed to seed coupon: %w", err)
	}

	s.log.Info("Demo data seeded",
		"theater_id", theater.ID.String(),
		"event_id", event.ID.String(),
		"seats", event.TotalSeats,
		"coupon", DemoCouponCode,
	)
	return nil
}
