package events

import (
	"context"
	"fmt"
	"strings"

	"boxoffice/internal/shared/constants"
	"boxoffice/internal/venues"
	"boxoffice/pkg/cache"
	"boxoffice/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LayoutSource resolves a theater's seat grid
type LayoutSource interface {
	GetLayout(ctx context.Context, theaterID uuid.UUID) (*venues.LayoutResponse, error)
}

// SeatProvisioner writes the initial AVAILABLE rows of an event's seat table
type SeatProvisioner interface {
	ProvisionSeats(tx *gorm.DB, eventID uuid.UUID, defs []venues.SeatDefinition) error
}

type Service interface {
	CreateEvent(ctx context.Context, req CreateEventRequest, createdBy string) (*Event, error)
	GetEvent(ctx context.Context, id uuid.UUID) (*Event, error)
	ListEvents(ctx context.Context, query EventListQuery) (*PaginatedEvents, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Event, error)
}

type service struct {
	repo        Repository
	layouts     LayoutSource
	provisioner SeatProvisioner
	cache       cache.Service
	logger      *logger.Logger
}

func NewService(repo Repository, layouts LayoutSource, provisioner SeatProvisioner, cacheService cache.Service) Service {
	return &service{
		repo:        repo,
		layouts:     layouts,
		provisioner: provisioner,
		cache:       cacheService,
		logger:      logger.GetDefault().WithComponent("events"),
	}
}

// CreateEvent stores the event together with one AVAILABLE seat per layout cell,
// minus the event's disabled seats.
func (s *service) CreateEvent(ctx context.Context, req CreateEventRequest, createdBy string) (*Event, error) {
	theaterID, err := uuid.Parse(req.TheaterID)
	if err != nil {
		return nil, fmt.Errorf("invalid theater id: %w", err)
	}

	layout, err := s.layouts.GetLayout(ctx, theaterID)
	if err != nil {
		return nil, err
	}

	disabled := make(map[string]bool, len(req.DisabledSeats))
	for _, seatID := range req.DisabledSeats {
		disabled[strings.ToUpper(strings.TrimSpace(seatID))] = true
	}

	defs := make([]venues.SeatDefinition, 0, len(layout.Seats))
	for _, def := range layout.Seats {
		if !disabled[def.SeatID] {
			defs = append(defs, def)
		}
	}
	if len(defs) == 0 {
		return nil, ErrNoSeats
	}

	status := StatusDraft
	if req.Status != "" {
		status = Status(req.Status)
	}

	event := &Event{
		TheaterID:   theaterID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		StartsAt:    req.StartsAt.UTC(),
		BasePrice:   req.BasePrice,
		Status:      status,
		TotalSeats:  len(defs),
	}
	if creator, err := uuid.Parse(createdBy); err == nil {
		event.CreatedBy = &creator
	}

	err = s.repo.CreateWithSeats(ctx, event, func(tx *gorm.DB) error {
		return s.provisioner.ProvisionSeats(tx, event.ID, defs)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	s.logger.InfoWithContext(ctx, "Event Created", map[string]interface{}{
		"event_id":   event.ID.String(),
		"theater_id": theaterID.String(),
		"seats":      len(defs),
	})
	_ = s.cache.DeletePattern(ctx, constants.CACHE_KEY_EVENTS_LIST+"*")
	return event, nil
}

func (s *service) GetEvent(ctx context.Context, id uuid.UUID) (*Event, error) {
	var event Event
	err := s.cache.GetOrSet(ctx, constants.BuildEventDetailKey(id.String()), constants.TTL_EVENT_DETAIL, func() (interface{}, error) {
		return s.repo.GetByID(ctx, id)
	}, &event)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *service) ListEvents(ctx context.Context, query EventListQuery) (*PaginatedEvents, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit < 1 {
		query.Limit = 20
	}

	var result PaginatedEvents
	key := constants.BuildEventListKey(query.Page, query.Limit, query.Status, query.Search)
	err := s.cache.GetOrSet(ctx, key, constants.TTL_EVENT_LIST, func() (interface{}, error) {
		events, total, err := s.repo.GetAll(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("failed to list events: %w", err)
		}

		totalPages := int(total) / query.Limit
		if int(total)%query.Limit != 0 {
			totalPages++
		}

		return &PaginatedEvents{
			Events:     events,
			TotalCount: total,
			Page:       query.Page,
			Limit:      query.Limit,
			TotalPages: totalPages,
		}, nil
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateStatus opens or closes sales. Closing does not touch existing holds; they expire normally.
func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Event, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, constants.BuildEventDetailKey(id.String()))
	_ = s.cache.DeletePattern(ctx, constants.CACHE_KEY_EVENTS_LIST+"*")

	return s.repo.GetByID(ctx, id)
}
