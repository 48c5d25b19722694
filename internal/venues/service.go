package venues

import (
	"context"
	"fmt"
	"strings"

	"boxoffice/internal/shared/constants"
	"boxoffice/pkg/cache"

	"github.com/google/uuid"
)

type Service interface {
	CreateTheater(ctx context.Context, req CreateTheaterRequest) (*Theater, error)
	GetTheater(ctx context.Context, id uuid.UUID) (*Theater, error)
	ListTheaters(ctx context.Context) ([]Theater, error)
	GetLayout(ctx context.Context, id uuid.UUID) (*LayoutResponse, error)
}

type service struct {
	repo  Repository
	cache cache.Service
}

func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{
		repo:  repo,
		cache: cacheService,
	}
}

func (s *service) CreateTheater(ctx context.Context, req CreateTheaterRequest) (*Theater, error) {
	theater := &Theater{
		Name:              strings.TrimSpace(req.Name),
		RowStart:          strings.ToUpper(strings.TrimSpace(req.RowStart)),
		RowEnd:            strings.ToUpper(strings.TrimSpace(req.RowEnd)),
		SeatsPerRow:       req.SeatsPerRow,
		StagePosition:     req.StagePosition,
		PremiumRows:       strings.ToUpper(strings.Join(req.PremiumRows, ",")),
		PremiumMultiplier: req.PremiumMultiplier,
	}
	if theater.StagePosition == "" {
		theater.StagePosition = StageFront
	}
	if theater.PremiumMultiplier == 0 {
		theater.PremiumMultiplier = 1
	}

	// Reject grids that cannot be expanded before anything is stored
	if _, err := Layout(theater); err != nil {
		return nil, err
	}

	if err := s.repo.CreateTheater(ctx, theater); err != nil {
		return nil, fmt.Errorf("failed to create theater: %w", err)
	}
	return theater, nil
}

func (s *service) GetTheater(ctx context.Context, id uuid.UUID) (*Theater, error) {
	return s.repo.GetTheaterByID(ctx, id)
}

func (s *service) ListTheaters(ctx context.Context) ([]Theater, error) {
	return s.repo.ListTheaters(ctx)
}

// GetLayout returns the expanded grid. Theaters are immutable once created so the result caches well.
func (s *service) GetLayout(ctx context.Context, id uuid.UUID) (*LayoutResponse, error) {
	var layout LayoutResponse
	err := s.cache.GetOrSet(ctx, constants.BuildTheaterLayoutKey(id.String()), constants.TTL_THEATER_LAYOUT, func() (interface{}, error) {
		theater, err := s.repo.GetTheaterByID(ctx, id)
		if err != nil {
			return nil, err
		}
		seats, err := Layout(theater)
		if err != nil {
			return nil, err
		}
		return &LayoutResponse{Theater: theater, TotalSeats: len(seats), Seats: seats}, nil
	}, &layout)
	if err != nil {
		return nil, err
	}
	return &layout, nil
}
