package venues

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository interface for theater operations
type Repository interface {
	CreateTheater(ctx context.Context, theater *Theater) error
	GetTheaterByID(ctx context.Context, id uuid.UUID) (*Theater, error)
	ListTheaters(ctx context.Context) ([]Theater, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new theater repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateTheater(ctx context.Context, theater *Theater) error {
	return r.db.WithContext(ctx).Create(theater).Error
}

func (r *repository) GetTheaterByID(ctx context.Context, id uuid.UUID) (*Theater, error) {
	var theater Theater
	err := r.db.WithContext(ctx).First(&theater, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTheaterNotFound
		}
		return nil, err
	}
	return &theater, nil
}

func (r *repository) ListTheaters(ctx context.Context) ([]Theater, error) {
	var theaters []Theater
	err := r.db.WithContext(ctx).Order("name ASC").Find(&theaters).Error
	return theaters, err
}
