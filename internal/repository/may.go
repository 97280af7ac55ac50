package repository

import (
	"context"
	"errors"

	"mayz/internal/cache"
	"mayz/internal/models"

	"gorm.io/gorm"
)

// MayFilter narrows May listings.
type MayFilter struct {
	// Search matches against the title, case-insensitively.
	Search string
	// UserID restricts to a single author when non-zero.
	UserID uint
	Limit  int
	Offset int
}

// MayRepository defines persistence operations for mayz.
type MayRepository interface {
	GetByID(ctx context.Context, id uint) (*models.May, error)
	List(ctx context.Context, filter MayFilter) ([]models.May, error)
	Latest(ctx context.Context) (*models.May, error)
	Create(ctx context.Context, may *models.May) error
	Update(ctx context.Context, id uint, updates map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
}

type mayRepository struct {
	db *gorm.DB
}

// NewMayRepository returns a new MayRepository implementation.
func NewMayRepository(db *gorm.DB) MayRepository {
	return &mayRepository{db: db}
}

// mayCacheEntry flattens the preloaded owner next to the may. The User
// association is json:"-", so caching the may alone would drop the owner on
// the round-trip and warm reads would render without a user summary.
type mayCacheEntry struct {
	May   models.May         `json:"may"`
	Owner models.UserSummary `json:"owner"`
}

func (e *mayCacheEntry) restore() *models.May {
	may := e.May
	may.User = models.User{
		ID:       e.Owner.ID,
		Username: e.Owner.Username,
		Nickname: e.Owner.Nickname,
		Enabled:  e.Owner.Enabled,
	}
	return &may
}

func (r *mayRepository) GetByID(ctx context.Context, id uint) (*models.May, error) {
	var entry mayCacheEntry
	key := cache.MayKey(id)

	err := cache.Aside(ctx, key, &entry, cache.MayTTL, func() error {
		if err := r.db.WithContext(ctx).Preload("User").First(&entry.May, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("May", id)
			}
			return models.NewInternalError(err)
		}
		entry.Owner = entry.May.User.Summary()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry.restore(), nil
}

func (r *mayRepository) List(ctx context.Context, filter MayFilter) ([]models.May, error) {
	query := r.db.WithContext(ctx).Preload("User").Order("created_at DESC, id DESC")

	if filter.Search != "" {
		query = query.Where("title ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var mayz []models.May
	if err := query.Find(&mayz).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return mayz, nil
}

func (r *mayRepository) Latest(ctx context.Context) (*models.May, error) {
	var entry mayCacheEntry
	key := cache.LatestMayKey()

	err := cache.Aside(ctx, key, &entry, cache.LatestMayTTL, func() error {
		if err := r.db.WithContext(ctx).Preload("User").Order("created_at DESC, id DESC").First(&entry.May).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("May", "latest")
			}
			return models.NewInternalError(err)
		}
		entry.Owner = entry.May.User.Summary()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry.restore(), nil
}

func (r *mayRepository) Create(ctx context.Context, may *models.May) error {
	if err := r.db.WithContext(ctx).Omit("User", "Votes").Create(may).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.LatestMayKey())
	return nil
}

func (r *mayRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&models.May{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("May", id)
	}
	cache.InvalidateMay(ctx, id)
	return nil
}

// Delete removes the may and its votes in one transaction.
func (r *mayRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("may_id = ?", id).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.May{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return models.NewNotFoundError("May", id)
		}
		return nil
	})
	if err != nil {
		return asAppError(err)
	}
	cache.InvalidateMay(ctx, id)
	return nil
}
