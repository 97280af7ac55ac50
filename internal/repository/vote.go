package repository

import (
	"context"
	"errors"

	"mayz/internal/cache"
	"mayz/internal/models"

	"gorm.io/gorm"
)

// VoteRepository defines persistence operations for votes. The stored likes
// counter on a may is the net score of its votes; every write here moves the
// counter in the same transaction as the vote row.
type VoteRepository interface {
	Get(ctx context.Context, userID, mayID uint) (*models.Vote, error)
	List(ctx context.Context) ([]models.Vote, error)
	Cast(ctx context.Context, vote *models.Vote) error
	ChangeType(ctx context.Context, userID, mayID uint, voteType models.VoteType) error
	Delete(ctx context.Context, userID, mayID uint) error
}

type voteRepository struct {
	db *gorm.DB
}

// NewVoteRepository returns a new VoteRepository implementation.
func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

func (r *voteRepository) Get(ctx context.Context, userID, mayID uint) (*models.Vote, error) {
	var vote models.Vote
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND may_id = ?", userID, mayID).
		First(&vote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &vote, nil
}

func (r *voteRepository) List(ctx context.Context) ([]models.Vote, error) {
	var votes []models.Vote
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&votes).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return votes, nil
}

func (r *voteRepository) Cast(ctx context.Context, vote *models.Vote) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("User", "May").Create(vote).Error; err != nil {
			if isUniqueConstraintError(err) {
				// Lost a race with a concurrent identical cast.
				return models.NewConflictError("Vote already exists")
			}
			return err
		}
		return adjustLikes(tx, vote.MayID, int(vote.VoteType))
	})
	if err != nil {
		return asAppError(err)
	}
	cache.InvalidateMay(ctx, vote.MayID)
	return nil
}

func (r *voteRepository) ChangeType(ctx context.Context, userID, mayID uint, voteType models.VoteType) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Vote{}).
			Where("user_id = ? AND may_id = ?", userID, mayID).
			Update("vote_type", voteType)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return models.NewNotFoundError("Vote", mayID)
		}
		// Flipping direction moves the net score by twice the new value.
		return adjustLikes(tx, mayID, 2*int(voteType))
	})
	if err != nil {
		return asAppError(err)
	}
	cache.InvalidateMay(ctx, mayID)
	return nil
}

func (r *voteRepository) Delete(ctx context.Context, userID, mayID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var vote models.Vote
		if err := tx.Where("user_id = ? AND may_id = ?", userID, mayID).First(&vote).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Vote", mayID)
			}
			return err
		}
		if err := tx.Where("user_id = ? AND may_id = ?", userID, mayID).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		return adjustLikes(tx, mayID, -int(vote.VoteType))
	})
	if err != nil {
		return asAppError(err)
	}
	cache.InvalidateMay(ctx, mayID)
	return nil
}

func adjustLikes(tx *gorm.DB, mayID uint, delta int) error {
	return tx.Model(&models.May{}).Where("id = ?", mayID).
		Update("likes", gorm.Expr("likes + ?", delta)).Error
}

func asAppError(err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return models.NewInternalError(err)
}
