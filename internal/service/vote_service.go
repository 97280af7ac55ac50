package service

import (
	"context"

	"mayz/internal/middleware"
	"mayz/internal/models"
	"mayz/internal/repository"
)

type VoteService struct {
	voteRepo repository.VoteRepository
	mayRepo  repository.MayRepository
}

func NewVoteService(voteRepo repository.VoteRepository, mayRepo repository.MayRepository) *VoteService {
	return &VoteService{voteRepo: voteRepo, mayRepo: mayRepo}
}

// Cast records the current user's vote on a may. Re-casting the same
// direction is a conflict; the opposite direction flips the stored vote in
// place.
func (s *VoteService) Cast(ctx context.Context, current *models.User, mayID uint, voteType models.VoteType) (*models.Vote, error) {
	if !voteType.Valid() {
		return nil, models.NewValidationError("vote_type must be 1 (up) or -1 (down)")
	}

	// The target must exist before any vote bookkeeping.
	if _, err := s.mayRepo.GetByID(ctx, mayID); err != nil {
		return nil, err
	}

	existing, err := s.voteRepo.Get(ctx, current.ID, mayID)
	if err != nil {
		return nil, err
	}

	switch {
	case existing == nil:
		vote := &models.Vote{UserID: current.ID, MayID: mayID, VoteType: voteType}
		if err := s.voteRepo.Cast(ctx, vote); err != nil {
			return nil, err
		}
		middleware.VotesCast.WithLabelValues(voteType.Direction()).Inc()
		return vote, nil

	case existing.VoteType == voteType:
		return nil, models.NewConflictError("Vote already cast")

	default:
		if err := s.voteRepo.ChangeType(ctx, current.ID, mayID, voteType); err != nil {
			return nil, err
		}
		middleware.VotesCast.WithLabelValues(voteType.Direction()).Inc()
		existing.VoteType = voteType
		return existing, nil
	}
}

// List returns every vote in the system, newest first.
func (s *VoteService) List(ctx context.Context) ([]models.Vote, error) {
	return s.voteRepo.List(ctx)
}

// Remove withdraws the current user's vote on a may.
func (s *VoteService) Remove(ctx context.Context, current *models.User, mayID uint) error {
	if _, err := s.mayRepo.GetByID(ctx, mayID); err != nil {
		return err
	}

	existing, err := s.voteRepo.Get(ctx, current.ID, mayID)
	if err != nil {
		return err
	}
	if existing == nil {
		return models.NewNotFoundError("Vote", mayID)
	}

	return s.voteRepo.Delete(ctx, current.ID, mayID)
}
