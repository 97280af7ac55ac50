package service

import (
	"context"

	"mayz/internal/models"
	"mayz/internal/repository"
	"mayz/internal/validation"
)

type MayService struct {
	mayRepo repository.MayRepository
}

func NewMayService(mayRepo repository.MayRepository) *MayService {
	return &MayService{mayRepo: mayRepo}
}

// Create publishes a new may owned by the current user.
func (s *MayService) Create(ctx context.Context, current *models.User, in models.MayCreate) (*models.May, error) {
	if err := validation.ValidateTitle(in.Title); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateContent(in.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	published := true
	if in.Published != nil {
		published = *in.Published
	}

	may := &models.May{
		Title:     in.Title,
		Content:   in.Content,
		Published: published,
		UserID:    current.ID,
	}
	if err := s.mayRepo.Create(ctx, may); err != nil {
		return nil, err
	}

	// Reload so the response carries the author projection.
	return s.mayRepo.GetByID(ctx, may.ID)
}

func (s *MayService) GetByID(ctx context.Context, id uint) (*models.May, error) {
	return s.mayRepo.GetByID(ctx, id)
}

func (s *MayService) List(ctx context.Context, filter repository.MayFilter) ([]models.May, error) {
	return s.mayRepo.List(ctx, filter)
}

// ListMine lists the current user's own mayz.
func (s *MayService) ListMine(ctx context.Context, current *models.User, limit, offset int) ([]models.May, error) {
	return s.mayRepo.List(ctx, repository.MayFilter{
		UserID: current.ID,
		Limit:  limit,
		Offset: offset,
	})
}

func (s *MayService) Latest(ctx context.Context) (*models.May, error) {
	return s.mayRepo.Latest(ctx)
}

// Update patches the may. Only its owner may touch it; a miss stays a miss
// even for non-owners so the handler order is 404 before 403.
func (s *MayService) Update(ctx context.Context, current *models.User, id uint, in models.MayUpdate) (*models.May, error) {
	may, err := s.mayRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if may.UserID != current.ID {
		return nil, models.NewForbiddenError("Not authorized to perform requested action")
	}

	updates := map[string]interface{}{}

	if in.Title != nil {
		if err := validation.ValidateTitle(*in.Title); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		updates["title"] = *in.Title
	}
	if in.Content != nil {
		if err := validation.ValidateContent(*in.Content); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		updates["content"] = *in.Content
	}
	if in.Published != nil {
		updates["published"] = *in.Published
	}

	if len(updates) > 0 {
		if err := s.mayRepo.Update(ctx, id, updates); err != nil {
			return nil, err
		}
	}

	return s.mayRepo.GetByID(ctx, id)
}

// Delete removes the may and its votes. Owner only.
func (s *MayService) Delete(ctx context.Context, current *models.User, id uint) error {
	may, err := s.mayRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if may.UserID != current.ID {
		return models.NewForbiddenError("Not authorized to perform requested action")
	}

	return s.mayRepo.Delete(ctx, id)
}
