// Package service implements the business rules between handlers and the
// data access layer.
package service

import (
	"context"

	"mayz/internal/auth"
	"mayz/internal/models"
	"mayz/internal/repository"
	"mayz/internal/validation"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Signup registers a new account. Username and email checks here are
// advisory; the unique indexes have the final word and surface as Conflict.
func (s *UserService) Signup(ctx context.Context, in models.UserCreate) (*models.User, error) {
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateNickname(in.Nickname); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if existing, err := s.userRepo.GetByUsername(ctx, in.Username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewConflictError("Username already taken")
	}
	if existing, err := s.userRepo.GetByEmail(ctx, in.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewConflictError("Email already registered")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Nickname: in.Nickname,
		Password: hash,
		Enabled:  true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetWithMayz returns the user together with their most recent mayz.
func (s *UserService) GetWithMayz(ctx context.Context, id uint, limit int) (*models.User, error) {
	return s.userRepo.GetByIDWithMayz(ctx, id, limit)
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.userRepo.GetByUsername(ctx, username)
}

func (s *UserService) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

func (s *UserService) Latest(ctx context.Context) (*models.User, error) {
	return s.userRepo.Latest(ctx)
}

// Update patches the target account. Only the owner may update themselves,
// and re-validated unique fields stay advisory until the store confirms.
func (s *UserService) Update(ctx context.Context, current *models.User, targetID uint, in models.UserUpdate) (*models.User, error) {
	if current.ID != targetID {
		return nil, models.NewForbiddenError("Not authorized to perform requested action")
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}

	if in.Username != nil && *in.Username != target.Username {
		if err := validation.ValidateUsername(*in.Username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		if existing, err := s.userRepo.GetByUsername(ctx, *in.Username); err != nil {
			return nil, err
		} else if existing != nil {
			return nil, models.NewConflictError("Username already taken")
		}
		updates["username"] = *in.Username
	}
	if in.Email != nil && *in.Email != target.Email {
		if err := validation.ValidateEmail(*in.Email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		if existing, err := s.userRepo.GetByEmail(ctx, *in.Email); err != nil {
			return nil, err
		} else if existing != nil {
			return nil, models.NewConflictError("Email already registered")
		}
		updates["email"] = *in.Email
	}
	if in.Nickname != nil {
		if err := validation.ValidateNickname(*in.Nickname); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		updates["nickname"] = *in.Nickname
	}
	if in.Password != nil {
		if err := validation.ValidatePassword(*in.Password); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		updates["password"] = hash
	}
	if in.Enabled != nil {
		updates["enabled"] = *in.Enabled
	}

	if len(updates) > 0 {
		if err := s.userRepo.Update(ctx, targetID, updates); err != nil {
			return nil, err
		}
	}

	return s.userRepo.GetByID(ctx, targetID)
}

// Delete removes the target account. Only the owner may delete themselves.
func (s *UserService) Delete(ctx context.Context, current *models.User, targetID uint) error {
	if current.ID != targetID {
		return models.NewForbiddenError("Not authorized to perform requested action")
	}

	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}

	return s.userRepo.Delete(ctx, targetID)
}
