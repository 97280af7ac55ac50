package service

import (
	"context"

	"mayz/internal/models"
	"mayz/internal/repository"
)

// Function-field stubs let each test wire exactly the repo behavior it needs.

type stubUserRepo struct {
	getByID         func(ctx context.Context, id uint) (*models.User, error)
	getByIDWithMayz func(ctx context.Context, id uint, limit int) (*models.User, error)
	getByEmail      func(ctx context.Context, email string) (*models.User, error)
	getByUsername   func(ctx context.Context, username string) (*models.User, error)
	create          func(ctx context.Context, user *models.User) error
	update          func(ctx context.Context, id uint, updates map[string]interface{}) error
	deleteFn        func(ctx context.Context, id uint) error
	list            func(ctx context.Context, limit, offset int) ([]models.User, error)
	latest          func(ctx context.Context) (*models.User, error)
}

func (s *stubUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByID(ctx, id)
}

func (s *stubUserRepo) GetByIDWithMayz(ctx context.Context, id uint, limit int) (*models.User, error) {
	return s.getByIDWithMayz(ctx, id, limit)
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmail(ctx, email)
}

func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsername(ctx, username)
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) error {
	return s.create(ctx, user)
}

func (s *stubUserRepo) Update(ctx context.Context, id uint, updates map[string]interface{}) error {
	return s.update(ctx, id, updates)
}

func (s *stubUserRepo) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func (s *stubUserRepo) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.list(ctx, limit, offset)
}

func (s *stubUserRepo) Latest(ctx context.Context) (*models.User, error) {
	return s.latest(ctx)
}

type stubMayRepo struct {
	getByID  func(ctx context.Context, id uint) (*models.May, error)
	list     func(ctx context.Context, filter repository.MayFilter) ([]models.May, error)
	latest   func(ctx context.Context) (*models.May, error)
	create   func(ctx context.Context, may *models.May) error
	update   func(ctx context.Context, id uint, updates map[string]interface{}) error
	deleteFn func(ctx context.Context, id uint) error
}

func (s *stubMayRepo) GetByID(ctx context.Context, id uint) (*models.May, error) {
	return s.getByID(ctx, id)
}

func (s *stubMayRepo) List(ctx context.Context, filter repository.MayFilter) ([]models.May, error) {
	return s.list(ctx, filter)
}

func (s *stubMayRepo) Latest(ctx context.Context) (*models.May, error) {
	return s.latest(ctx)
}

func (s *stubMayRepo) Create(ctx context.Context, may *models.May) error {
	return s.create(ctx, may)
}

func (s *stubMayRepo) Update(ctx context.Context, id uint, updates map[string]interface{}) error {
	return s.update(ctx, id, updates)
}

func (s *stubMayRepo) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

type stubVoteRepo struct {
	get        func(ctx context.Context, userID, mayID uint) (*models.Vote, error)
	list       func(ctx context.Context) ([]models.Vote, error)
	cast       func(ctx context.Context, vote *models.Vote) error
	changeType func(ctx context.Context, userID, mayID uint, voteType models.VoteType) error
	deleteFn   func(ctx context.Context, userID, mayID uint) error
}

func (s *stubVoteRepo) Get(ctx context.Context, userID, mayID uint) (*models.Vote, error) {
	return s.get(ctx, userID, mayID)
}

func (s *stubVoteRepo) List(ctx context.Context) ([]models.Vote, error) {
	return s.list(ctx)
}

func (s *stubVoteRepo) Cast(ctx context.Context, vote *models.Vote) error {
	return s.cast(ctx, vote)
}

func (s *stubVoteRepo) ChangeType(ctx context.Context, userID, mayID uint, voteType models.VoteType) error {
	return s.changeType(ctx, userID, mayID, voteType)
}

func (s *stubVoteRepo) Delete(ctx context.Context, userID, mayID uint) error {
	return s.deleteFn(ctx, userID, mayID)
}
