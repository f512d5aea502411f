package services

import (
	"context"
	"strings"

	"github.com/junyi/vocabflash/internal/elo"
	"github.com/junyi/vocabflash/internal/errors"
	"github.com/junyi/vocabflash/internal/logger"
	"github.com/junyi/vocabflash/internal/models"
	"github.com/junyi/vocabflash/internal/repository"
)

// UserService handles learner profile business logic
type UserService interface {
	Create(ctx context.Context, name, level string) (*models.User, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Delete(ctx context.Context, id int64) error
}

type userService struct {
	users repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) Create(ctx context.Context, name, level string) (*models.User, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating user: name=%s, level=%s", name, level)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.NewValidationError("name", "must not be empty")
	}

	existing, err := s.users.GetByName(ctx, name)
	if err != nil {
		log.Error("failed to check existing user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if existing != nil {
		return nil, errors.NewConflictError("a user with that name already exists")
	}

	id, err := s.users.Insert(ctx, models.User{
		Name:   name,
		Level:  level,
		Rating: elo.InitialRating,
	})
	if err != nil {
		log.Error("failed to insert user: %v", err)
		return nil, errors.NewInternalError(err)
	}

	user, err := s.users.Get(ctx, id)
	if err != nil {
		log.Error("failed to load created user: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("user created: id=%d, name=%s", id, name)
	return user, nil
}

func (s *userService) Get(ctx context.Context, id int64) (*models.User, error) {
	log := logger.FromContext(ctx)

	user, err := s.users.Get(ctx, id)
	if err != nil {
		log.Error("failed to get user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("user", id)
	}
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)

	users, err := s.users.List(ctx)
	if err != nil {
		log.Error("failed to list users: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return users, nil
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting user: id=%d", id)

	user, err := s.users.Get(ctx, id)
	if err != nil {
		log.Error("failed to get user: %v", err)
		return errors.NewInternalError(err)
	}
	if user == nil {
		return errors.NewNotFoundError("user", id)
	}

	if err := s.users.Delete(ctx, id); err != nil {
		log.Error("failed to delete user: %v", err)
		return errors.NewInternalError(err)
	}

	log.Info("user deleted: id=%d, name=%s", id, user.Name)
	return nil
}
