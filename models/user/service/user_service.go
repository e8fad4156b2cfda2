package service

import (
	"context"
	"errors"
	"strings"

	apperrors "github.com/tabsplit/tabsplit-backend/errors"
	"github.com/tabsplit/tabsplit-backend/internal/store"
	"github.com/tabsplit/tabsplit-backend/logger"
	"github.com/tabsplit/tabsplit-backend/types"
)

// UserService handles user management operations.
type UserService struct {
	store store.UserStore
}

// NewUserService creates a new UserService.
func NewUserService(store store.UserStore) *UserService {
	return &UserService{store: store}
}

// CreateUser validates and creates a new user. Phone numbers are unique
// across all users; a duplicate maps to a conflict error.
func (s *UserService) CreateUser(ctx context.Context, create *types.UserCreate) (*types.User, error) {
	log := logger.GetLogger()

	create.Name = strings.TrimSpace(create.Name)
	create.Phone = strings.TrimSpace(create.Phone)
	if create.Name == "" {
		return nil, apperrors.ValidationFailed("invalid_user_data", "name is required")
	}
	if create.Phone == "" {
		return nil, apperrors.ValidationFailed("invalid_user_data", "phone is required")
	}

	user, err := s.store.CreateUser(ctx, create)
	if err != nil {
		if errors.Is(err, store.ErrDuplicatePhone) {
			log.Warnw("Attempt to create user with duplicate phone", "phone", logger.MaskPhone(create.Phone))
			return nil, apperrors.NewConflictError("Phone number already exists", "a user with this phone number is already registered")
		}
		log.Errorw("Failed to create user", "error", err)
		return nil, apperrors.NewDatabaseError(err)
	}

	log.Infow("Created user", "userId", user.ID)
	return user, nil
}

// GetUser retrieves a user by id.
func (s *UserService) GetUser(ctx context.Context, id int64) (*types.User, error) {
	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("User", id)
		}
		return nil, apperrors.NewDatabaseError(err)
	}
	return user, nil
}

// ListUsers returns all users, most recently created first.
func (s *UserService) ListUsers(ctx context.Context) ([]types.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return users, nil
}

// UpdateUser applies a partial update. Omitted or empty fields keep their
// current value.
func (s *UserService) UpdateUser(ctx context.Context, id int64, update *types.UserUpdate) (*types.User, error) {
	log := logger.GetLogger()

	user, err := s.store.UpdateUser(ctx, id, update)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return nil, apperrors.NotFound("User", id)
		case errors.Is(err, store.ErrDuplicatePhone):
			return nil, apperrors.NewConflictError("Phone number already exists", "a user with this phone number is already registered")
		default:
			log.Errorw("Failed to update user", "userId", id, "error", err)
			return nil, apperrors.NewDatabaseError(err)
		}
	}

	return user, nil
}

// DeleteUser removes a user. Users still referenced by a bill cannot be
// deleted and surface as a database error.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	log := logger.GetLogger()

	if err := s.store.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.NotFound("User", id)
		}
		log.Errorw("Failed to delete user", "userId", id, "error", err)
		return apperrors.NewDatabaseError(err)
	}

	log.Infow("Deleted user", "userId", id)
	return nil
}
