package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tabsplit/tabsplit-backend/internal/store"
	"github.com/tabsplit/tabsplit-backend/types"
)

// Ensure UserStore implements store.UserStore.
var _ store.UserStore = (*UserStore)(nil)

// UserStore implements store.UserStore on PostgreSQL.
type UserStore struct {
	db DB
}

// NewUserStore creates a new UserStore instance.
func NewUserStore(db DB) *UserStore {
	return &UserStore{db: db}
}

// CreateUser inserts a new user and returns the created row.
// A duplicate phone number maps to store.ErrDuplicatePhone.
func (s *UserStore) CreateUser(ctx context.Context, create *types.UserCreate) (*types.User, error) {
	query := `
		INSERT INTO users (name, phone)
		VALUES ($1, $2)
		RETURNING id, name, phone, created_at`

	user := &types.User{}
	err := s.db.QueryRow(ctx, query, create.Name, create.Phone).Scan(
		&user.ID,
		&user.Name,
		&user.Phone,
		&user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, store.ErrDuplicatePhone
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// GetUser retrieves a user by id.
func (s *UserStore) GetUser(ctx context.Context, id int64) (*types.User, error) {
	query := `
		SELECT id, name, phone, created_at
		FROM users
		WHERE id = $1`

	user := &types.User{}
	err := s.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Phone,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("error fetching user: %w", err)
	}

	return user, nil
}

// ListUsers returns all users, most recently created first.
func (s *UserStore) ListUsers(ctx context.Context) ([]types.User, error) {
	query := `
		SELECT id, name, phone, created_at
		FROM users
		ORDER BY created_at DESC`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	users := []types.User{}
	for rows.Next() {
		var user types.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Phone, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

// UpdateUser applies a partial update. Unset or empty fields keep their
// current value. A duplicate phone maps to store.ErrDuplicatePhone.
func (s *UserStore) UpdateUser(ctx context.Context, id int64, update *types.UserUpdate) (*types.User, error) {
	query := `
		UPDATE users
		SET name = COALESCE(NULLIF($1, ''), name),
			phone = COALESCE(NULLIF($2, ''), phone)
		WHERE id = $3
		RETURNING id, name, phone, created_at`

	var name, phone string
	if update.Name != nil {
		name = *update.Name
	}
	if update.Phone != nil {
		phone = *update.Phone
	}

	user := &types.User{}
	err := s.db.QueryRow(ctx, query, name, phone, id).Scan(
		&user.ID,
		&user.Name,
		&user.Phone,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, store.ErrDuplicatePhone
		}
		return nil, fmt.Errorf("error updating user: %w", err)
	}

	return user, nil
}

// DeleteUser removes a user. Users still referenced by bills or items fail
// the foreign-key check and surface as a generic store error.
func (s *UserStore) DeleteUser(ctx context.Context, id int64) error {
	result, err := s.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
