package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/junyi/vocabflash/internal/logger"
	"github.com/junyi/vocabflash/internal/models"
	"github.com/junyi/vocabflash/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository implementation
func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Insert(ctx context.Context, u models.User) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("inserting user: name=%s, level=%s", u.Name, u.Level)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO users (name, level, rating)
VALUES (?, ?, ?)
`, u.Name, u.Level, u.Rating)
	if err != nil {
		log.Error("failed to insert user: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get user id: %v", err)
		return 0, err
	}
	log.Debug("user inserted: id=%d", id)
	return id, nil
}

func (r *userRepository) Get(ctx context.Context, id int64) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("getting user: id=%d", id)

	var u models.User
	err := r.db.QueryRowContext(ctx, `
SELECT id, name, level, rating, created_at
FROM users
WHERE id = ?
`, id).Scan(&u.ID, &u.Name, &u.Level, &u.Rating, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get user: %v", err)
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByName(ctx context.Context, name string) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("getting user by name: %s", name)

	var u models.User
	err := r.db.QueryRowContext(ctx, `
SELECT id, name, level, rating, created_at
FROM users
WHERE name = ?
`, name).Scan(&u.ID, &u.Name, &u.Level, &u.Rating, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get user by name: %v", err)
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("listing users")

	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, level, rating, created_at
FROM users
ORDER BY created_at ASC
`)
	if err != nil {
		log.Error("failed to list users: %v", err)
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Level, &u.Rating, &u.CreatedAt); err != nil {
			log.Error("failed to scan user row: %v", err)
			return nil, err
		}
		users = append(users, u)
	}
	log.Debug("found %d users", len(users))
	return users, rows.Err()
}

func (r *userRepository) UpdateRating(ctx context.Context, id int64, rating float64) error {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("updating user rating: id=%d, rating=%.1f", id, rating)

	_, err := r.db.ExecContext(ctx, `UPDATE users SET rating = ? WHERE id = ?`, rating, id)
	if err != nil {
		log.Error("failed to update user rating: %v", err)
	}
	return err
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("deleting user: id=%d", id)

	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete user: %v", err)
	}
	return err
}
