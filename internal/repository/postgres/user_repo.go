package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/BitSparkCode/online-shop-api/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type postgresUserRepository struct {
	db  *sqlx.DB
	log *logrus.Logger
}

func NewPostgresUserRepository(db *sqlx.DB, logger *logrus.Logger) domain.UserRepository {
	return &postgresUserRepository{
		db:  db,
		log: logger,
	}
}

func (r *postgresUserRepository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `INSERT INTO users (username, password_hash, role) VALUES ($1, $2, $3) RETURNING id`

	created := *user
	err := r.db.QueryRowxContext(ctx, query, user.Username, user.PasswordHash, user.Role).Scan(&created.ID)
	if err != nil {
		r.log.Errorf("Repository: Failed to create user '%s': %v", user.Username, err)
		return nil, fmt.Errorf("could not create user: %w", err)
	}

	r.log.Infof("Repository: User created successfully with ID: %d, Username: %s", created.ID, created.Username)
	return &created, nil
}

func (r *postgresUserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
        SELECT id, username, password_hash, role
        FROM users
        WHERE username = $1
        ORDER BY id ASC
        LIMIT 1`

	user := &domain.User{}
	if err := r.db.GetContext(ctx, user, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Repository: User with username %s not found", username)
			return nil, fmt.Errorf("user %q: %w", username, domain.ErrNotFound)
		}
		r.log.Errorf("Repository: Failed to get user by username %s: %v", username, err)
		return nil, fmt.Errorf("could not get user by username: %w", err)
	}

	r.log.Debugf("Repository: User found by username %s (ID: %d)", username, user.ID)
	return user, nil
}

func (r *postgresUserRepository) UpdatePassword(ctx context.Context, username, passwordHash string) (int64, error) {
	query := `UPDATE users SET password_hash = $1 WHERE username = $2`

	result, err := r.db.ExecContext(ctx, query, passwordHash, username)
	if err != nil {
		r.log.Errorf("Repository: Failed to update password for %s: %v", username, err)
		return 0, fmt.Errorf("could not update password: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("could not confirm password update: %w", err)
	}

	r.log.Infof("Repository: Password updated for username %s (%d rows affected)", username, rowsAffected)
	return rowsAffected, nil
}
