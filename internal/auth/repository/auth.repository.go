package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"notesapp/pkg/logger"
	"notesapp/store"

	"github.com/lib/pq"
)

const queryTimeout = 5 * time.Second

// ErrEmailTaken maps the unique constraint on users.email. The service
// checks first, but the constraint is the real guarantee under
// concurrent registrations.
var ErrEmailTaken = errors.New("email already in use")

const uniqueViolation = "23505"

type AuthRepository struct {
	DB *sql.DB
}

func NewAuthRepository(db *sql.DB) *AuthRepository {
	return &AuthRepository{DB: db}
}

// GetByEmail returns the user for an email, or nil when none exists.
func (r *AuthRepository) GetByEmail(ctx context.Context, email string) (*store.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var u store.User
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, username, email, hashed_password FROM users WHERE email = $1`,
		email).Scan(&u.ID, &u.Username, &u.Email, &u.HashedPassword)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to get user by email: %v", err)
		return nil, err
	}
	return &u, nil
}

func (r *AuthRepository) Create(ctx context.Context, username, email, hashedPassword string) (*store.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var u store.User
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO users (username, email, hashed_password) VALUES ($1, $2, $3) RETURNING id, username, email`,
		username, email, hashedPassword).Scan(&u.ID, &u.Username, &u.Email)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil, ErrEmailTaken
		}
		logger.Sugar.Errorf("Failed to create user: %v", err)
		return nil, err
	}
	return &u, nil
}
