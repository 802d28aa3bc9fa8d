package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// CreateUser inserts a new user and returns the stored record.
func (r *Repository) CreateUser(ctx context.Context, username, email, passwordHash string) (*User, error) {
	const q = `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, username, email, password_hash, avatar, created_at
	`

	var u User
	err := r.q.QueryRow(ctx, q, username, email, passwordHash).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Avatar, &u.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting user %s: %w", username, err)
	}
	return &u, nil
}

// GetUserByEmail returns the user with the given email, or nil, nil when absent.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return r.getUser(ctx, `SELECT id, username, email, password_hash, avatar, created_at FROM users WHERE email = $1`, email)
}

// GetUserByID returns the user with the given id, or nil, nil when absent.
func (r *Repository) GetUserByID(ctx context.Context, id int) (*User, error) {
	return r.getUser(ctx, `SELECT id, username, email, password_hash, avatar, created_at FROM users WHERE id = $1`, id)
}

// UserExists reports whether any user already has the given email or username.
func (r *Repository) UserExists(ctx context.Context, email, username string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 OR username = $2)`

	var exists bool
	if err := r.q.QueryRow(ctx, q, email, username).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking user existence: %w", err)
	}
	return exists, nil
}

// EmailInUse reports whether another user (excluding excludeID) has the email.
func (r *Repository) EmailInUse(ctx context.Context, email string, excludeID int) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND id <> $2)`

	var exists bool
	if err := r.q.QueryRow(ctx, q, email, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking email in use: %w", err)
	}
	return exists, nil
}

// UsernameInUse reports whether another user (excluding excludeID) has the username.
func (r *Repository) UsernameInUse(ctx context.Context, username string, excludeID int) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1 AND id <> $2)`

	var exists bool
	if err := r.q.QueryRow(ctx, q, username, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking username in use: %w", err)
	}
	return exists, nil
}

// UpdateUserProfile updates username and/or email; nil fields keep their
// current value. Returns nil, nil when the user does not exist.
func (r *Repository) UpdateUserProfile(ctx context.Context, id int, username, email *string) (*User, error) {
	const q = `
		UPDATE users
		SET username = COALESCE($2, username),
		    email    = COALESCE($3, email)
		WHERE id = $1
		RETURNING id, username, email, password_hash, avatar, created_at
	`

	var u User
	err := r.q.QueryRow(ctx, q, id, username, email).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Avatar, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("updating user %d: %w", id, err)
	}
	return &u, nil
}

// UpdateUserPassword replaces the stored password hash.
func (r *Repository) UpdateUserPassword(ctx context.Context, id int, passwordHash string) error {
	if _, err := r.q.Exec(ctx, `UPDATE users SET password_hash = $2 WHERE id = $1`, id, passwordHash); err != nil {
		return fmt.Errorf("updating password for user %d: %w", id, err)
	}
	return nil
}

// UpdateUserAvatar replaces the stored avatar data URL.
func (r *Repository) UpdateUserAvatar(ctx context.Context, id int, avatar string) error {
	if _, err := r.q.Exec(ctx, `UPDATE users SET avatar = $2 WHERE id = $1`, id, avatar); err != nil {
		return fmt.Errorf("updating avatar for user %d: %w", id, err)
	}
	return nil
}

func (r *Repository) getUser(ctx context.Context, q string, arg any) (*User, error) {
	var u User
	err := r.q.QueryRow(ctx, q, arg).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Avatar, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying user: %w", err)
	}
	return &u, nil
}
