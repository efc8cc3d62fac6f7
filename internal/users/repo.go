package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"academia/internal/model"
)

// Repository persists user accounts.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

type account struct {
	model.User
	PasswordHash string
}

// GetByID returns the user with id, or nil when absent.
func (r *Repository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, role, COALESCE(avatar, '')
		FROM users WHERE id = ?
	`, id).Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Avatar)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &u, nil
}

func (r *Repository) getByEmail(ctx context.Context, email string) (*account, error) {
	var a account
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, role, COALESCE(avatar, '')
		FROM users WHERE email = ?
	`, email).Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.Role, &a.Avatar)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &a, nil
}

func (r *Repository) insert(ctx context.Context, a account) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO users (name, email, password_hash, role, avatar)
		VALUES (?, ?, ?, ?, ?)
	`, a.Name, a.Email, a.PasswordHash, a.Role, a.Avatar)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *Repository) updateProfile(ctx context.Context, id int64, name, avatar string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET name = ?, avatar = ? WHERE id = ?`, name, avatar, id)
	if err != nil {
		return fmt.Errorf("update user %d: %w", id, err)
	}
	return nil
}
