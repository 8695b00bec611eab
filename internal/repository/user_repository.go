package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/avelina-cafes/cafewifi/internal/model"
)

// UserRepo encapsulates all database queries related to accounts.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo constructs a UserRepo with the provided DB handle.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// NormalizeEmail lowercases and trims an email for storage and lookup,
// so "Alice@X.com " and "alice@x.com" resolve to the same account.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create inserts a new user and returns it with its generated ID. The
// duplicate-email check and the insert run in one transaction so two
// racing signups with the same email cannot both succeed; the UNIQUE
// constraint backs the check and also surfaces as ErrEmailExists.
// passwordHash must already be a bcrypt digest, never a raw password.
func (r *UserRepo) Create(ctx context.Context, email, passwordHash, name string) (*model.User, error) {
	email = NormalizeEmail(email)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM users WHERE email = ? LIMIT 1`, email).Scan(&exists)
	if err == nil {
		err = ErrEmailExists
		return nil, err
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	var res sql.Result
	res, err = tx.ExecContext(ctx,
		`INSERT INTO users (email, password_hash, name) VALUES (?,?,?)`,
		email, passwordHash, name)
	if err != nil {
		if isUniqueViolation(err) {
			err = ErrEmailExists
		}
		return nil, err
	}
	var id int64
	id, err = res.LastInsertId()
	if err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return &model.User{ID: id, Email: email, PasswordHash: passwordHash, Name: name}, nil
}

// GetByEmail fetches a user by normalized email. Returns ErrUserNotFound
// when no account uses the address.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, name FROM users WHERE email = ? LIMIT 1`,
		NormalizeEmail(email)).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByID fetches a user by id. Returns ErrUserNotFound when absent.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, name FROM users WHERE id = ? LIMIT 1`,
		id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// UpdateName changes the display name of an account. The email and the
// password hash are not touched by this path.
func (r *UserRepo) UpdateName(ctx context.Context, id int64, name string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}
