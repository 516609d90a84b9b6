package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"go-cms-app/internal/auth"
)

// SQLUserRepository provides access to user accounts and credential
// verification.
type SQLUserRepository struct {
	db *sqlx.DB
}

// NewSQLUserRepository creates a new SQLUserRepository.
func NewSQLUserRepository(db *sqlx.DB) *SQLUserRepository {
	return &SQLUserRepository{db: db}
}

const selectUserColumns = `SELECT id, fullname, username, email, role FROM users`

// GetUserByID retrieves a user by id.
func (r *SQLUserRepository) GetUserByID(ctx context.Context, id int64) (*User, error) {
	var user User
	if err := r.db.GetContext(ctx, &user, selectUserColumns+` WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username.
func (r *SQLUserRepository) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	if err := r.db.GetContext(ctx, &user, selectUserColumns+` WHERE username = ?`, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user %q: %w", username, err)
	}
	return &user, nil
}

// ListUsers retrieves the name and username of every account, for the
// back-office author picker.
func (r *SQLUserRepository) ListUsers(ctx context.Context) ([]Author, error) {
	var users []Author
	query := `SELECT fullname AS author_name, username AS author_username FROM users ORDER BY username`
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// VerifyCredentials checks a username-or-email identifier against its salted
// scrypt hash. It returns nil without an error when the identifier is unknown
// or the password does not match, so callers cannot tell the two cases apart.
func (r *SQLUserRepository) VerifyCredentials(ctx context.Context, identifier, password string) (*User, error) {
	var row struct {
		User
		Salt []byte `db:"salt"`
		Hash []byte `db:"hash"`
	}
	query := `SELECT id, fullname, username, email, role, salt, hash FROM users WHERE username = ? OR email = ?`
	if err := r.db.GetContext(ctx, &row, query, identifier, identifier); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up credentials: %w", err)
	}

	ok, err := auth.VerifyPassword(password, row.Salt, row.Hash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &row.User, nil
}

// CreateUser inserts a new account with freshly hashed credentials and
// returns its id.
func (r *SQLUserRepository) CreateUser(ctx context.Context, user User, password string) (int64, error) {
	salt, hash, err := auth.HashPassword(password)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (fullname, username, email, role, salt, hash) VALUES (?, ?, ?, ?, ?, ?)`,
		user.Name, user.Username, user.Email, user.Role, salt, hash)
	if err != nil {
		return 0, fmt.Errorf("failed to insert user %q: %w", user.Username, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get new user id: %w", err)
	}
	return id, nil
}

// CountUsers reports how many accounts exist. Used by the startup bootstrap.
func (r *SQLUserRepository) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}
