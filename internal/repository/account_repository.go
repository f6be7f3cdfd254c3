package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/iliyamo/cinema-ticketing/internal/utils"
)

// Account roles as stored in the accounts.role column.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Account mirrors the 'accounts' table. PasswordHash is a bcrypt digest;
// the plain password never reaches the store.
type Account struct {
	ID           uint64
	Username     string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

type AccountRepo struct{ DB *sql.DB }

func NewAccountRepo(db *sql.DB) *AccountRepo { return &AccountRepo{DB: db} }

var ErrUsernameTaken = errors.New("username already exists")

var ErrAccountNotFound = errors.New("account not found")

// Create hashes the password and inserts the account, returning its ID.
// Usernames are matched exactly (case-sensitive); only surrounding
// whitespace is trimmed.
func (r *AccountRepo) Create(ctx context.Context, username, password, role string, cost int) (uint64, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return 0, fmt.Errorf("%w: username must not be empty", ErrValidation)
	}
	if password == "" {
		return 0, fmt.Errorf("%w: password must not be empty", ErrValidation)
	}
	if role != RoleUser && role != RoleAdmin {
		return 0, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO accounts (username, password_hash, role) VALUES (?,?,?)",
		username, hash, role)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return 0, ErrUsernameTaken
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByUsername fetches an account by its exact username.
func (r *AccountRepo) GetByUsername(ctx context.Context, username string) (Account, error) {
	var a Account
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,username,password_hash,role,created_at FROM accounts WHERE username=? LIMIT 1",
		strings.TrimSpace(username)).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.Role, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Account{}, ErrAccountNotFound
	}
	return a, err
}

// GetByID fetches an account by id.
func (r *AccountRepo) GetByID(ctx context.Context, id uint64) (Account, error) {
	var a Account
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,username,password_hash,role,created_at FROM accounts WHERE id=? LIMIT 1",
		id).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.Role, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Account{}, ErrAccountNotFound
	}
	return a, err
}

// Role returns just the role column for an account.
func (r *AccountRepo) Role(ctx context.Context, id uint64) (string, error) {
	var role string
	err := r.DB.QueryRowContext(ctx,
		"SELECT role FROM accounts WHERE id=? LIMIT 1", id).Scan(&role)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrAccountNotFound
	}
	return role, err
}
