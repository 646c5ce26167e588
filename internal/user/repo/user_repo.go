package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ovaphlow/pitchfork/service-fightlog-go/internal/user/entity"
)

var (
	ErrEmailTaken   = errors.New("email already registered")
	ErrUserNotFound = errors.New("user not found")
	ErrValueTooLong = errors.New("value too long for column")
)

const (
	uniqueViolation   = pq.ErrorCode("23505")
	stringDataTooLong = pq.ErrorCode("22001")
)

// UserRepo provides data access for the users table using sqlx.
type UserRepo struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{db: db} }

// Create inserts a user. The unique index on email makes a concurrent
// duplicate fail here rather than overwrite.
func (r *UserRepo) Create(ctx context.Context, email, passwordHash string) (*entity.User, error) {
	const q = `INSERT INTO users (email, password) VALUES ($1, $2)
		RETURNING id, email, password AS password_hash, created_at`
	var u entity.User
	if err := r.db.GetContext(ctx, &u, q, email, passwordHash); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case uniqueViolation:
				return nil, ErrEmailTaken
			case stringDataTooLong:
				return nil, ErrValueTooLong
			}
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &u, nil
}

// GetByEmail matches email exactly (case-sensitive) or returns ErrUserNotFound.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	const q = `SELECT id, email, password AS password_hash, created_at
		FROM users WHERE email = $1`
	var u entity.User
	if err := r.db.GetContext(ctx, &u, q, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("select user: %w", err)
	}
	return &u, nil
}
