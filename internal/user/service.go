package user

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/ovaphlow/pitchfork/service-fightlog-go/internal/apperr"
	"github.com/ovaphlow/pitchfork/service-fightlog-go/internal/auth"
	"github.com/ovaphlow/pitchfork/service-fightlog-go/internal/user/entity"
	userrepo "github.com/ovaphlow/pitchfork/service-fightlog-go/internal/user/repo"
)

// PasswordHasher defines minimal hashing interface (abstract so we can swap to argon2 later).
type PasswordHasher interface {
	Hash(pw string) (string, error)
	Verify(hash, pw string) bool
}

// BcryptHasher implementation. Salted per call, so equal passwords hash differently.
type BcryptHasher struct{ Cost int }

func (b BcryptHasher) Hash(pw string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (b BcryptHasher) Verify(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// Store is the credential store.
type Store interface {
	Create(ctx context.Context, email, passwordHash string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}

// TokenIssuer is satisfied by *auth.TokenService.
type TokenIssuer interface {
	Issue(id auth.Identity) (string, error)
}

// UserService orchestrates registration and login.
type UserService struct {
	store  Store
	hasher PasswordHasher
	tokens TokenIssuer
	// compared against when the email is unknown so both failure paths cost one bcrypt run
	dummyHash string
}

func NewUserService(store Store, hasher PasswordHasher, tokens TokenIssuer) *UserService {
	if hasher == nil {
		hasher = BcryptHasher{Cost: 10}
	}
	dummy, _ := hasher.Hash("fight-tracker-dummy-password")
	return &UserService{store: store, hasher: hasher, tokens: tokens, dummyHash: dummy}
}

var (
	ErrEmailTaken     = apperr.New(apperr.ErrConflict, "Email already registered")
	ErrBadCredentials = apperr.New(apperr.ErrInvalidCredentials, "Invalid credentials")
	ErrPasswordLong   = apperr.New(apperr.ErrInvalidInput, "Password must be at most 72 bytes")
	ErrEmailLong      = apperr.New(apperr.ErrInvalidInput, "Email must be at most 255 characters")
)

// Register hashes password and stores a new user.
func (s *UserService) Register(ctx context.Context, email, password string) (*entity.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, ErrPasswordLong
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u, err := s.store.Create(ctx, email, hash)
	if err != nil {
		switch {
		case errors.Is(err, userrepo.ErrEmailTaken):
			return nil, ErrEmailTaken
		case errors.Is(err, userrepo.ErrValueTooLong):
			return nil, ErrEmailLong
		}
		return nil, err
	}
	return u, nil
}

// Login verifies credentials and issues a bearer token. Unknown email and
// wrong password both yield ErrBadCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	u, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			s.hasher.Verify(s.dummyHash, password)
			return "", nil, ErrBadCredentials
		}
		return "", nil, err
	}
	if !s.hasher.Verify(u.PasswordHash, password) {
		return "", nil, ErrBadCredentials
	}
	token, err := s.tokens.Issue(auth.Identity{UserID: u.ID, Email: u.Email})
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}
