package auth

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ovaphlow/pitchfork/service-fightlog-go/internal/apperr"
)

// TokenTTL is the lifetime of every issued bearer token.
const TokenTTL = 24 * time.Hour

var (
	ErrInvalidToken = apperr.New(apperr.ErrForbidden, "Invalid token")
	ErrExpiredToken = apperr.New(apperr.ErrForbidden, "Token expired")
)

// Identity is what a verified token resolves to.
type Identity struct {
	UserID int64  `json:"id"`
	Email  string `json:"email"`
}

// Claims is the signed token payload.
type Claims struct {
	UserID int64  `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type Config struct {
	Secret string
	Issuer string
}

// ConfigFromEnv reads JWT_SECRET and JWT_ISSUER.
func ConfigFromEnv() Config {
	iss := os.Getenv("JWT_ISSUER")
	if iss == "" {
		iss = "fight-tracker"
	}
	return Config{Secret: os.Getenv("JWT_SECRET"), Issuer: iss}
}

// TokenService issues and verifies HS256 bearer tokens. It is stateless;
// expiry is the only invalidation.
type TokenService struct {
	secret []byte
	issuer string
	now    func() time.Time
}

func NewTokenService(cfg Config) (*TokenService, error) {
	if cfg.Secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	return &TokenService{secret: []byte(cfg.Secret), issuer: cfg.Issuer, now: time.Now}, nil
}

// Issue signs id with a 24h expiry from now.
func (s *TokenService) Issue(id Identity) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: id.UserID,
		Email:  id.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the embedded identity.
func (s *TokenService) Verify(token string) (Identity, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, ErrExpiredToken
		}
		return Identity{}, ErrInvalidToken
	}
	if !tkn.Valid || claims.UserID <= 0 {
		return Identity{}, ErrInvalidToken
	}
	return Identity{UserID: claims.UserID, Email: claims.Email}, nil
}
