package auth

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-fightlog-go/internal/apperr"
)

type contextKey string

const identityKey = contextKey("identity")

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFrom returns the identity attached by Middleware.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// Verifier is satisfied by *TokenService.
type Verifier interface {
	Verify(token string) (Identity, error)
}

// Middleware rejects requests without a bearer token (401) or with an
// invalid or expired one (403). Otherwise the identity is attached to the
// request context.
func Middleware(v Verifier, logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				apperr.Write(w, r, logger, apperr.ErrUnauthenticated)
				return
			}
			id, err := v.Verify(token)
			if err != nil {
				logger.Debugw("token rejected", "path", r.URL.Path, "err", err)
				apperr.Write(w, r, logger, apperr.New(apperr.ErrForbidden, "Invalid token"))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) < len("bearer ") || !strings.EqualFold(header[:len("bearer ")], "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[len("bearer "):])
}
