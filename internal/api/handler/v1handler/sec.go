package v1handler

import (
	"context"
	"crypto/rsa"
	"fmt"
	"net/http"
	"strings"

	"urix/internal/config"
	"urix/pkg/domain"
	"urix/pkg/serrors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CtxKey is the dedicated type for context keys set by the security handler.
type CtxKey string

// UserIDKey is the context key under which the authenticated user ID is stored.
const UserIDKey CtxKey = "userID"

// SecHandlerOptions configures JWT verification for the v1 API.
type SecHandlerOptions struct {
	// PublicKey is the PEM-encoded RSA public key tokens are verified with.
	PublicKey string
}

// NewSecHandlerOptions constructs SecHandlerOptions from the application config.
func NewSecHandlerOptions(cfg *config.Config) *SecHandlerOptions {
	return &SecHandlerOptions{
		PublicKey: cfg.JWT.PublicKey,
	}
}

// SecHandler authenticates requests using RS256-signed bearer tokens. The
// token subject is the user ID, which is placed into the request context for
// the handlers to scope their queries with.
type SecHandler struct {
	publicKey *rsa.PublicKey
}

// NewSecHandler parses the configured public key and returns a SecHandler.
func NewSecHandler(options *SecHandlerOptions) (*SecHandler, error) {
	pub, err := jwt.ParseRSAPublicKeyFromPEM([]byte(options.PublicKey))
	if err != nil {
		return nil, fmt.Errorf("could not parse JWT public key: %w", err)
	}

	return &SecHandler{publicKey: pub}, nil
}

// HandleBearerAuth verifies the token and returns a context carrying the
// authenticated user ID. Any verification failure maps to ErrUnauthorized.
func (s *SecHandler) HandleBearerAuth(ctx context.Context, token string) (context.Context, error) {
	claims := &jwt.RegisteredClaims{}
	if _, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.publicKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()})); err != nil {
		return ctx, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid token")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid token subject")
	}

	return context.WithValue(ctx, UserIDKey, domain.UserID(userID)), nil
}

// Middleware enforces bearer authentication for the wrapped handler.
func (s *SecHandler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			writeError(r.Context(), w, serrors.With(serrors.ErrUnauthorized, "missing bearer token"))

			return
		}

		ctx, err := s.HandleBearerAuth(r.Context(), token)
		if err != nil {
			writeError(r.Context(), w, err)

			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserIDFromContext returns the authenticated user ID stored by the
// security handler, or the zero ID when the request was not authenticated.
func GetUserIDFromContext(ctx context.Context) domain.UserID {
	if v, ok := ctx.Value(UserIDKey).(domain.UserID); ok {
		return v
	}

	return domain.UserID{}
}
