package v1handler

import (
	"context"
	"crypto/rsa"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"gateway/internal/config"
	"gateway/pkg/logger"
	"gateway/pkg/serrors"
)

// CtxKey is a string-based type used for storing values in request contexts.
type CtxKey string

// SubjectKey is the context key under which the authenticated JWT subject is stored.
const SubjectKey CtxKey = "Subject"

// SecHandlerOptions configure bearer authentication.
type SecHandlerOptions struct {
	// PublicKey is the PEM encoded RSA key verifying RS256 tokens. An empty
	// key disables authentication.
	PublicKey string
}

// NewSecHandlerOptions constructs a SecHandlerOptions value from the provided application config.
func NewSecHandlerOptions(cfg *config.Config) *SecHandlerOptions {
	return &SecHandlerOptions{PublicKey: cfg.JWT.PublicKey}
}

type SecHandler struct {
	publicKey *rsa.PublicKey
}

func NewSecHandler(opts *SecHandlerOptions) (*SecHandler, error) {
	if opts == nil || strings.TrimSpace(opts.PublicKey) == "" {
		return &SecHandler{}, nil
	}

	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(opts.PublicKey))
	if err != nil {
		return nil, fmt.Errorf("could not parse RSA public key: %w", err)
	}

	return &SecHandler{publicKey: key}, nil
}

// Enabled reports whether tokens are verified.
func (s *SecHandler) Enabled() bool {
	return s != nil && s.publicKey != nil
}

// HandleBearerAuth verifies token and stores its subject in the returned context.
func (s *SecHandler) HandleBearerAuth(ctx context.Context, token string) (context.Context, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.publicKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return ctx, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid token")
	}
	if claims.Subject == "" {
		return ctx, serrors.With(serrors.ErrUnauthorized, "token has no subject")
	}

	ctx = context.WithValue(ctx, SubjectKey, claims.Subject)
	ctx = logger.WithFields(ctx, zap.String("subject", claims.Subject))

	return ctx, nil
}

// GetSubjectFromContext returns the authenticated subject, or "" when the
// request was not authenticated.
func GetSubjectFromContext(ctx context.Context) string {
	subject, _ := ctx.Value(SubjectKey).(string)

	return subject
}

// Middleware rejects requests without a valid bearer token. It passes every
// request through when authentication is disabled.
func (s *SecHandler) Middleware(next http.Handler) http.Handler {
	if !s.Enabled() {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scheme, token, found := strings.Cut(r.Header.Get("Authorization"), " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			Handler{}.WriteError(w, r, serrors.With(serrors.ErrUnauthorized, "missing bearer token"))

			return
		}

		ctx, err := s.HandleBearerAuth(r.Context(), strings.TrimSpace(token))
		if err != nil {
			Handler{}.WriteError(w, r, err)

			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
