package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/duetdiary/duet-api/internal/api/shared"
	"github.com/duetdiary/duet-api/internal/platform/logger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrInvalidToken is returned for malformed, badly signed or subject-less tokens.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned for tokens past their expiry.
	ErrExpiredToken = errors.New("token expired")
)

// leeway tolerates clock skew with the token issuer.
const leeway = 30 * time.Second

// AuthMiddleware verifies HS256 bearer tokens issued by the account service.
// The token subject is the user's UUID.
type AuthMiddleware struct {
	secret []byte
	now    func() time.Time
}

// NewAuthMiddleware creates an AuthMiddleware for the shared signing secret.
func NewAuthMiddleware(secret string) *AuthMiddleware {
	if secret == "" {
		// ALLOW-PANIC: constructor misuse
		panic("jwt secret cannot be empty")
	}
	return &AuthMiddleware{secret: []byte(secret), now: time.Now}
}

// ParseToken validates tokenString and returns its subject.
func (m *AuthMiddleware) ParseToken(tokenString string) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(leeway),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, ErrExpiredToken
		}
		return uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil || userID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: subject is not a user id", ErrInvalidToken)
	}
	return userID, nil
}

// Authenticate rejects requests without a valid bearer token and stores the
// user ID in the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		userID, err := m.ParseToken(token)
		if err != nil {
			message := "Invalid token"
			if errors.Is(err, ErrExpiredToken) {
				message = "Token expired"
			}
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, message, err)
			return
		}

		log := logger.FromContextOrDefault(r.Context(), slog.Default()).
			With(slog.String("user_id", userID.String()))
		ctx := logger.WithLogger(shared.WithUserID(r.Context(), userID), log)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
