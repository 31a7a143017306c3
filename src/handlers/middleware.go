package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/username/wealthfolio/backend/src/logger"
	"github.com/username/wealthfolio/backend/src/storage"
	"github.com/username/wealthfolio/backend/src/utils"
)

// Custom context key type to avoid collisions.
type contextKey string

const userIDContextKey contextKey = "userID"

// AuthMiddleware validates the bearer token and stores the verified user id in
// the request context.
func (h *UserHandler) AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			logger.L.Debug("AuthMiddleware: Authorization header missing", "path", r.URL.Path)
			utils.SendJSONError(w, "Access denied", http.StatusUnauthorized)
			return
		}

		tokenString := authHeader
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}
		if tokenString == "" {
			utils.SendJSONError(w, "Malformed token", http.StatusUnauthorized)
			return
		}

		userID, err := h.authService.ValidateToken(tokenString)
		if err != nil {
			logger.L.Warn("AuthMiddleware: Token validation failed", "path", r.URL.Path, "error", err)
			utils.SendJSONError(w, "Invalid or expired token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userIDContextKey, userID)
		next(w, r.WithContext(ctx))
	}
}

// GetUserIDFromContext retrieves the verified user id placed by AuthMiddleware.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDContextKey).(string)
	return userID, ok
}

// errorStatus maps repository errors onto HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrDuplicateEmail),
		errors.Is(err, storage.ErrInvalidKind),
		errors.Is(err, storage.ErrInvalidAsset):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
