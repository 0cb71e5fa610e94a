package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"roundtable/internal/domain"
	"roundtable/internal/service"
	"roundtable/pkg/errors"
	"roundtable/pkg/logger"
)

// ContextKey represents keys used in request context
type ContextKey string

const (
	// SessionContextKey is the key for participant session claims in context
	SessionContextKey ContextKey = "session"
	// RequestIDContextKey is the key for request ID in context
	RequestIDContextKey ContextKey = "request_id"
)

// Session creates a middleware that requires a valid participant session token
func Session(sessions service.SessionService, logger *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeErrorResponse(w, errors.NewAuthenticationError("Authorization header is required"), logger)
				return
			}

			if !strings.HasPrefix(authHeader, "Bearer ") {
				writeErrorResponse(w, errors.NewAuthenticationError("Invalid authorization header format"), logger)
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")
			if token == "" {
				writeErrorResponse(w, errors.NewAuthenticationError("Token is required"), logger)
				return
			}

			ctx := r.Context()
			claims, err := sessions.ValidateToken(ctx, token)
			if err != nil {
				writeErrorResponse(w, errors.NewAuthenticationError("Invalid or expired session token"), logger)
				return
			}

			ctx = context.WithValue(ctx, SessionContextKey, claims)
			r = r.WithContext(ctx)

			logger.WithField("participant_id", claims.ParticipantID).Debug("Session authenticated")

			next.ServeHTTP(w, r)
		})
	}
}

// RequireInteractive creates a middleware that rejects view-only sessions.
// Must run after Session.
func RequireInteractive(logger *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := SessionFromContext(r.Context())
			if claims == nil {
				writeErrorResponse(w, errors.NewAuthenticationError("Session is required"), logger)
				return
			}
			if !claims.Interactive() {
				writeErrorResponse(w, errors.NewAuthorizationError("View-only sessions cannot perform this action"), logger)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SessionFromContext returns the session claims set by the Session
// middleware, or nil when absent.
func SessionFromContext(ctx context.Context) *domain.SessionClaims {
	claims, _ := ctx.Value(SessionContextKey).(*domain.SessionClaims)
	return claims
}

// RequestID creates a middleware that adds a unique request ID to each request
func RequestID(logger *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := generateRequestID()

			ctx := context.WithValue(r.Context(), RequestIDContextKey, requestID)
			r = r.WithContext(ctx)

			w.Header().Set("X-Request-ID", requestID)

			next.ServeHTTP(w, r)
		})
	}
}

// generateRequestID generates a simple request ID
func generateRequestID() string {
	return fmt.Sprintf("%d-%d", time.Now().Unix(), time.Now().Nanosecond())
}

// writeErrorResponse writes an error response to the client
func writeErrorResponse(w http.ResponseWriter, appErr *errors.AppError, logger *logger.Logger) {
	logger.WithError(appErr).Debug("Request rejected")

	response := &errors.ErrorResponse{}
	response.Error.Type = appErr.Type
	response.Error.Message = appErr.Message
	response.Error.Details = appErr.Details
	response.Error.Timestamp = time.Now().UTC().Format(time.RFC3339)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.WithError(err).Error("Failed to encode error response")
	}
}
