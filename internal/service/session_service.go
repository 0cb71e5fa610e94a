package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"roundtable/internal/domain"
	"roundtable/pkg/errors"
	"roundtable/pkg/logger"
)

// sessionClaims is the JWT claim set carried by a participant session token.
type sessionClaims struct {
	ParticipantID string `json:"participant_id"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	jwt.RegisteredClaims
}

// sessionService issues and validates participant session tokens. There is
// no identity provider behind it: joining a meeting mints a token, and the
// token's type claim gates mutating actions.
type sessionService struct {
	secret []byte
	ttl    time.Duration
	logger *logger.Logger
}

// NewSessionService creates a new session service
func NewSessionService(secret string, ttl time.Duration, logger *logger.Logger) SessionService {
	return &sessionService{
		secret: []byte(secret),
		ttl:    ttl,
		logger: logger,
	}
}

// IssueToken mints a signed session token for the given claims
func (s *sessionService) IssueToken(ctx context.Context, claims domain.SessionClaims) (string, error) {
	if len(s.secret) == 0 {
		return "", errors.NewInternalError("session secret is not configured", nil)
	}

	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		ParticipantID: claims.ParticipantID,
		Name:          claims.Name,
		Type:          string(claims.Type),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.ParticipantID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.NewInternalError("failed to sign session token", err)
	}

	s.logger.WithField("participant_id", claims.ParticipantID).Debug("Session token issued")
	return signed, nil
}

// ValidateToken verifies a session token and returns its claims
func (s *sessionService) ValidateToken(ctx context.Context, tokenString string) (*domain.SessionClaims, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		s.logger.WithError(err).Debug("Session token validation failed")
		return nil, errors.NewAuthenticationError("Invalid or expired session token")
	}
	if !token.Valid {
		return nil, errors.NewAuthenticationError("Invalid session token")
	}

	pt := domain.ParticipantType(claims.Type)
	if pt != domain.ParticipantTypeInteractive && pt != domain.ParticipantTypeViewOnly {
		return nil, errors.NewAuthenticationError("Unknown participant type in session token")
	}

	return &domain.SessionClaims{
		ParticipantID: claims.ParticipantID,
		Name:          claims.Name,
		Type:          pt,
	}, nil
}
