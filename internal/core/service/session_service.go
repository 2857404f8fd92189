package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/albertcheruiyot/recipebox/internal/core/domain"
	"github.com/albertcheruiyot/recipebox/internal/core/repository"
)

const SessionIssuer = "recipebox"

// ErrNoSession is returned by Load when the cookie token does not name a live
// session.
var ErrNoSession = errors.New("no active session")

type SessionService struct {
	sessionRepo repository.SessionRepository
	secret      []byte
	ttl         time.Duration
}

func NewSessionService(sessionRepo repository.SessionRepository, secret string, ttl time.Duration) *SessionService {
	return &SessionService{
		sessionRepo: sessionRepo,
		secret:      []byte(secret),
		ttl:         ttl,
	}
}

// SessionClaims is the payload of the session cookie.
type SessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

// Load resolves a cookie token to its session. Any token that is malformed,
// forged, expired or points at a missing row yields ErrNoSession.
func (s *SessionService) Load(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, ErrNoSession
	}

	claims, err := s.parseToken(token)
	if err != nil {
		return nil, ErrNoSession
	}

	session, err := s.sessionRepo.FindByID(ctx, claims.SessionID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}

	if session.IsExpired() {
		return nil, ErrNoSession
	}

	return session, nil
}

// Establish starts a fresh session for userID and returns it with the token
// to write back to the cookie. The current session, if any, is deleted so a
// token issued before authentication never carries the new user.
func (s *SessionService) Establish(ctx context.Context, current *domain.Session, userID int64) (*domain.Session, string, error) {
	if current != nil {
		if err := s.discard(ctx, current); err != nil {
			return nil, "", err
		}
	}

	if _, err := s.sessionRepo.DeleteExpired(ctx); err != nil {
		return nil, "", fmt.Errorf("failed to prune sessions: %w", err)
	}

	session := domain.NewSession(userID, s.ttl)
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, "", err
	}

	token, err := s.signToken(session)
	if err != nil {
		return nil, "", err
	}
	return session, token, nil
}

// Clear ends the session. Its token stops resolving immediately.
func (s *SessionService) Clear(ctx context.Context, session *domain.Session) error {
	if err := s.discard(ctx, session); err != nil {
		return err
	}
	session.UserID = nil
	return nil
}

// Prune deletes expired sessions and returns how many were removed.
func (s *SessionService) Prune(ctx context.Context) (int64, error) {
	return s.sessionRepo.DeleteExpired(ctx)
}

func (s *SessionService) signToken(session *domain.Session) (string, error) {
	claims := SessionClaims{
		SessionID: session.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    SessionIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return tokenString, nil
}

func (s *SessionService) parseToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(SessionIssuer))
	if err != nil {
		return nil, fmt.Errorf("invalid session token: %w", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return nil, fmt.Errorf("invalid session claims")
	}
	return claims, nil
}

func (s *SessionService) discard(ctx context.Context, session *domain.Session) error {
	err := s.sessionRepo.Delete(ctx, session.ID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
