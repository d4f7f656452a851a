package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/league-service/internal/auth"
	"github.com/spec-kit/league-service/internal/config"
	"github.com/spec-kit/league-service/internal/domain"
	"github.com/spec-kit/league-service/internal/events"
	"github.com/spec-kit/league-service/internal/repository"
)

// AuthService coordinates registration, login and token refresh flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository, dispatcher events.Dispatcher) (*AuthService, error) {
	tokenMgr, err := auth.NewTokenManager(
		cfg.JWTSecret,
		time.Duration(cfg.AccessTokenTTLMinutes)*time.Minute,
		time.Duration(cfg.RefreshTokenTTLMinutes)*time.Minute,
	)
	if err != nil {
		return nil, fmt.Errorf("token manager: %w", err)
	}
	return &AuthService{
		users:      users,
		tokenMgr:   tokenMgr,
		dispatcher: dispatcher,
		bcryptCost: cfg.BcryptCost,
	}, nil
}

// Register creates a new avenger account.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleAvenger,
		Balance:      0,
		Alive:        true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	s.publish(ctx, events.EventUserRegistered, user, events.UserRegisteredPayload{
		UserID:   user.ID,
		Username: user.Username,
	})
	return user, nil
}

// Login authenticates a member by password and issues an access/refresh pair.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, *auth.TokenPair, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrBadCredentials
		}
		return nil, nil, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, nil, ErrBadCredentials
	}

	pair, err := s.tokenMgr.IssuePair(user.ID, user.Role)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh validates a refresh token and mints a replacement access token
// without re-running password authentication. The refresh token itself is
// never extended; once it expires the caller must log in again. The subject's
// role is re-read from the store so role changes apply on next refresh.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, time.Time, error) {
	claims, err := s.tokenMgr.Parse(refreshToken, domain.TokenClassRefresh)
	if err != nil {
		return "", time.Time{}, err
	}

	user, err := s.users.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", time.Time{}, ErrUnknownSubject
		}
		return "", time.Time{}, err
	}

	return s.tokenMgr.Generate(user.ID, user.Role, domain.TokenClassAccess)
}

// Logout is a no-op server side; tokens are self-contained and the handler
// clears the client-held cookies.
func (s *AuthService) Logout(_ context.Context) error {
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, actor *domain.User, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     events.Actor{UserID: actor.ID, Role: actor.Role},
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
