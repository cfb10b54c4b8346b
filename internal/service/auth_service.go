package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/account-service/internal/auth"
	"github.com/spec-kit/account-service/internal/config"
	"github.com/spec-kit/account-service/internal/domain"
	"github.com/spec-kit/account-service/internal/events"
	"github.com/spec-kit/account-service/internal/repository"
)

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL()),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// CreateUserInput carries registration fields. Role is optional and
// defaults to the user role.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// CreateUser registers a new account. The existence check is advisory
// only; the store's unique constraint is the authoritative guard against
// concurrent duplicate registrations, and its violation maps to
// domain.ErrUserExists.
func (s *AuthService) CreateUser(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	email := domain.NormalizeEmail(in.Email)

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}

	user := &domain.User{
		Name:         in.Name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, domain.ErrUserExists
		}
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:    events.EventUserRegistered,
		UserID:  user.ID,
		Email:   user.Email,
		Payload: events.UserRegisteredPayload{Name: user.Name, Role: user.Role},
	})
	return user, nil
}

// AuthenticateUser verifies credentials. An unknown email yields
// domain.ErrUserNotFound and a wrong password domain.ErrInvalidCredentials;
// the HTTP layer merges both into one generic response.
func (s *AuthService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	s.publish(ctx, events.Event{
		Type:    events.EventUserSignedIn,
		UserID:  user.ID,
		Email:   user.Email,
		Payload: events.UserSignedInPayload{Role: user.Role},
	})
	return user, nil
}

// IssueSession mints a signed session token for the user.
func (s *AuthService) IssueSession(user *domain.User) (string, time.Time, error) {
	return s.tokenMgr.GenerateToken(user)
}

// SignOut records sign-out telemetry. Sessions are stateless, so there is
// nothing to revoke; a parse failure on the presented token is ignored.
func (s *AuthService) SignOut(ctx context.Context, tokenStr string) {
	event := events.Event{
		Type:    events.EventUserSignedOut,
		Payload: events.UserSignedOutPayload{SessionActive: false},
	}
	if claims, err := s.tokenMgr.ParseToken(tokenStr); err == nil {
		event.UserID = claims.Subject
		event.Email = claims.Email
		event.Payload = events.UserSignedOutPayload{SessionActive: true}
	}
	s.publish(ctx, event)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}
