package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/account-service/internal/domain"
	"github.com/spec-kit/account-service/internal/events"
	"github.com/spec-kit/account-service/internal/repository"
)

const defaultListLimit = 50

// UserService exposes CRUD over accounts outside the auth flow.
type UserService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, dispatcher events.Dispatcher) *UserService {
	return &UserService{users: users, dispatcher: dispatcher}
}

// UpdateUserInput carries partial profile updates.
type UpdateUserInput struct {
	Name  *string
	Email *string
}

// Get returns one account by id.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// List returns a page of accounts, newest first.
func (s *UserService) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.users.List(ctx, limit, offset)
}

// Update applies partial profile changes. Email changes are normalized
// and remain subject to the uniqueness constraint.
func (s *UserService) Update(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := make([]string, 0, 2)
	if in.Name != nil {
		user.Name = *in.Name
		fields = append(fields, "name")
	}
	if in.Email != nil {
		user.Email = domain.NormalizeEmail(*in.Email)
		fields = append(fields, "email")
	}
	if len(fields) == 0 {
		return user, nil
	}

	if err := s.users.Update(ctx, user); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, domain.ErrUserExists
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:    events.EventUserUpdated,
		UserID:  user.ID,
		Email:   user.Email,
		Payload: events.UserUpdatedPayload{Fields: fields},
	})
	return user, nil
}

// Delete removes an account.
func (s *UserService) Delete(ctx context.Context, id string) error {
	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrUserNotFound
		}
		return err
	}

	s.publish(ctx, events.Event{
		Type:    events.EventUserDeleted,
		UserID:  user.ID,
		Email:   user.Email,
		Payload: events.UserDeletedPayload{Role: user.Role},
	})
	return nil
}

func (s *UserService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}
