package events

import (
	"time"

	"github.com/spec-kit/account-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered EventType = "user_registered"
	EventUserSignedIn   EventType = "user_signed_in"
	EventUserSignedOut  EventType = "user_signed_out"
	EventUserUpdated    EventType = "user_updated"
	EventUserDeleted    EventType = "user_deleted"
)

// Event represents an account lifecycle event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id"`
	Email     string      `json:"email,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Name string      `json:"name"`
	Role domain.Role `json:"role"`
}

// UserSignedInPayload payload.
type UserSignedInPayload struct {
	Role domain.Role `json:"role"`
}

// UserSignedOutPayload payload. SessionActive records whether a live
// session cookie accompanied the sign-out.
type UserSignedOutPayload struct {
	SessionActive bool `json:"session_active"`
}

// UserUpdatedPayload payload.
type UserUpdatedPayload struct {
	Fields []string `json:"fields"`
}

// UserDeletedPayload payload.
type UserDeletedPayload struct {
	Role domain.Role `json:"role"`
}
