package dto

import "github.com/spec-kit/account-service/internal/domain"

// UpdateUserRequest carries partial profile updates.
type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// UserResponse wraps a single account.
type UserResponse struct {
	User UserPayload `json:"user"`
}

// UsersResponse wraps a page of accounts.
type UsersResponse struct {
	Users  []UserPayload `json:"users"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

// NewUsersResponse sanitizes a page of users.
func NewUsersResponse(users []domain.User, limit, offset int) UsersResponse {
	payloads := make([]UserPayload, 0, len(users))
	for i := range users {
		payloads = append(payloads, NewUserPayload(&users[i]))
	}
	return UsersResponse{Users: payloads, Limit: limit, Offset: offset}
}
