package dto

import "github.com/spec-kit/account-service/internal/domain"

// SignUpRequest payload for new accounts.
type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// SignInRequest payload for login.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserPayload is the sanitized account representation returned to
// clients. The password hash never appears here.
type UserPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Message string      `json:"message"`
	User    UserPayload `json:"user"`
}

// NewUserPayload sanitizes a domain user for transport.
func NewUserPayload(user *domain.User) UserPayload {
	return UserPayload{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  string(user.Role),
	}
}
