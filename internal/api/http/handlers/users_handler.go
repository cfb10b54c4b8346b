package handlers

import (
	"errors"
	"net/mail"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/account-service/internal/api/dto"
	"github.com/spec-kit/account-service/internal/auth"
	"github.com/spec-kit/account-service/internal/domain"
	"github.com/spec-kit/account-service/internal/service"
	apperrors "github.com/spec-kit/account-service/pkg/util"
)

// UsersHandler exposes CRUD over accounts.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// List handles GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	users, err := h.users.List(c.Context(), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUsersResponse(users, limit, offset))
}

// Me handles GET /users/me.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	return c.JSON(dto.UserResponse{User: dto.NewUserPayload(principal.User)})
}

// Get handles GET /users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	user, err := h.users.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.UserResponse{User: dto.NewUserPayload(user)})
}

// Update handles PATCH /users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if details := validateUpdate(req); details != nil {
		return apperrors.NewValidationError("validation failed", details)
	}

	user, err := h.users.Update(c.Context(), c.Params("id"), service.UpdateUserInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return apperrors.NewConflict("email already registered", nil)
		}
		return err
	}
	return c.JSON(dto.UserResponse{User: dto.NewUserPayload(user)})
}

// Delete handles DELETE /users/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	if err := h.users.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "account deleted"})
}

func validateUpdate(req dto.UpdateUserRequest) map[string]any {
	details := map[string]any{}
	if req.Name != nil && *req.Name == "" {
		details["name"] = "name must not be empty"
	}
	if req.Email != nil {
		if _, err := mail.ParseAddress(*req.Email); err != nil {
			details["email"] = "email is not a valid address"
		}
	}
	if len(details) == 0 {
		return nil
	}
	return details
}
