package handlers

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/account-service/internal/api/dto"
	"github.com/spec-kit/account-service/internal/auth"
	"github.com/spec-kit/account-service/internal/domain"
	"github.com/spec-kit/account-service/internal/service"
	apperrors "github.com/spec-kit/account-service/pkg/util"
)

const minPasswordLength = 8

// AuthHandler exposes sign-up, sign-in and sign-out.
type AuthHandler struct {
	auth    *service.AuthService
	cookies *auth.CookieManager
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, cookies *auth.CookieManager) *AuthHandler {
	return &AuthHandler{auth: authService, cookies: cookies}
}

// SignUp handles POST /auth/sign-up.
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req dto.SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if details := validateSignUp(req); details != nil {
		return apperrors.NewValidationError("validation failed", details)
	}

	user, err := h.auth.CreateUser(c.Context(), service.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return apperrors.NewConflict("email already registered", nil)
		}
		return err
	}

	if err := h.startSession(c, user); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.AuthResponse{
		Message: "account created",
		User:    dto.NewUserPayload(user),
	})
}

// SignIn handles POST /auth/sign-in.
func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var req dto.SignInRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if details := validateSignIn(req); details != nil {
		return apperrors.NewValidationError("validation failed", details)
	}

	user, err := h.auth.AuthenticateUser(c.Context(), req.Email, req.Password)
	if err != nil {
		// One response for both failure modes so callers cannot probe
		// which emails are registered.
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrInvalidCredentials) {
			return apperrors.NewUnauthorized("invalid email or password")
		}
		return err
	}

	if err := h.startSession(c, user); err != nil {
		return err
	}
	return c.JSON(dto.AuthResponse{
		Message: "signed in",
		User:    dto.NewUserPayload(user),
	})
}

// SignOut handles POST /auth/sign-out. The cookie is cleared whether or
// not a session existed.
func (h *AuthHandler) SignOut(c *fiber.Ctx) error {
	if token, ok := h.cookies.Read(c); ok {
		h.auth.SignOut(c.Context(), token)
	}
	h.cookies.Clear(c)
	return c.JSON(fiber.Map{"message": "signed out"})
}

func (h *AuthHandler) startSession(c *fiber.Ctx, user *domain.User) error {
	token, _, err := h.auth.IssueSession(user)
	if err != nil {
		return err
	}
	h.cookies.Set(c, token)
	return nil
}

func validateSignUp(req dto.SignUpRequest) map[string]any {
	details := map[string]any{}
	if strings.TrimSpace(req.Name) == "" {
		details["name"] = "name is required"
	}
	validateEmailField(details, req.Email)
	validatePasswordField(details, req.Password)
	if req.Role != "" && !domain.Role(req.Role).Valid() {
		details["role"] = "role must be one of: user, admin"
	}
	if len(details) == 0 {
		return nil
	}
	return details
}

func validateSignIn(req dto.SignInRequest) map[string]any {
	details := map[string]any{}
	validateEmailField(details, req.Email)
	if req.Password == "" {
		details["password"] = "password is required"
	}
	if len(details) == 0 {
		return nil
	}
	return details
}

func validateEmailField(details map[string]any, email string) {
	if strings.TrimSpace(email) == "" {
		details["email"] = "email is required"
		return
	}
	if _, err := mail.ParseAddress(email); err != nil {
		details["email"] = "email is not a valid address"
	}
}

func validatePasswordField(details map[string]any, password string) {
	if password == "" {
		details["password"] = "password is required"
		return
	}
	if len(password) < minPasswordLength {
		details["password"] = "password must be at least 8 characters"
	}
}
