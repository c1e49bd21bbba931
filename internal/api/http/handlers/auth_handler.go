package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/couriersync/courier-backoffice/internal/api/dto"
	"github.com/couriersync/courier-backoffice/internal/domain"
	"github.com/couriersync/courier-backoffice/internal/service"
	apperrors "github.com/couriersync/courier-backoffice/pkg/util"
)

// AuthHandler exposes login, registration, logout and identity lookup.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return apperrors.NewValidationError("username, password y rol requeridos", nil)
	}

	result, err := h.auth.Login(c.Context(), req.Username, req.Password, req.Rol)
	if err != nil {
		return err
	}

	switch result.Status {
	case service.LoginMFARequired:
		return c.JSON(fiber.Map{
			"message":     "Se requiere verificación MFA",
			"requiresMfa": true,
			"cedula":      result.Cedula,
		})
	case service.LoginSuccess:
		return c.JSON(fiber.Map{
			"token":   result.Token,
			"message": "Login exitoso",
			"cedula":  result.Cedula,
			"rol":     result.RoleID,
		})
	default:
		return apperrors.NewUnauthorized("Invalid credentials")
	}
}

// Register handles POST /register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return apperrors.NewValidationError("datos de registro incompletos o inválidos", nil)
	}

	_, err := h.auth.Register(c.Context(), service.RegisterInput{
		Cedula:     req.Cedula,
		Username:   req.Username,
		FullName:   req.FullName,
		Email:      req.Email,
		Password:   req.Password,
		RoleID:     req.Rol,
		MFAEnabled: req.MFAEnabled,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Usuario creado con éxito"})
}

// Logout handles POST /logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	result, err := h.auth.Logout(c.Context(), c.Get("Authorization"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Logout exitoso",
		"cedula":  result.Cedula,
	})
}

// GetUser handles GET /user?cedula=.
func (h *AuthHandler) GetUser(c *fiber.Ctx) error {
	cedula := c.Query("cedula")
	if cedula == "" {
		return apperrors.NewValidationError("cedula requerida", nil)
	}

	user, err := h.auth.FindByCedula(c.Context(), cedula)
	if err != nil {
		return err
	}
	return c.JSON(userResponse(user))
}

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		Cedula:     user.Cedula,
		Username:   user.Username,
		FullName:   user.FullName,
		Email:      user.Email,
		Rol:        user.RoleID,
		MFAEnabled: user.MFAEnabled,
	}
}
