package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/couriersync/courier-backoffice/internal/api/dto"
	"github.com/couriersync/courier-backoffice/internal/service"
	apperrors "github.com/couriersync/courier-backoffice/pkg/util"
)

// MFAHandler exposes multi-factor verification.
type MFAHandler struct {
	mfa *service.MFAService
}

// NewMFAHandler constructs handler.
func NewMFAHandler(mfaService *service.MFAService) *MFAHandler {
	return &MFAHandler{mfa: mfaService}
}

// Verify handles POST /api/mfa/verify.
func (h *MFAHandler) Verify(c *fiber.Ctx) error {
	var req dto.MFAVerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return apperrors.NewValidationError("cedula y código de 6 dígitos requeridos", nil)
	}

	result, err := h.mfa.Verify(c.Context(), req.Cedula, req.Code)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"token":   result.Token,
		"message": "Login exitoso",
		"cedula":  result.Cedula,
		"rol":     result.RoleID,
	})
}
