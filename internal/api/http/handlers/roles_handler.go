package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/couriersync/courier-backoffice/internal/auth"
)

// RolesHandler exposes the role directory refresh operation.
type RolesHandler struct {
	directory *auth.RoleDirectory
}

// NewRolesHandler constructs handler.
func NewRolesHandler(directory *auth.RoleDirectory) *RolesHandler {
	return &RolesHandler{directory: directory}
}

// Refresh handles POST /roles/refresh.
func (h *RolesHandler) Refresh(c *fiber.Ctx) error {
	if err := h.directory.Refresh(c.Context()); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Roles actualizados"})
}
