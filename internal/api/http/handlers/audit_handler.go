package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/couriersync/courier-backoffice/internal/service"
)

// AuditHandler exposes the audit trail.
type AuditHandler struct {
	audit *service.AuditService
}

// NewAuditHandler constructs handler.
func NewAuditHandler(auditService *service.AuditService) *AuditHandler {
	return &AuditHandler{audit: auditService}
}

// ListRecent handles GET /audit.
func (h *AuditHandler) ListRecent(c *fiber.Ctx) error {
	records, err := h.audit.ListRecent(c.Context(), c.QueryInt("limit"))
	if err != nil {
		return err
	}

	items := make([]fiber.Map, 0, len(records))
	for _, record := range records {
		items = append(items, fiber.Map{
			"id":         record.ID,
			"tipoEvento": record.EventType,
			"actor":      record.ActorCedula,
			"detalle":    record.Detail,
			"ocurridoEn": record.OccurredAt,
		})
	}
	return c.JSON(items)
}
