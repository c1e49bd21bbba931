package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/couriersync/courier-backoffice/internal/api/dto"
	"github.com/couriersync/courier-backoffice/internal/auth"
	"github.com/couriersync/courier-backoffice/internal/domain"
	"github.com/couriersync/courier-backoffice/internal/service"
	apperrors "github.com/couriersync/courier-backoffice/pkg/util"
)

// RoutesHandler manages route CRUD and filtered queries.
type RoutesHandler struct {
	service *service.RouteService
}

// NewRoutesHandler constructs handler.
func NewRoutesHandler(routeService *service.RouteService) *RoutesHandler {
	return &RoutesHandler{service: routeService}
}

// Create POST /routes/create.
func (h *RoutesHandler) Create(c *fiber.Ctx) error {
	var req dto.RouteCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return apperrors.NewValidationError("faltan campos obligatorios en la ruta", nil)
	}

	route, err := h.service.Create(c.Context(), actorCedula(c), service.RouteCreateInput{
		ID:         req.ID,
		Vehicle:    req.Vehicle,
		Driver:     req.Driver,
		StatusID:   req.StatusID,
		DistanceKm: req.DistanceKm,
		AvgTimeMin: req.AvgTimeMin,
		TrafficID:  req.TrafficID,
		Priority:   req.Priority,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(routeResponse(route))
}

// Update PUT /routes/update/:id.
func (h *RoutesHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("id de ruta inválido", nil)
	}

	var req dto.RouteUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	route, err := h.service.Update(c.Context(), actorCedula(c), id, service.RouteUpdateInput{
		Vehicle:    req.Vehicle,
		Driver:     req.Driver,
		StatusID:   req.StatusID,
		DistanceKm: req.DistanceKm,
		AvgTimeMin: req.AvgTimeMin,
		TrafficID:  req.TrafficID,
		Priority:   req.Priority,
	})
	if err != nil {
		return err
	}
	return c.JSON(routeResponse(route))
}

// Delete DELETE /routes/delete/:id.
func (h *RoutesHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("id de ruta inválido", nil)
	}
	if err := h.service.Delete(c.Context(), actorCedula(c), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Ruta eliminada correctamente."})
}

// ListAll GET /routes/get/all.
func (h *RoutesHandler) ListAll(c *fiber.Ctx) error {
	routes, err := h.service.ListAll(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(routeResponses(routes))
}

// ListStatuses GET /routes/estados.
func (h *RoutesHandler) ListStatuses(c *fiber.Ctx) error {
	statuses, err := h.service.ListStatuses(c.Context())
	if err != nil {
		return err
	}
	items := make([]fiber.Map, 0, len(statuses))
	for _, status := range statuses {
		items = append(items, fiber.Map{
			"idEstado":     status.ID,
			"nombreEstado": status.Name,
		})
	}
	return c.JSON(items)
}

// ByStatus GET /routes/by-estado?estado=.
func (h *RoutesHandler) ByStatus(c *fiber.Ctx) error {
	name := c.Query("estado")
	if name == "" {
		return apperrors.NewValidationError("estado requerido", nil)
	}
	routes, err := h.service.FindByStatusName(c.Context(), name)
	if err != nil {
		return err
	}
	return c.JSON(routeResponses(routes))
}

// ByTraffic GET /routes/trafico/:nivel.
func (h *RoutesHandler) ByTraffic(c *fiber.Ctx) error {
	routes, err := h.service.FindByTrafficLevel(c.Context(), c.Params("nivel"))
	if err != nil {
		return err
	}
	return c.JSON(routeResponses(routes))
}

// OrderedByTraffic GET /routes/trafico/all.
func (h *RoutesHandler) OrderedByTraffic(c *fiber.Ctx) error {
	routes, err := h.service.ListOrderedByTraffic(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(routeResponses(routes))
}

func actorCedula(c *fiber.Ctx) string {
	if principal, ok := auth.PrincipalFromContext(c); ok {
		return principal.Cedula
	}
	return ""
}

func routeResponse(route *domain.Route) dto.RouteResponse {
	return dto.RouteResponse{
		ID:         route.ID,
		Vehicle:    route.Vehicle,
		Driver:     route.Driver,
		StatusID:   route.StatusID,
		DistanceKm: route.DistanceKm,
		AvgTimeMin: route.AvgTimeMin,
		TrafficID:  route.TrafficID,
		Priority:   route.Priority,
	}
}

func routeResponses(routes []domain.Route) []dto.RouteResponse {
	items := make([]dto.RouteResponse, 0, len(routes))
	for i := range routes {
		items = append(items, routeResponse(&routes[i]))
	}
	return items
}
