package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/couriersync/courier-backoffice/internal/domain"
	"github.com/couriersync/courier-backoffice/internal/events"
	"github.com/couriersync/courier-backoffice/internal/repository"
	apperrors "github.com/couriersync/courier-backoffice/pkg/util"
)

const defaultRouteStatusID = 1 // active

// RouteCreateInput carries a create request. Pointer fields distinguish
// absent values from zero values.
type RouteCreateInput struct {
	ID         int
	Vehicle    *string
	Driver     *string
	StatusID   *int
	DistanceKm *float64
	AvgTimeMin *float64
	TrafficID  *int
	Priority   *int16
}

// RouteUpdateInput carries a partial update; only non-nil fields are applied.
type RouteUpdateInput struct {
	Vehicle    *string
	Driver     *string
	StatusID   *int
	DistanceKm *float64
	AvgTimeMin *float64
	TrafficID  *int
	Priority   *int16
}

// RouteService implements route CRUD and the filtered queries.
type RouteService struct {
	routes     repository.RouteRepository
	statuses   repository.RouteStatusRepository
	traffic    repository.TrafficLevelRepository
	dispatcher events.Dispatcher
}

// NewRouteService builds the service.
func NewRouteService(routes repository.RouteRepository, statuses repository.RouteStatusRepository, traffic repository.TrafficLevelRepository, dispatcher events.Dispatcher) *RouteService {
	return &RouteService{
		routes:     routes,
		statuses:   statuses,
		traffic:    traffic,
		dispatcher: dispatcher,
	}
}

// Create validates required fields, rejects duplicate explicit ids and
// defaults the status to active.
func (s *RouteService) Create(ctx context.Context, actor string, input RouteCreateInput) (*domain.Route, error) {
	if input.DistanceKm == nil || input.AvgTimeMin == nil || input.TrafficID == nil || input.Priority == nil {
		return nil, apperrors.NewValidationError("faltan campos obligatorios en la ruta", nil)
	}

	if input.ID > 0 {
		exists, err := s.routes.Exists(ctx, input.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperrors.NewConflict("el ID de la ruta ya existe", nil)
		}
	}

	statusID := defaultRouteStatusID
	if input.StatusID != nil {
		statusID = *input.StatusID
	}

	route := &domain.Route{
		ID:         input.ID,
		Vehicle:    input.Vehicle,
		Driver:     input.Driver,
		StatusID:   statusID,
		DistanceKm: *input.DistanceKm,
		AvgTimeMin: *input.AvgTimeMin,
		TrafficID:  *input.TrafficID,
		Priority:   *input.Priority,
	}
	if err := s.routes.Create(ctx, route); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventRouteCreated, actor, route.ID)
	return route, nil
}

// Update merges only the submitted fields onto the stored route.
func (s *RouteService) Update(ctx context.Context, actor string, id int, input RouteUpdateInput) (*domain.Route, error) {
	route, err := s.routes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound(fmt.Sprintf("ruta %d", id), nil)
		}
		return nil, err
	}

	if input.Vehicle != nil {
		route.Vehicle = input.Vehicle
	}
	if input.Driver != nil {
		route.Driver = input.Driver
	}
	if input.StatusID != nil {
		route.StatusID = *input.StatusID
	}
	if input.DistanceKm != nil {
		route.DistanceKm = *input.DistanceKm
	}
	if input.AvgTimeMin != nil {
		route.AvgTimeMin = *input.AvgTimeMin
	}
	if input.TrafficID != nil {
		route.TrafficID = *input.TrafficID
	}
	if input.Priority != nil {
		route.Priority = *input.Priority
	}

	if err := s.routes.Update(ctx, route); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventRouteUpdated, actor, route.ID)
	return route, nil
}

// Delete removes a route by id.
func (s *RouteService) Delete(ctx context.Context, actor string, id int) error {
	if err := s.routes.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound(fmt.Sprintf("ruta %d", id), nil)
		}
		return err
	}

	s.publish(ctx, events.EventRouteDeleted, actor, id)
	return nil
}

// ListAll returns every route.
func (s *RouteService) ListAll(ctx context.Context) ([]domain.Route, error) {
	return s.routes.ListAll(ctx)
}

// ListStatuses returns the route status lookup table.
func (s *RouteService) ListStatuses(ctx context.Context) ([]domain.RouteStatus, error) {
	return s.statuses.ListAll(ctx)
}

// FindByStatusName resolves a status display name and lists matching routes.
func (s *RouteService) FindByStatusName(ctx context.Context, name string) ([]domain.Route, error) {
	status, err := s.statuses.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound(fmt.Sprintf("estado %q", name), nil)
		}
		return nil, err
	}
	return s.routes.ListByStatus(ctx, status.ID)
}

// FindByTrafficLevel resolves a traffic level name and lists matching routes.
func (s *RouteService) FindByTrafficLevel(ctx context.Context, level string) ([]domain.Route, error) {
	traffic, err := s.traffic.GetByLevel(ctx, level)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound(fmt.Sprintf("tráfico %q", level), nil)
		}
		return nil, err
	}
	return s.routes.ListByTraffic(ctx, traffic.ID)
}

// ListOrderedByTraffic returns every route ordered by traffic level ascending.
func (s *RouteService) ListOrderedByTraffic(ctx context.Context) ([]domain.Route, error) {
	return s.routes.ListOrderedByTraffic(ctx)
}

func (s *RouteService) publish(ctx context.Context, eventType events.EventType, actor string, routeID int) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:          uuid.NewString(),
		Type:        eventType,
		ActorCedula: actor,
		Timestamp:   time.Now(),
		Payload:     events.RouteMutationPayload{RouteID: routeID},
	})
}
