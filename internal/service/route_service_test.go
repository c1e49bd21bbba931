package service_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couriersync/courier-backoffice/internal/domain"
	"github.com/couriersync/courier-backoffice/internal/service"
)

type stubRouteRepo struct {
	routes map[int]*domain.Route
	nextID int
}

func newStubRouteRepo(routes ...*domain.Route) *stubRouteRepo {
	repo := &stubRouteRepo{routes: map[int]*domain.Route{}, nextID: 1000}
	for _, route := range routes {
		repo.routes[route.ID] = route
	}
	return repo
}

func (s *stubRouteRepo) Create(_ context.Context, route *domain.Route) error {
	if route.ID == 0 {
		s.nextID++
		route.ID = s.nextID
	}
	copied := *route
	s.routes[route.ID] = &copied
	return nil
}

func (s *stubRouteRepo) Update(_ context.Context, route *domain.Route) error {
	if _, ok := s.routes[route.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *route
	s.routes[route.ID] = &copied
	return nil
}

func (s *stubRouteRepo) Delete(_ context.Context, id int) error {
	if _, ok := s.routes[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(s.routes, id)
	return nil
}

func (s *stubRouteRepo) Exists(_ context.Context, id int) (bool, error) {
	_, ok := s.routes[id]
	return ok, nil
}

func (s *stubRouteRepo) GetByID(_ context.Context, id int) (*domain.Route, error) {
	route, ok := s.routes[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *route
	return &copied, nil
}

func (s *stubRouteRepo) ListAll(_ context.Context) ([]domain.Route, error) {
	out := make([]domain.Route, 0, len(s.routes))
	for _, route := range s.routes {
		out = append(out, *route)
	}
	return out, nil
}

func (s *stubRouteRepo) ListByStatus(_ context.Context, statusID int) ([]domain.Route, error) {
	var out []domain.Route
	for _, route := range s.routes {
		if route.StatusID == statusID {
			out = append(out, *route)
		}
	}
	return out, nil
}

func (s *stubRouteRepo) ListByTraffic(_ context.Context, trafficID int) ([]domain.Route, error) {
	var out []domain.Route
	for _, route := range s.routes {
		if route.TrafficID == trafficID {
			out = append(out, *route)
		}
	}
	return out, nil
}

func (s *stubRouteRepo) ListOrderedByTraffic(_ context.Context) ([]domain.Route, error) {
	return s.ListAll(nil)
}

type stubStatusRepo struct{}

func (stubStatusRepo) ListAll(_ context.Context) ([]domain.RouteStatus, error) {
	return []domain.RouteStatus{{ID: 1, Name: "Activa"}, {ID: 2, Name: "Inactiva"}}, nil
}

func (stubStatusRepo) GetByName(_ context.Context, name string) (*domain.RouteStatus, error) {
	switch name {
	case "Activa":
		return &domain.RouteStatus{ID: 1, Name: "Activa"}, nil
	case "Inactiva":
		return &domain.RouteStatus{ID: 2, Name: "Inactiva"}, nil
	}
	return nil, pgx.ErrNoRows
}

type stubTrafficRepo struct{}

func (stubTrafficRepo) GetByLevel(_ context.Context, level string) (*domain.TrafficLevel, error) {
	if level == "Alto" {
		return &domain.TrafficLevel{ID: 3, Level: "Alto"}, nil
	}
	return nil, pgx.ErrNoRows
}

func ptr[T any](v T) *T { return &v }

func newRouteService(routes ...*domain.Route) *service.RouteService {
	return service.NewRouteService(newStubRouteRepo(routes...), stubStatusRepo{}, stubTrafficRepo{}, nil)
}

func TestRouteCreateRequiresFields(t *testing.T) {
	svc := newRouteService()

	_, err := svc.Create(context.Background(), "100", service.RouteCreateInput{
		DistanceKm: ptr(12.5),
	})
	assertDomainCode(t, err, "VALIDATION_FAILED")
}

func TestRouteCreateDefaultsStatus(t *testing.T) {
	svc := newRouteService()

	route, err := svc.Create(context.Background(), "100", service.RouteCreateInput{
		DistanceKm: ptr(12.5),
		AvgTimeMin: ptr(45.0),
		TrafficID:  ptr(3),
		Priority:   ptr(int16(1)),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, route.StatusID)
	assert.NotZero(t, route.ID)
}

func TestRouteCreateDuplicateID(t *testing.T) {
	svc := newRouteService(&domain.Route{ID: 7, StatusID: 1, TrafficID: 1, Priority: 1})

	_, err := svc.Create(context.Background(), "100", service.RouteCreateInput{
		ID:         7,
		DistanceKm: ptr(12.5),
		AvgTimeMin: ptr(45.0),
		TrafficID:  ptr(3),
		Priority:   ptr(int16(1)),
	})
	assertDomainCode(t, err, "CONFLICT")
}

func TestRouteUpdateMergesOnlySubmittedFields(t *testing.T) {
	svc := newRouteService(&domain.Route{
		ID:         7,
		Vehicle:    ptr("ABC-123"),
		Driver:     ptr("jperez"),
		StatusID:   1,
		DistanceKm: 12.5,
		AvgTimeMin: 45,
		TrafficID:  2,
		Priority:   1,
	})

	route, err := svc.Update(context.Background(), "100", 7, service.RouteUpdateInput{
		DistanceKm: ptr(20.0),
		StatusID:   ptr(2),
	})
	require.NoError(t, err)
	assert.Equal(t, 20.0, route.DistanceKm)
	assert.Equal(t, 2, route.StatusID)
	// untouched fields survive
	assert.Equal(t, "ABC-123", *route.Vehicle)
	assert.Equal(t, 45.0, route.AvgTimeMin)
	assert.Equal(t, int16(1), route.Priority)
}

func TestRouteUpdateMissing(t *testing.T) {
	svc := newRouteService()

	_, err := svc.Update(context.Background(), "100", 99, service.RouteUpdateInput{DistanceKm: ptr(1.0)})
	assertDomainCode(t, err, "NOT_FOUND")
}

func TestRouteDelete(t *testing.T) {
	svc := newRouteService(&domain.Route{ID: 7, StatusID: 1, TrafficID: 1, Priority: 1})
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, "100", 7))
	assertDomainCode(t, svc.Delete(ctx, "100", 7), "NOT_FOUND")
}

func TestRouteQueriesByLookupName(t *testing.T) {
	svc := newRouteService(
		&domain.Route{ID: 1, StatusID: 1, TrafficID: 3, Priority: 1},
		&domain.Route{ID: 2, StatusID: 2, TrafficID: 1, Priority: 2},
	)
	ctx := context.Background()

	routes, err := svc.FindByStatusName(ctx, "Activa")
	require.NoError(t, err)
	require.Len(t, routes, 1)
	assert.Equal(t, 1, routes[0].ID)

	_, err = svc.FindByStatusName(ctx, "Desconocido")
	assertDomainCode(t, err, "NOT_FOUND")

	routes, err = svc.FindByTrafficLevel(ctx, "Alto")
	require.NoError(t, err)
	require.Len(t, routes, 1)
	assert.Equal(t, 1, routes[0].ID)

	_, err = svc.FindByTrafficLevel(ctx, "Extremo")
	assertDomainCode(t, err, "NOT_FOUND")

	statuses, err := svc.ListStatuses(ctx)
	require.NoError(t, err)
	assert.Len(t, statuses, 2)
}
