package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/couriersync/courier-backoffice/internal/domain"
)

// RouteRepository encapsulates route persistence.
type RouteRepository interface {
	Create(ctx context.Context, route *domain.Route) error
	Update(ctx context.Context, route *domain.Route) error
	Delete(ctx context.Context, id int) error
	Exists(ctx context.Context, id int) (bool, error)
	GetByID(ctx context.Context, id int) (*domain.Route, error)
	ListAll(ctx context.Context) ([]domain.Route, error)
	ListByStatus(ctx context.Context, statusID int) ([]domain.Route, error)
	ListByTraffic(ctx context.Context, trafficID int) ([]domain.Route, error)
	ListOrderedByTraffic(ctx context.Context) ([]domain.Route, error)
}

type routeRepository struct {
	pool *pgxpool.Pool
}

// NewRouteRepository instantiates repository.
func NewRouteRepository(pool *pgxpool.Pool) RouteRepository {
	return &routeRepository{pool: pool}
}

const routeColumns = `id_ruta, vehiculo_asociado, conductor_asignado, id_estado, distancia_total, tiempo_promedio, id_trafico, prioridad`

func (r *routeRepository) Create(ctx context.Context, route *domain.Route) error {
	if route.ID > 0 {
		const query = `
            INSERT INTO tbl_rutas (id_ruta, vehiculo_asociado, conductor_asignado, id_estado, distancia_total, tiempo_promedio, id_trafico, prioridad)
            VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
		_, err := r.pool.Exec(ctx, query,
			route.ID,
			route.Vehicle,
			route.Driver,
			route.StatusID,
			route.DistanceKm,
			route.AvgTimeMin,
			route.TrafficID,
			route.Priority,
		)
		return err
	}

	const query = `
        INSERT INTO tbl_rutas (vehiculo_asociado, conductor_asignado, id_estado, distancia_total, tiempo_promedio, id_trafico, prioridad)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id_ruta`
	return r.pool.QueryRow(ctx, query,
		route.Vehicle,
		route.Driver,
		route.StatusID,
		route.DistanceKm,
		route.AvgTimeMin,
		route.TrafficID,
		route.Priority,
	).Scan(&route.ID)
}

func (r *routeRepository) Update(ctx context.Context, route *domain.Route) error {
	const query = `
        UPDATE tbl_rutas SET vehiculo_asociado=$1, conductor_asignado=$2, id_estado=$3,
            distancia_total=$4, tiempo_promedio=$5, id_trafico=$6, prioridad=$7
        WHERE id_ruta=$8`
	cmd, err := r.pool.Exec(ctx, query,
		route.Vehicle,
		route.Driver,
		route.StatusID,
		route.DistanceKm,
		route.AvgTimeMin,
		route.TrafficID,
		route.Priority,
		route.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *routeRepository) Delete(ctx context.Context, id int) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM tbl_rutas WHERE id_ruta=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *routeRepository) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM tbl_rutas WHERE id_ruta=$1)`, id).Scan(&exists)
	return exists, err
}

func (r *routeRepository) GetByID(ctx context.Context, id int) (*domain.Route, error) {
	query := `SELECT ` + routeColumns + ` FROM tbl_rutas WHERE id_ruta=$1`

	var route domain.Route
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&route.ID,
		&route.Vehicle,
		&route.Driver,
		&route.StatusID,
		&route.DistanceKm,
		&route.AvgTimeMin,
		&route.TrafficID,
		&route.Priority,
	); err != nil {
		return nil, err
	}
	return &route, nil
}

func (r *routeRepository) ListAll(ctx context.Context) ([]domain.Route, error) {
	return r.list(ctx, `SELECT `+routeColumns+` FROM tbl_rutas ORDER BY id_ruta`)
}

func (r *routeRepository) ListByStatus(ctx context.Context, statusID int) ([]domain.Route, error) {
	return r.list(ctx, `SELECT `+routeColumns+` FROM tbl_rutas WHERE id_estado=$1 ORDER BY id_ruta`, statusID)
}

func (r *routeRepository) ListByTraffic(ctx context.Context, trafficID int) ([]domain.Route, error) {
	return r.list(ctx, `SELECT `+routeColumns+` FROM tbl_rutas WHERE id_trafico=$1 ORDER BY id_ruta`, trafficID)
}

func (r *routeRepository) ListOrderedByTraffic(ctx context.Context) ([]domain.Route, error) {
	return r.list(ctx, `SELECT `+routeColumns+` FROM tbl_rutas ORDER BY id_trafico ASC, id_ruta`)
}

func (r *routeRepository) list(ctx context.Context, query string, args ...any) ([]domain.Route, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routes []domain.Route
	for rows.Next() {
		var route domain.Route
		if err := rows.Scan(
			&route.ID,
			&route.Vehicle,
			&route.Driver,
			&route.StatusID,
			&route.DistanceKm,
			&route.AvgTimeMin,
			&route.TrafficID,
			&route.Priority,
		); err != nil {
			return nil, err
		}
		routes = append(routes, route)
	}
	return routes, rows.Err()
}
