package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/couriersync/courier-backoffice/internal/domain"
)

// RouteStatusRepository accesses the route status lookup table.
type RouteStatusRepository interface {
	ListAll(ctx context.Context) ([]domain.RouteStatus, error)
	GetByName(ctx context.Context, name string) (*domain.RouteStatus, error)
}

type routeStatusRepository struct {
	pool *pgxpool.Pool
}

// NewRouteStatusRepository returns a Postgres-backed implementation.
func NewRouteStatusRepository(pool *pgxpool.Pool) RouteStatusRepository {
	return &routeStatusRepository{pool: pool}
}

func (r *routeStatusRepository) ListAll(ctx context.Context) ([]domain.RouteStatus, error) {
	const query = `SELECT id_estado, nombre_estado FROM tbl_estados_ruta ORDER BY id_estado`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var statuses []domain.RouteStatus
	for rows.Next() {
		var status domain.RouteStatus
		if err := rows.Scan(&status.ID, &status.Name); err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}
	return statuses, rows.Err()
}

func (r *routeStatusRepository) GetByName(ctx context.Context, name string) (*domain.RouteStatus, error) {
	const query = `SELECT id_estado, nombre_estado FROM tbl_estados_ruta WHERE nombre_estado=$1`

	var status domain.RouteStatus
	if err := r.pool.QueryRow(ctx, query, name).Scan(&status.ID, &status.Name); err != nil {
		return nil, err
	}
	return &status, nil
}
