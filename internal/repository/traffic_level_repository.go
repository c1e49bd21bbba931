package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/couriersync/courier-backoffice/internal/domain"
)

// TrafficLevelRepository accesses the traffic level lookup table.
type TrafficLevelRepository interface {
	GetByLevel(ctx context.Context, level string) (*domain.TrafficLevel, error)
}

type trafficLevelRepository struct {
	pool *pgxpool.Pool
}

// NewTrafficLevelRepository returns a Postgres-backed implementation.
func NewTrafficLevelRepository(pool *pgxpool.Pool) TrafficLevelRepository {
	return &trafficLevelRepository{pool: pool}
}

func (r *trafficLevelRepository) GetByLevel(ctx context.Context, level string) (*domain.TrafficLevel, error) {
	const query = `SELECT id_trafico, nivel_trafico FROM tbl_tipos_trafico WHERE nivel_trafico=$1`

	var traffic domain.TrafficLevel
	if err := r.pool.QueryRow(ctx, query, level).Scan(&traffic.ID, &traffic.Level); err != nil {
		return nil, err
	}
	return &traffic, nil
}
