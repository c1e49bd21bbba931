package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/couriersync/courier-backoffice/internal/domain"
)

// AuditRepository persists the audit trail.
type AuditRepository interface {
	Insert(ctx context.Context, record *domain.AuditRecord) error
	ListRecent(ctx context.Context, limit int) ([]domain.AuditRecord, error)
}

type auditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository returns a Postgres-backed implementation.
func NewAuditRepository(pool *pgxpool.Pool) AuditRepository {
	return &auditRepository{pool: pool}
}

func (r *auditRepository) Insert(ctx context.Context, record *domain.AuditRecord) error {
	const query = `
        INSERT INTO tbl_auditoria (id, tipo_evento, cedula_actor, detalle, ocurrido_en)
        VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, query,
		record.ID,
		record.EventType,
		record.ActorCedula,
		record.Detail,
		record.OccurredAt,
	)
	return err
}

func (r *auditRepository) ListRecent(ctx context.Context, limit int) ([]domain.AuditRecord, error) {
	const query = `
        SELECT id, tipo_evento, cedula_actor, detalle, ocurrido_en
        FROM tbl_auditoria ORDER BY ocurrido_en DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.AuditRecord
	for rows.Next() {
		var record domain.AuditRecord
		if err := rows.Scan(
			&record.ID,
			&record.EventType,
			&record.ActorCedula,
			&record.Detail,
			&record.OccurredAt,
		); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
