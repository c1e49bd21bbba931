package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/couriersync/courier-backoffice/internal/domain"
)

// RoleRepository lists the role table backing the role directory.
type RoleRepository interface {
	ListAll(ctx context.Context) ([]domain.Role, error)
}

type roleRepository struct {
	pool *pgxpool.Pool
}

// NewRoleRepository returns a Postgres-backed implementation.
func NewRoleRepository(pool *pgxpool.Pool) RoleRepository {
	return &roleRepository{pool: pool}
}

func (r *roleRepository) ListAll(ctx context.Context) ([]domain.Role, error) {
	const query = `SELECT id_rol, nombre_rol FROM tbl_roles ORDER BY id_rol`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []domain.Role
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}
