package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/couriersync/courier-backoffice/internal/domain"
)

// UserRepository defines persistence access for registered accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByCedula(ctx context.Context, cedula string) (*domain.User, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO tbl_usuarios (cedula, usuario, nombre_completo, email, contrasena_hash, id_rol, mfa_enabled)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		user.Cedula,
		user.Username,
		user.FullName,
		user.Email,
		user.PasswordHash,
		user.RoleID,
		user.MFAEnabled,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	const query = `
        SELECT cedula, usuario, nombre_completo, email, contrasena_hash, id_rol, mfa_enabled, created_at, updated_at
        FROM tbl_usuarios WHERE usuario=$1`
	return r.fetchSingle(ctx, query, username)
}

func (r *userRepository) GetByCedula(ctx context.Context, cedula string) (*domain.User, error) {
	const query = `
        SELECT cedula, usuario, nombre_completo, email, contrasena_hash, id_rol, mfa_enabled, created_at, updated_at
        FROM tbl_usuarios WHERE cedula=$1`
	return r.fetchSingle(ctx, query, cedula)
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.Cedula,
		&user.Username,
		&user.FullName,
		&user.Email,
		&user.PasswordHash,
		&user.RoleID,
		&user.MFAEnabled,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}
