package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/gestion-centros/internal/domain"
	"github.com/jhoicas/gestion-centros/internal/domain/entity"
	"github.com/jhoicas/gestion-centros/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `usr_cedula, usr_primer_nombre, usr_segundo_nombre, usr_primer_apellido, usr_segundo_apellido,
	usr_correo, usr_telefono, cen_id, tip_usr_id, usr_password_hash, usr_activo, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO usuarios (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.pool.Exec(ctx, query,
		user.Cedula, user.PrimerNombre, user.SegundoNombre, user.PrimerApellido, user.SegundoApellido,
		user.Correo, user.Telefono, user.CentroID, int(user.TipoUsuario), user.PasswordHash, user.Activo,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

// GetByCedula obtiene un usuario por cédula.
func (r *UserRepo) GetByCedula(ctx context.Context, cedula int64) (*entity.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM usuarios WHERE usr_cedula = $1`, cedula))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario by cedula: %w", err)
	}
	return u, nil
}

// GetByCorreo obtiene un usuario por correo (ya normalizado en minúsculas).
func (r *UserRepo) GetByCorreo(ctx context.Context, correo string) (*entity.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM usuarios WHERE lower(usr_correo) = $1 LIMIT 1`, correo))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario by correo: %w", err)
	}
	return u, nil
}

// Update actualiza los datos de perfil (no la contraseña).
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE usuarios SET usr_primer_nombre = $2, usr_segundo_nombre = $3, usr_primer_apellido = $4,
			usr_segundo_apellido = $5, usr_correo = $6, usr_telefono = $7, cen_id = $8, tip_usr_id = $9,
			usr_activo = $10, updated_at = $11
		WHERE usr_cedula = $1`
	_, err := r.pool.Exec(ctx, query,
		user.Cedula, user.PrimerNombre, user.SegundoNombre, user.PrimerApellido, user.SegundoApellido,
		user.Correo, user.Telefono, user.CentroID, int(user.TipoUsuario), user.Activo, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update usuario: %w", err)
	}
	return nil
}

// UpdatePassword reemplaza el hash de la contraseña.
func (r *UserRepo) UpdatePassword(ctx context.Context, cedula int64, hash string) error {
	_, err := r.pool.Exec(ctx, `UPDATE usuarios SET usr_password_hash = $2, updated_at = now() WHERE usr_cedula = $1`, cedula, hash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// List lista todos los usuarios ordenados por cédula.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM usuarios ORDER BY usr_cedula`)
	if err != nil {
		return nil, fmt.Errorf("list usuarios: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan usuario: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// Delete elimina un usuario por cédula.
func (r *UserRepo) Delete(ctx context.Context, cedula int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM usuarios WHERE usr_cedula = $1`, cedula)
	if err != nil {
		return fmt.Errorf("delete usuario: %w", err)
	}
	return nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	var tipo int
	err := row.Scan(
		&u.Cedula, &u.PrimerNombre, &u.SegundoNombre, &u.PrimerApellido, &u.SegundoApellido,
		&u.Correo, &u.Telefono, &u.CentroID, &tipo, &u.PasswordHash, &u.Activo,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.TipoUsuario = entity.TipoUsuario(tipo)
	return &u, nil
}
