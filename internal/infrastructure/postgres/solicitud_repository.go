package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/gestion-centros/internal/domain"
	"github.com/jhoicas/gestion-centros/internal/domain/entity"
	"github.com/jhoicas/gestion-centros/internal/domain/repository"
)

var _ repository.SolicitudRepository = (*SolicitudRepo)(nil)

const solicitudColumns = `id, usr_cedula, cen_id, producto, cantidad, unidad, observacion, estado, created_at, updated_at`

// SolicitudRepo implementación del puerto SolicitudRepository sobre PostgreSQL (pool o tx).
// cantidad es NUMERIC y se mapea a decimal.Decimal vía el codec registrado en NewPool.
type SolicitudRepo struct {
	q         Querier
	forUpdate bool // dentro de TxRunner: GetByID bloquea la fila
}

// NewSolicitudRepository construye el adaptador de persistencia para solicitudes de almacén.
func NewSolicitudRepository(pool *pgxpool.Pool) *SolicitudRepo {
	return &SolicitudRepo{q: pool}
}

// Create persiste una nueva solicitud.
func (r *SolicitudRepo) Create(ctx context.Context, s *entity.SolicitudAlmacen) error {
	query := `
		INSERT INTO solicitudes_almacen (` + solicitudColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.Cedula, s.CentroID, s.Producto, s.Cantidad, s.Unidad, s.Observacion, s.Estado,
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert solicitud: %w", err)
	}
	return nil
}

// GetByID obtiene una solicitud; (nil, nil) si no existe.
func (r *SolicitudRepo) GetByID(ctx context.Context, id string) (*entity.SolicitudAlmacen, error) {
	query := `SELECT ` + solicitudColumns + ` FROM solicitudes_almacen WHERE id = $1`
	if r.forUpdate {
		query += ` FOR UPDATE`
	}
	s, err := scanSolicitud(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get solicitud: %w", err)
	}
	return s, nil
}

// List lista solicitudes recientes primero; cedula > 0 filtra por solicitante.
func (r *SolicitudRepo) List(ctx context.Context, cedula int64, limit, offset int) ([]*entity.SolicitudAlmacen, error) {
	query := `
		SELECT ` + solicitudColumns + `
		FROM solicitudes_almacen
		WHERE ($1::bigint = 0 OR usr_cedula = $1)
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, cedula, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list solicitudes: %w", err)
	}
	defer rows.Close()
	var list []*entity.SolicitudAlmacen
	for rows.Next() {
		s, err := scanSolicitud(rows)
		if err != nil {
			return nil, fmt.Errorf("scan solicitud: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// UpdateEstado cambia el estado. ErrNotFound si no afectó filas.
func (r *SolicitudRepo) UpdateEstado(ctx context.Context, id, estado string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE solicitudes_almacen SET estado = $2, updated_at = now() WHERE id = $1`, id, estado)
	if err != nil {
		return fmt.Errorf("update estado solicitud: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanSolicitud(row pgx.Row) (*entity.SolicitudAlmacen, error) {
	var s entity.SolicitudAlmacen
	err := row.Scan(&s.ID, &s.Cedula, &s.CentroID, &s.Producto, &s.Cantidad, &s.Unidad,
		&s.Observacion, &s.Estado, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
