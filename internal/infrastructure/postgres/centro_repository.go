package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/gestion-centros/internal/domain/entity"
	"github.com/jhoicas/gestion-centros/internal/domain/repository"
)

// Asegura que CentroRepo implementa repository.CentroRepository.
var _ repository.CentroRepository = (*CentroRepo)(nil)

// CentroRepo implementación del puerto CentroRepository sobre PostgreSQL.
type CentroRepo struct {
	pool *pgxpool.Pool
}

// NewCentroRepository construye el adaptador de persistencia para centros.
func NewCentroRepository(pool *pgxpool.Pool) *CentroRepo {
	return &CentroRepo{pool: pool}
}

// List devuelve todos los centros ordenados por nombre.
func (r *CentroRepo) List(ctx context.Context) ([]*entity.Centro, error) {
	rows, err := r.pool.Query(ctx, `SELECT cen_id, cen_nombre FROM centros ORDER BY cen_nombre`)
	if err != nil {
		return nil, fmt.Errorf("list centros: %w", err)
	}
	defer rows.Close()
	var list []*entity.Centro
	for rows.Next() {
		var c entity.Centro
		if err := rows.Scan(&c.ID, &c.Nombre); err != nil {
			return nil, fmt.Errorf("scan centro: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// GetByID obtiene un centro por ID; (nil, nil) si no existe.
func (r *CentroRepo) GetByID(ctx context.Context, id int) (*entity.Centro, error) {
	var c entity.Centro
	err := r.pool.QueryRow(ctx, `SELECT cen_id, cen_nombre FROM centros WHERE cen_id = $1`, id).Scan(&c.ID, &c.Nombre)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get centro: %w", err)
	}
	return &c, nil
}
