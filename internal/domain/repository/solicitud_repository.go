package repository

import (
	"context"

	"github.com/jhoicas/gestion-centros/internal/domain/entity"
)

// SolicitudRepository define el puerto de persistencia para solicitudes de almacén.
type SolicitudRepository interface {
	Create(ctx context.Context, s *entity.SolicitudAlmacen) error
	GetByID(ctx context.Context, id string) (*entity.SolicitudAlmacen, error)
	// List filtra por solicitante cuando cedula > 0; con 0 devuelve todas.
	List(ctx context.Context, cedula int64, limit, offset int) ([]*entity.SolicitudAlmacen, error)
	UpdateEstado(ctx context.Context, id, estado string) error
}
