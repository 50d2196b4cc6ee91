package repository

import (
	"context"

	"github.com/jhoicas/gestion-centros/internal/domain/entity"
)

// CentroRepository puerto de lectura de centros de formación.
type CentroRepository interface {
	List(ctx context.Context) ([]*entity.Centro, error)
	GetByID(ctx context.Context, id int) (*entity.Centro, error)
}
