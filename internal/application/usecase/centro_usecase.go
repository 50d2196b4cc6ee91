package usecase

import (
	"context"

	"github.com/jhoicas/gestion-centros/internal/application/dto"
	"github.com/jhoicas/gestion-centros/internal/domain/repository"
)

// CentroUseCase consulta de centros de formación.
type CentroUseCase struct {
	repo repository.CentroRepository
}

// NewCentroUseCase construye el caso de uso.
func NewCentroUseCase(repo repository.CentroRepository) *CentroUseCase {
	return &CentroUseCase{repo: repo}
}

// List devuelve todos los centros envueltos en "data".
func (uc *CentroUseCase) List(ctx context.Context) (*dto.CentroListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.CentroListResponse{Data: make([]dto.CentroResponse, 0, len(list))}
	for _, c := range list {
		out.Data = append(out.Data, dto.CentroResponse{ID: c.ID, Nombre: c.Nombre})
	}
	return out, nil
}
