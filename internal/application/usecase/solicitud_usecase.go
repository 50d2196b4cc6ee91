package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/gestion-centros/internal/application/dto"
	"github.com/jhoicas/gestion-centros/internal/application/ports"
	"github.com/jhoicas/gestion-centros/internal/domain"
	"github.com/jhoicas/gestion-centros/internal/domain/entity"
	"github.com/jhoicas/gestion-centros/internal/domain/repository"
)

// SolicitudUseCase casos de uso de solicitudes de almacén.
type SolicitudUseCase struct {
	repo repository.SolicitudRepository
	tx   ports.SolicitudTxRunner
}

// NewSolicitudUseCase construye el caso de uso. tx hace atómico el cambio de estado.
func NewSolicitudUseCase(repo repository.SolicitudRepository, tx ports.SolicitudTxRunner) *SolicitudUseCase {
	return &SolicitudUseCase{repo: repo, tx: tx}
}

// Create registra una solicitud en estado pendiente a nombre del solicitante.
func (uc *SolicitudUseCase) Create(ctx context.Context, cedula int64, centroID int, in dto.CreateSolicitudRequest) (*dto.SolicitudResponse, error) {
	producto := strings.TrimSpace(in.Producto)
	if producto == "" || !in.Cantidad.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	s := &entity.SolicitudAlmacen{
		ID:          uuid.New().String(),
		Cedula:      cedula,
		CentroID:    centroID,
		Producto:    producto,
		Cantidad:    in.Cantidad,
		Unidad:      strings.TrimSpace(in.Unidad),
		Observacion: strings.TrimSpace(in.Observacion),
		Estado:      entity.EstadoPendiente,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return toSolicitudResponse(s), nil
}

// List lista solicitudes. Con cedula > 0 solo las de ese solicitante.
func (uc *SolicitudUseCase) List(ctx context.Context, cedula int64, page dto.PageRequest) (*dto.SolicitudListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, cedula, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SolicitudResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSolicitudResponse(s))
	}
	return &dto.SolicitudListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// CambiarEstado aplica una transición válida. ErrNotFound si no existe;
// ErrInvalidTransition si el estado actual no permite el cambio.
func (uc *SolicitudUseCase) CambiarEstado(ctx context.Context, id, estado string) (*dto.SolicitudResponse, error) {
	var s *entity.SolicitudAlmacen
	err := uc.tx.RunSolicitud(ctx, func(repo repository.SolicitudRepository) error {
		var err error
		s, err = repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrNotFound
		}
		if !s.PuedeCambiarA(estado) {
			return domain.ErrInvalidTransition
		}
		return repo.UpdateEstado(ctx, id, estado)
	})
	if err != nil {
		return nil, err
	}
	s.Estado = estado
	s.UpdatedAt = time.Now()
	return toSolicitudResponse(s), nil
}

func toSolicitudResponse(s *entity.SolicitudAlmacen) *dto.SolicitudResponse {
	return &dto.SolicitudResponse{
		ID:          s.ID,
		Cedula:      s.Cedula,
		CentroID:    s.CentroID,
		Producto:    s.Producto,
		Cantidad:    s.Cantidad,
		Unidad:      s.Unidad,
		Observacion: s.Observacion,
		Estado:      s.Estado,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
