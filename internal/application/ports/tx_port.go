package ports

import (
	"context"

	"github.com/jhoicas/gestion-centros/internal/domain/repository"
)

// SolicitudTxRunner ejecuta fn dentro de una transacción, con el repositorio de solicitudes
// atado a ella. Si fn devuelve error no se confirma nada.
type SolicitudTxRunner interface {
	RunSolicitud(ctx context.Context, fn func(repo repository.SolicitudRepository) error) error
}
