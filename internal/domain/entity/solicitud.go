package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una solicitud de almacén.
const (
	EstadoPendiente = "pendiente"
	EstadoAprobada  = "aprobada"
	EstadoRechazada = "rechazada"
	EstadoEntregada = "entregada"
)

// SolicitudAlmacen pedido de material que un instructor hace al almacén de su centro.
type SolicitudAlmacen struct {
	ID          string
	Cedula      int64 // solicitante
	CentroID    int
	Producto    string
	Cantidad    decimal.Decimal
	Unidad      string
	Observacion string
	Estado      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PuedeCambiarA indica si la transición desde el estado actual a nuevo es válida.
// pendiente -> aprobada | rechazada; aprobada -> entregada.
func (s *SolicitudAlmacen) PuedeCambiarA(nuevo string) bool {
	switch s.Estado {
	case EstadoPendiente:
		return nuevo == EstadoAprobada || nuevo == EstadoRechazada
	case EstadoAprobada:
		return nuevo == EstadoEntregada
	}
	return false
}
