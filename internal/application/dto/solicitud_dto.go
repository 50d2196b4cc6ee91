package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSolicitudRequest entrada para registrar una solicitud de almacén.
type CreateSolicitudRequest struct {
	Producto    string          `json:"producto"`
	Cantidad    decimal.Decimal `json:"cantidad"`
	Unidad      string          `json:"unidad"`
	Observacion string          `json:"observacion"`
}

// CambiarEstadoRequest nuevo estado de una solicitud.
type CambiarEstadoRequest struct {
	Estado string `json:"estado"`
}

// SolicitudResponse salida de una solicitud de almacén.
type SolicitudResponse struct {
	ID          string          `json:"id"`
	Cedula      int64           `json:"usr_cedula"`
	CentroID    int             `json:"cen_id"`
	Producto    string          `json:"producto"`
	Cantidad    decimal.Decimal `json:"cantidad"`
	Unidad      string          `json:"unidad"`
	Observacion string          `json:"observacion"`
	Estado      string          `json:"estado"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// SolicitudListResponse lista paginada de solicitudes.
type SolicitudListResponse struct {
	Items []SolicitudResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
