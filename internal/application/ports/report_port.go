package ports

import (
	"context"

	"github.com/jhoicas/gestion-centros/internal/domain/entity"
)

// UserReportRow fila del reporte de usuarios con el centro ya resuelto.
type UserReportRow struct {
	User   *entity.User
	Centro string
}

// UserReportGenerator genera el reporte PDF del listado de usuarios.
type UserReportGenerator interface {
	GenerateUserReport(ctx context.Context, rows []UserReportRow) ([]byte, error)
}
