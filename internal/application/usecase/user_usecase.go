package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/gestion-centros/internal/application/dto"
	"github.com/jhoicas/gestion-centros/internal/application/ports"
	"github.com/jhoicas/gestion-centros/internal/domain"
	"github.com/jhoicas/gestion-centros/internal/domain/entity"
	"github.com/jhoicas/gestion-centros/internal/domain/repository"
)

// centroSinNombre etiqueta para usuarios cuyo centro no existe.
const centroSinNombre = "N/A"

// UserUseCase aplica reglas de negocio para la administración de usuarios.
type UserUseCase struct {
	repo    repository.UserRepository
	centros repository.CentroRepository
	report  ports.UserReportGenerator
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, centros repository.CentroRepository, report ports.UserReportGenerator) *UserUseCase {
	return &UserUseCase{repo: repo, centros: centros, report: report}
}

// List devuelve todos los usuarios.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserBackend, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserBackend, 0, len(list))
	for _, u := range list {
		out = append(out, toUserBackend(u))
	}
	return out, nil
}

// GetByCedula obtiene un usuario; (nil, nil) si no existe.
func (uc *UserUseCase) GetByCedula(ctx context.Context, cedula int64) (*dto.UserBackend, error) {
	user, err := uc.repo.GetByCedula(ctx, cedula)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	out := toUserBackend(user)
	return &out, nil
}

// Update aplica una actualización parcial. ErrNotFound si el usuario no existe;
// ErrInvalidInput si el centro o el tipo de usuario no son válidos.
func (uc *UserUseCase) Update(ctx context.Context, cedula int64, in dto.UpdateUserRequest) (*dto.UserBackend, error) {
	user, err := uc.repo.GetByCedula(ctx, cedula)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if in.PrimerNombre != nil {
		user.PrimerNombre = strings.TrimSpace(*in.PrimerNombre)
	}
	if in.SegundoNombre != nil {
		user.SegundoNombre = strings.TrimSpace(*in.SegundoNombre)
	}
	if in.PrimerApellido != nil {
		user.PrimerApellido = strings.TrimSpace(*in.PrimerApellido)
	}
	if in.SegundoApellido != nil {
		user.SegundoApellido = strings.TrimSpace(*in.SegundoApellido)
	}
	if in.Correo != nil {
		user.Correo = strings.ToLower(strings.TrimSpace(*in.Correo))
	}
	if in.Telefono != nil {
		user.Telefono = strings.TrimSpace(*in.Telefono)
	}
	if in.CentroID != nil {
		centro, err := uc.centros.GetByID(ctx, *in.CentroID)
		if err != nil {
			return nil, err
		}
		if centro == nil {
			return nil, domain.ErrInvalidInput
		}
		user.CentroID = centro.ID
	}
	if in.TipoUsuarioID != nil {
		tipo := entity.TipoUsuario(*in.TipoUsuarioID)
		if !tipo.Valid() {
			return nil, domain.ErrInvalidInput
		}
		user.TipoUsuario = tipo
	}
	if user.PrimerNombre == "" || user.PrimerApellido == "" || user.Correo == "" {
		return nil, domain.ErrInvalidInput
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	out := toUserBackend(user)
	return &out, nil
}

// Delete elimina un usuario a pedido de actor. ErrConflict si actor intenta eliminarse a sí mismo;
// ErrNotFound si no existe.
func (uc *UserUseCase) Delete(ctx context.Context, actor, cedula int64) error {
	if actor == cedula {
		return domain.ErrConflict
	}
	user, err := uc.repo.GetByCedula(ctx, cedula)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, cedula)
}

// Report genera el PDF del listado de usuarios con el nombre del centro resuelto.
func (uc *UserUseCase) Report(ctx context.Context) ([]byte, error) {
	users, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	centros, err := uc.centros.List(ctx)
	if err != nil {
		return nil, err
	}
	nombres := make(map[int]string, len(centros))
	for _, c := range centros {
		nombres[c.ID] = c.Nombre
	}
	rows := make([]ports.UserReportRow, 0, len(users))
	for _, u := range users {
		nombre, ok := nombres[u.CentroID]
		if !ok {
			nombre = centroSinNombre
		}
		rows = append(rows, ports.UserReportRow{User: u, Centro: nombre})
	}
	return uc.report.GenerateUserReport(ctx, rows)
}

func toUserBackend(u *entity.User) dto.UserBackend {
	return dto.UserBackend{
		Cedula:          u.Cedula,
		PrimerNombre:    u.PrimerNombre,
		SegundoNombre:   u.SegundoNombre,
		PrimerApellido:  u.PrimerApellido,
		SegundoApellido: u.SegundoApellido,
		Correo:          u.Correo,
		Telefono:        u.Telefono,
		CentroID:        u.CentroID,
		TipoUsuarioID:   int(u.TipoUsuario),
	}
}
