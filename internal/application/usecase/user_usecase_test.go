package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-centros/internal/application/dto"
	"github.com/jhoicas/gestion-centros/internal/application/ports"
	"github.com/jhoicas/gestion-centros/internal/application/usecase"
	"github.com/jhoicas/gestion-centros/internal/domain"
	"github.com/jhoicas/gestion-centros/internal/domain/entity"
	"github.com/jhoicas/gestion-centros/internal/infrastructure/memory"
)

type fakeReport struct {
	rows []ports.UserReportRow
}

func (f *fakeReport) GenerateUserReport(_ context.Context, rows []ports.UserReportRow) ([]byte, error) {
	f.rows = rows
	return []byte("%PDF-fake"), nil
}

func ptr[T any](v T) *T { return &v }

func newUserUseCase() (*usecase.UserUseCase, *memory.UserRepo, *fakeReport) {
	users := memory.NewUserRepository(
		&entity.User{Cedula: 10, PrimerNombre: "Ana", PrimerApellido: "Gómez", Correo: "ana@c.co", CentroID: 1, TipoUsuario: entity.TipoInstructor, Activo: true},
		&entity.User{Cedula: 20, PrimerNombre: "Luis", PrimerApellido: "Pérez", Correo: "luis@c.co", CentroID: 99, TipoUsuario: entity.TipoAlmacen, Activo: true},
	)
	centros := memory.NewCentroRepository(
		entity.Centro{ID: 1, Nombre: "Centro Agropecuario"},
		entity.Centro{ID: 2, Nombre: "Centro de Comercio"},
	)
	report := &fakeReport{}
	return usecase.NewUserUseCase(users, centros, report), users, report
}

func TestUserUseCase_ListYGet(t *testing.T) {
	uc, _, _ := newUserUseCase()
	ctx := context.Background()

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(10), list[0].Cedula)
	assert.Equal(t, int(entity.TipoInstructor), list[0].TipoUsuarioID)

	u, err := uc.GetByCedula(ctx, 20)
	require.NoError(t, err)
	assert.Equal(t, "luis@c.co", u.Correo)

	u, err = uc.GetByCedula(ctx, 404)
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestUserUseCase_UpdateParcial(t *testing.T) {
	uc, repo, _ := newUserUseCase()
	ctx := context.Background()

	out, err := uc.Update(ctx, 10, dto.UpdateUserRequest{
		SegundoNombre: ptr("María"),
		Correo:        ptr("  ANA.G@c.co "),
		CentroID:      ptr(2),
		TipoUsuarioID: ptr(int(entity.TipoAdministrador)),
	})
	require.NoError(t, err)
	assert.Equal(t, "ana.g@c.co", out.Correo)
	assert.Equal(t, 2, out.CentroID)

	stored, err := repo.GetByCedula(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, "María", stored.SegundoNombre)
	assert.Equal(t, "Gómez", stored.PrimerApellido, "los campos omitidos no cambian")
	assert.Equal(t, entity.TipoAdministrador, stored.TipoUsuario)
}

func TestUserUseCase_UpdateErrores(t *testing.T) {
	uc, _, _ := newUserUseCase()
	ctx := context.Background()

	_, err := uc.Update(ctx, 404, dto.UpdateUserRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Update(ctx, 10, dto.UpdateUserRequest{CentroID: ptr(77)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "centro inexistente")

	_, err = uc.Update(ctx, 10, dto.UpdateUserRequest{TipoUsuarioID: ptr(9)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo inexistente")

	_, err = uc.Update(ctx, 10, dto.UpdateUserRequest{PrimerNombre: ptr("  ")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "nombre requerido")

	_, err = uc.Update(ctx, 10, dto.UpdateUserRequest{Correo: ptr("luis@c.co")})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestUserUseCase_Delete(t *testing.T) {
	uc, repo, _ := newUserUseCase()
	ctx := context.Background()

	assert.ErrorIs(t, uc.Delete(ctx, 20, 20), domain.ErrConflict, "no se elimina a sí mismo")
	u, err := repo.GetByCedula(ctx, 20)
	require.NoError(t, err)
	require.NotNil(t, u)

	require.NoError(t, uc.Delete(ctx, 10, 20))
	u, err = repo.GetByCedula(ctx, 20)
	require.NoError(t, err)
	assert.Nil(t, u)

	assert.ErrorIs(t, uc.Delete(ctx, 10, 20), domain.ErrNotFound)
}

func TestUserUseCase_ReportResuelveCentro(t *testing.T) {
	uc, _, report := newUserUseCase()

	pdf, err := uc.Report(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(pdf))

	require.Len(t, report.rows, 2)
	assert.Equal(t, "Centro Agropecuario", report.rows[0].Centro)
	assert.Equal(t, "N/A", report.rows[1].Centro, "centro 99 no existe")
}
