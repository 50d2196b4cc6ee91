package admin

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-centros/internal/application/dto"
)

// ──────────────────────────────────────────────────────────────────────────────
// Backend en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeBackend struct {
	mu        sync.Mutex
	calls     []string
	centros   []dto.CentroResponse
	users     []dto.UserBackend
	centroErr error
	usersErr  error
	updateErr error
	updated   []dto.UpdateUserRequest
	deleted   []int64
	// beforeUsers se ejecuta dentro de GetUsers (para simular cargas solapadas).
	beforeUsers func()
}

func (f *fakeBackend) record(op string) {
	f.mu.Lock()
	f.calls = append(f.calls, op)
	f.mu.Unlock()
}

func (f *fakeBackend) GetCentros(context.Context) ([]dto.CentroResponse, error) {
	f.record("centros")
	return f.centros, f.centroErr
}

func (f *fakeBackend) GetUsers(context.Context) ([]dto.UserBackend, error) {
	f.record("usuarios")
	if hook := f.beforeUsers; hook != nil {
		f.beforeUsers = nil
		hook()
	}
	return f.users, f.usersErr
}

func (f *fakeBackend) UpdateUser(_ context.Context, cedula int64, in dto.UpdateUserRequest) (*dto.UserBackend, error) {
	f.record("update")
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.updated = append(f.updated, in)
	for i := range f.users {
		if f.users[i].Cedula == cedula && in.PrimerApellido != nil {
			f.users[i].PrimerApellido = *in.PrimerApellido
		}
	}
	return &dto.UserBackend{Cedula: cedula}, nil
}

func (f *fakeBackend) DeleteUser(_ context.Context, cedula int64) error {
	f.record("delete")
	f.deleted = append(f.deleted, cedula)
	out := f.users[:0]
	for _, u := range f.users {
		if u.Cedula != cedula {
			out = append(out, u)
		}
	}
	f.users = out
	return nil
}

func newBackend() *fakeBackend {
	return &fakeBackend{
		centros: []dto.CentroResponse{
			{ID: 1, Nombre: "Centro Agropecuario"},
			{ID: 2, Nombre: "Centro de Comercio"},
		},
		users: []dto.UserBackend{
			{Cedula: 1234567, PrimerNombre: "Óscar", PrimerApellido: "Ruiz", Correo: "oscar@c.co", CentroID: 1, TipoUsuarioID: 2},
			{Cedula: 7654321, PrimerNombre: "ana", PrimerApellido: "Zapata", Correo: "Ana.Z@c.co", CentroID: 2, TipoUsuarioID: 1},
			{Cedula: 5550123, PrimerNombre: "Beatriz", SegundoNombre: "Elena", PrimerApellido: "Núñez", Correo: "bea@otro.co", CentroID: 99, TipoUsuarioID: 3},
			{Cedula: 999, PrimerNombre: "Ana", PrimerApellido: "Álvarez", Correo: "alvarez@c.co", CentroID: 1, TipoUsuarioID: 2},
		},
	}
}

func loaded(t *testing.T) (*Controller, *fakeBackend) {
	t.Helper()
	b := newBackend()
	c := NewController(b, zerolog.Nop())
	require.NoError(t, c.Load(context.Background()))
	return c, b
}

func cedulas(users []User) []int64 {
	out := make([]int64, 0, len(users))
	for _, u := range users {
		out = append(out, u.Cedula)
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Carga
// ──────────────────────────────────────────────────────────────────────────────

func TestLoad_CentrosAntesQueUsuariosYEnriquece(t *testing.T) {
	c, b := loaded(t)

	assert.Equal(t, []string{"centros", "usuarios"}, b.calls)

	byCedula := map[int64]User{}
	for _, u := range c.Results() {
		byCedula[u.Cedula] = u
	}
	assert.Equal(t, "Centro Agropecuario", byCedula[1234567].Centro)
	assert.Equal(t, "Instructor", byCedula[1234567].TipoUsuario)
	assert.Equal(t, CentroDesconocido, byCedula[5550123].Centro)
	assert.Equal(t, "Almacen", byCedula[5550123].TipoUsuario)
}

func TestLoad_FalloConservaListaAnterior(t *testing.T) {
	c, b := loaded(t)
	before := c.Results()

	b.usersErr = errors.New("503")
	assert.Error(t, c.Load(context.Background()))
	assert.Equal(t, before, c.Results())

	b.usersErr = nil
	b.centroErr = errors.New("timeout")
	b.calls = nil
	assert.Error(t, c.Load(context.Background()))
	assert.Equal(t, []string{"centros"}, b.calls, "sin centros no se piden usuarios")
	assert.Equal(t, before, c.Results())
}

func TestLoad_DescartaCargaVieja(t *testing.T) {
	b := newBackend()
	c := NewController(b, zerolog.Nop())

	// Mientras la primera carga espera usuarios, otra carga más nueva termina con un solo usuario.
	full := b.users
	b.beforeUsers = func() {
		b.users = full[:1]
		require.NoError(t, c.Load(context.Background()))
		b.users = full
	}
	err := c.Load(context.Background())
	assert.ErrorIs(t, err, ErrStale)
	assert.Equal(t, []int64{1234567}, cedulas(c.Results()), "gana la carga más reciente")
}

// ──────────────────────────────────────────────────────────────────────────────
// Filtro y orden
// ──────────────────────────────────────────────────────────────────────────────

func TestFilter_VacioDevuelveTodosOrdenados(t *testing.T) {
	c, _ := loaded(t)

	got := c.Filter(Filter{})
	// Orden español: "Ana Álvarez" < "ana Zapata" < "Beatriz Núñez" < "Óscar Ruiz".
	assert.Equal(t, []int64{999, 7654321, 5550123, 1234567}, cedulas(got))
}

func TestFilter_Cedula(t *testing.T) {
	c, _ := loaded(t)

	got := c.Filter(Filter{Cedula: "123"})
	assert.Equal(t, []int64{5550123, 1234567}, cedulas(got))
}

func TestFilter_Campos(t *testing.T) {
	c, _ := loaded(t)

	assert.Equal(t, []int64{999, 7654321}, cedulas(c.Filter(Filter{Nombre: "ANA"})))
	assert.Equal(t, []int64{5550123}, cedulas(c.Filter(Filter{Nombre: "beatriz elena"})))
	assert.Equal(t, []int64{7654321}, cedulas(c.Filter(Filter{Email: "ana.z"})))
	assert.Equal(t, []int64{999, 1234567}, cedulas(c.Filter(Filter{Centro: "1"})))
	assert.Empty(t, c.Filter(Filter{Centro: "42"}), "un centro desconocido no coincide con nada")
	assert.Equal(t, []int64{999}, cedulas(c.Filter(Filter{Centro: "1", Email: "alvarez"})))
}

func TestFilter_SePreservaEnRecarga(t *testing.T) {
	c, _ := loaded(t)
	c.Filter(Filter{Centro: "2"})

	require.NoError(t, c.Load(context.Background()))
	assert.Equal(t, []int64{7654321}, cedulas(c.Results()))
}

func TestReset_OlvidaFiltroYDatos(t *testing.T) {
	c, _ := loaded(t)
	c.Filter(Filter{Centro: "2"})

	c.Reset()
	assert.Empty(t, c.Results())
	assert.Empty(t, c.Centros())
	assert.Equal(t, 0, c.Total())

	require.NoError(t, c.Load(context.Background()))
	assert.Equal(t, []int64{999, 7654321, 5550123, 1234567}, cedulas(c.Results()))
}

func TestReset_DescartaCargaEnCurso(t *testing.T) {
	b := newBackend()
	c := NewController(b, zerolog.Nop())
	b.beforeUsers = c.Reset

	assert.ErrorIs(t, c.Load(context.Background()), ErrStale)
	assert.Empty(t, c.Results())
}

// ──────────────────────────────────────────────────────────────────────────────
// Paginación
// ──────────────────────────────────────────────────────────────────────────────

func TestPaginacion(t *testing.T) {
	c, _ := loaded(t)

	assert.Equal(t, 2, c.PageCount(3))
	assert.Equal(t, 4, c.Total())
	assert.Equal(t, []int64{999, 7654321, 5550123}, cedulas(c.Page(0, 3)))
	assert.Equal(t, []int64{1234567}, cedulas(c.Page(1, 3)))
	assert.Empty(t, c.Page(2, 3))
	assert.Empty(t, c.Page(0, 0))

	c.Filter(Filter{Nombre: "nadie"})
	assert.Zero(t, c.PageCount(3))
}

// ──────────────────────────────────────────────────────────────────────────────
// Edición y eliminación
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyEdit_MapeaYRecarga(t *testing.T) {
	c, b := loaded(t)
	u := c.Filter(Filter{Cedula: "1234567"})[0]

	u.PrimerApellido = "Rojas"
	u.Centro = "Centro de Comercio"
	u.TipoUsuario = "Administrador"
	b.calls = nil
	require.NoError(t, c.ApplyEdit(context.Background(), &u))

	assert.Equal(t, []string{"update", "centros", "usuarios"}, b.calls)
	require.Len(t, b.updated, 1)
	in := b.updated[0]
	require.NotNil(t, in.CentroID)
	assert.Equal(t, 2, *in.CentroID)
	require.NotNil(t, in.TipoUsuarioID)
	assert.Equal(t, 1, *in.TipoUsuarioID)
	assert.Equal(t, "oscar@c.co", *in.Correo)

	assert.Equal(t, "Rojas", c.Results()[0].PrimerApellido)
}

func TestApplyEdit_CentroDesconocidoNoSeEnvia(t *testing.T) {
	c, b := loaded(t)
	u := c.Filter(Filter{Cedula: "5550123"})[0]
	require.Equal(t, CentroDesconocido, u.Centro)

	require.NoError(t, c.ApplyEdit(context.Background(), &u))
	assert.Nil(t, b.updated[0].CentroID)
}

func TestApplyEdit_CanceladoYError(t *testing.T) {
	c, b := loaded(t)
	b.calls = nil

	require.NoError(t, c.ApplyEdit(context.Background(), nil))
	assert.Empty(t, b.calls, "diálogo cancelado")

	b.updateErr = errors.New("500")
	u := c.Results()[0]
	assert.Error(t, c.ApplyEdit(context.Background(), &u))
	assert.Equal(t, []string{"update"}, b.calls, "sin recarga tras el fallo")
}

func TestApplyDelete(t *testing.T) {
	c, b := loaded(t)
	u := c.Filter(Filter{Cedula: "999"})[0]
	b.calls = nil

	require.NoError(t, c.ApplyDelete(context.Background(), u, false))
	assert.Empty(t, b.calls)

	c.Filter(Filter{})
	require.NoError(t, c.ApplyDelete(context.Background(), u, true))
	assert.Equal(t, []int64{999}, b.deleted)
	assert.Equal(t, []string{"delete", "centros", "usuarios"}, b.calls)
	assert.NotContains(t, cedulas(c.Results()), int64(999))
}
