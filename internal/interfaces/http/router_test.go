package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/gestion-centros/internal/application/auth"
	"github.com/jhoicas/gestion-centros/internal/application/dto"
	"github.com/jhoicas/gestion-centros/internal/application/ports"
	"github.com/jhoicas/gestion-centros/internal/application/usecase"
	"github.com/jhoicas/gestion-centros/internal/domain/entity"
	"github.com/jhoicas/gestion-centros/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/gestion-centros/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// App completa sobre repositorios en memoria
// ──────────────────────────────────────────────────────────────────────────────

const (
	cedulaAdmin      = int64(1000)
	cedulaInstructor = int64(2000)
	cedulaAlmacen    = int64(3000)
)

type nopMailer struct{ links []string }

func (m *nopMailer) SendPasswordReset(_ context.Context, _, _, link string) error {
	m.links = append(m.links, link)
	return nil
}

type bytesReport struct{}

func (bytesReport) GenerateUserReport(_ context.Context, _ []ports.UserReportRow) ([]byte, error) {
	return []byte("%PDF-1.4"), nil
}

func buildApp(t *testing.T) *fiber.App {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secreta123"), bcrypt.MinCost)
	require.NoError(t, err)
	users := memory.NewUserRepository(
		&entity.User{Cedula: cedulaAdmin, PrimerNombre: "Ana", PrimerApellido: "Admin", Correo: "admin@c.co", CentroID: 1, TipoUsuario: entity.TipoAdministrador, PasswordHash: string(hash), Activo: true},
		&entity.User{Cedula: cedulaInstructor, PrimerNombre: "Iván", PrimerApellido: "Instructor", Correo: "ivan@c.co", CentroID: 1, TipoUsuario: entity.TipoInstructor, PasswordHash: string(hash), Activo: true},
		&entity.User{Cedula: cedulaAlmacen, PrimerNombre: "Alba", PrimerApellido: "Almacén", Correo: "alba@c.co", CentroID: 2, TipoUsuario: entity.TipoAlmacen, PasswordHash: string(hash), Activo: true},
	)
	centros := memory.NewCentroRepository(entity.Centro{ID: 1, Nombre: "Centro Uno"}, entity.Centro{ID: 2, Nombre: "Centro Dos"})

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      auth.NewAuthUseCase(users, &nopMailer{}, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer, ResetMinutes: 5}, "http://front/reset"),
		UserUC:      usecase.NewUserUseCase(users, centros, bytesReport{}),
		CentroUC:    usecase.NewCentroUseCase(centros),
		SolicitudUC: newSolicitudUC(),
		JWTSecret:   testJWTSecret,
		Log:         zerolog.Nop(),
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, authHeader string, body interface{}) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestLoginHandler(t *testing.T) {
	app := buildApp(t)

	resp := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Correo: "admin@c.co", Contrasena: "secreta123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.LoginResponse
	decode(t, resp, &out)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "Administrador", out.UserType)
	assert.Equal(t, "1000", out.Cedula)

	cases := []struct {
		name   string
		in     dto.LoginRequest
		status int
		msg    string
	}{
		{"correo desconocido", dto.LoginRequest{Correo: "x@c.co", Contrasena: "secreta123"}, http.StatusNotFound, "Correo no registrado"},
		{"contraseña errada", dto.LoginRequest{Correo: "admin@c.co", Contrasena: "mala"}, http.StatusBadRequest, "Usuario o contraseña incorrectos"},
		{"campos vacíos", dto.LoginRequest{}, http.StatusBadRequest, "correo y contraseña son requeridos"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := call(t, app, http.MethodPost, "/api/auth/login", "", tc.in)
			assert.Equal(t, tc.status, resp.StatusCode)
			var e dto.ErrorResponse
			decode(t, resp, &e)
			assert.Equal(t, tc.msg, e.Message)
		})
	}
}

func TestForgotPasswordHandler(t *testing.T) {
	app := buildApp(t)

	resp := call(t, app, http.MethodPost, "/api/auth/forgot-password", "", dto.ForgotPasswordRequest{Correo: "ivan@c.co"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/auth/forgot-password", "", dto.ForgotPasswordRequest{Correo: "nadie@c.co"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/auth/reset-password", "", dto.ResetPasswordRequest{Token: "malo", NewPassword: "nueva12345"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Centros y usuarios
// ──────────────────────────────────────────────────────────────────────────────

func TestCentrosHandler(t *testing.T) {
	app := buildApp(t)

	resp := call(t, app, http.MethodGet, "/api/centros", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/centros", tokenFor(t, cedulaInstructor, roleInstructor), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.CentroListResponse
	decode(t, resp, &out)
	require.Len(t, out.Data, 2)
	assert.Equal(t, "Centro Dos", out.Data[0].Nombre)
}

func TestUsuariosHandler_SoloAdmin(t *testing.T) {
	app := buildApp(t)

	resp := call(t, app, http.MethodGet, "/api/usuarios", tokenFor(t, cedulaInstructor, roleInstructor), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/usuarios", tokenFor(t, cedulaAdmin, roleAdmin), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var users []dto.UserBackend
	decode(t, resp, &users)
	assert.Len(t, users, 3)
}

func TestUsuariosHandler_UpdateDeleteReporte(t *testing.T) {
	app := buildApp(t)
	admin := tokenFor(t, cedulaAdmin, roleAdmin)

	// PUT con el cuerpo completo que envía la consola.
	body := dto.UserBackend{
		Cedula: cedulaInstructor, PrimerNombre: "Iván", PrimerApellido: "Ruiz",
		Correo: "ivan@c.co", CentroID: 2, TipoUsuarioID: int(entity.TipoAlmacen),
	}
	resp := call(t, app, http.MethodPut, "/api/usuarios/2000", admin, body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated dto.UserBackend
	decode(t, resp, &updated)
	assert.Equal(t, "Ruiz", updated.PrimerApellido)
	assert.Equal(t, 2, updated.CentroID)
	assert.Equal(t, int(entity.TipoAlmacen), updated.TipoUsuarioID)

	body.CentroID = 42
	resp = call(t, app, http.MethodPut, "/api/usuarios/2000", admin, body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = call(t, app, http.MethodPut, "/api/usuarios/9", admin, body)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/usuarios/reporte", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	pdf, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))

	resp = call(t, app, http.MethodDelete, "/api/usuarios/1000", admin, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "no se elimina a sí mismo")
	var conflict dto.ErrorResponse
	decode(t, resp, &conflict)
	assert.Equal(t, "SELF_DELETE", conflict.Code)

	resp = call(t, app, http.MethodDelete, "/api/usuarios/2000", admin, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/usuarios/2000", admin, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = call(t, app, http.MethodDelete, "/api/usuarios/2000", admin, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/usuarios/abc", admin, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Solicitudes de almacén
// ──────────────────────────────────────────────────────────────────────────────

func TestSolicitudesHandler_Flujo(t *testing.T) {
	app := buildApp(t)
	instructor := tokenFor(t, cedulaInstructor, roleInstructor)
	almacen := tokenFor(t, cedulaAlmacen, roleAlmacen)
	admin := tokenFor(t, cedulaAdmin, roleAdmin)

	in := map[string]interface{}{"producto": "Guantes", "cantidad": "4", "unidad": "par"}

	resp := call(t, app, http.MethodPost, "/api/solicitudes", almacen, in)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "almacén no crea solicitudes")

	resp = call(t, app, http.MethodPost, "/api/solicitudes", instructor, in)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created dto.SolicitudResponse
	decode(t, resp, &created)
	assert.Equal(t, cedulaInstructor, created.Cedula)
	assert.Equal(t, testCentroID, created.CentroID)
	assert.Equal(t, entity.EstadoPendiente, created.Estado)

	resp = call(t, app, http.MethodPost, "/api/solicitudes", admin, map[string]interface{}{"producto": "Cables", "cantidad": "1"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	var list dto.SolicitudListResponse
	decode(t, call(t, app, http.MethodGet, "/api/solicitudes", instructor, nil), &list)
	assert.Len(t, list.Items, 1, "el instructor solo ve las suyas")

	decode(t, call(t, app, http.MethodGet, "/api/solicitudes", almacen, nil), &list)
	assert.Len(t, list.Items, 2)

	path := "/api/solicitudes/" + created.ID + "/estado"
	resp = call(t, app, http.MethodPatch, path, instructor, dto.CambiarEstadoRequest{Estado: entity.EstadoAprobada})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = call(t, app, http.MethodPatch, path, almacen, dto.CambiarEstadoRequest{Estado: entity.EstadoEntregada})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = call(t, app, http.MethodPatch, path, almacen, dto.CambiarEstadoRequest{Estado: entity.EstadoAprobada})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var changed dto.SolicitudResponse
	decode(t, resp, &changed)
	assert.Equal(t, entity.EstadoAprobada, changed.Estado)

	resp = call(t, app, http.MethodPatch, "/api/solicitudes/no-existe/estado", almacen, dto.CambiarEstadoRequest{Estado: entity.EstadoAprobada})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func newSolicitudUC() *usecase.SolicitudUseCase {
	repo := memory.NewSolicitudRepository()
	return usecase.NewSolicitudUseCase(repo, memory.NewTxRunner(repo))
}
