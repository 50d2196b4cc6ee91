// Package auth es el cliente de autenticación de la consola: inicio y cierre de sesión,
// restablecimiento de contraseña y acceso a la sesión guardada.
package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/jhoicas/gestion-centros/internal/application/dto"
	"github.com/jhoicas/gestion-centros/internal/client/api"
	"github.com/jhoicas/gestion-centros/internal/client/session"
	"github.com/jhoicas/gestion-centros/pkg/jwt"
	"github.com/rs/zerolog"
)

// Mensajes de error de inicio de sesión que ve el usuario.
const (
	MsgCredencialesInvalidas = "Usuario o contraseña incorrectos."
	MsgNoAutorizado          = "Acceso no autorizado."
	MsgCorreoNoRegistrado    = "Correo no registrado. Por favor contacta con un administrador."
	MsgErrorServidor         = "Error en el servidor. Por favor, inténtalo de nuevo más tarde."
	MsgErrorDesconocido      = "Error desconocido. Por favor, inténtalo de nuevo."
)

var (
	// ErrLoginFallido el backend respondió 2xx pero sin token.
	ErrLoginFallido = errors.New("inicio de sesión fallido")
	// ErrOperacion fallo genérico de olvido/restablecimiento de contraseña.
	ErrOperacion = errors.New("Ocurrió un error")
)

// LoginError fallo de inicio de sesión con el mensaje a mostrar. Status 0 = sin respuesta HTTP.
type LoginError struct {
	Status  int
	Message string
}

func (e *LoginError) Error() string { return e.Message }

// Navigator cambia de pantalla tras cerrar sesión.
type Navigator interface {
	ToLogin()
}

// NavigatorFunc adapta una función a Navigator.
type NavigatorFunc func()

func (f NavigatorFunc) ToLogin() { f() }

// Service cliente de autenticación.
type Service struct {
	client *api.Client
	store  session.Store
	nav    Navigator
	log    zerolog.Logger
	now    func() time.Time
}

// NewService construye el servicio. nav puede ser nil.
func NewService(client *api.Client, store session.Store, nav Navigator, log zerolog.Logger) *Service {
	return &Service{client: client, store: store, nav: nav, log: log, now: time.Now}
}

// SetNavigator reemplaza el navegador (la TUI se registra después de construir el servicio).
func (s *Service) SetNavigator(nav Navigator) {
	s.nav = nav
}

// Login envía las credenciales y guarda token, tipo de usuario y cédula como una sola sesión.
func (s *Service) Login(ctx context.Context, correo, contrasena string) (*dto.LoginResponse, error) {
	var out dto.LoginResponse
	err := s.client.PostJSON(ctx, "/api/auth/login", dto.LoginRequest{Correo: correo, Contrasena: contrasena}, &out)
	if err != nil {
		lerr := loginError(err)
		s.log.Error().Err(err).Int("status", lerr.Status).Msg("inicio de sesión")
		return nil, lerr
	}
	if out.Token == "" {
		s.log.Error().Msg("inicio de sesión: respuesta sin token")
		return nil, ErrLoginFallido
	}
	if err := s.store.Save(session.Session{Token: out.Token, UserType: out.UserType, Cedula: out.Cedula}); err != nil {
		return nil, err
	}
	return &out, nil
}

// loginError traduce el fallo HTTP a la tabla cerrada de mensajes.
func loginError(err error) *LoginError {
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		return &LoginError{Message: MsgErrorDesconocido}
	}
	le := &LoginError{Status: apiErr.Status}
	switch apiErr.Status {
	case http.StatusBadRequest:
		le.Message = firstNonEmpty(apiErr.Message, MsgCredencialesInvalidas)
	case http.StatusUnauthorized:
		le.Message = MsgNoAutorizado
	case http.StatusNotFound:
		le.Message = firstNonEmpty(apiErr.Message, MsgCorreoNoRegistrado)
	case http.StatusInternalServerError:
		le.Message = MsgErrorServidor
	default:
		le.Message = MsgErrorDesconocido
	}
	return le
}

// Logout borra la sesión completa y vuelve a la pantalla de ingreso. No llama al backend.
func (s *Service) Logout() {
	if err := s.store.Clear(); err != nil {
		s.log.Error().Err(err).Msg("cerrar sesión")
	}
	if s.nav != nil {
		s.nav.ToLogin()
	}
}

// IsAuthenticated hay token y su exp (leído sin verificar firma) es posterior a ahora.
// Un token ilegible cuenta como no autenticado.
func (s *Service) IsAuthenticated() bool {
	token := s.Token()
	if token == "" {
		return false
	}
	exp, err := jwt.ExpiresAt(token)
	if err != nil {
		s.log.Warn().Err(err).Msg("token de sesión ilegible")
		return false
	}
	return exp.After(s.now())
}

// ForgotPassword solicita el enlace de restablecimiento.
func (s *Service) ForgotPassword(ctx context.Context, correo string) error {
	if err := s.client.PostJSON(ctx, "/api/auth/forgot-password", dto.ForgotPasswordRequest{Correo: correo}, nil); err != nil {
		s.log.Error().Err(err).Msg("olvido de contraseña")
		return ErrOperacion
	}
	return nil
}

// ResetPassword fija la nueva contraseña con el token recibido por correo.
func (s *Service) ResetPassword(ctx context.Context, token, nueva string) error {
	if err := s.client.PostJSON(ctx, "/api/auth/reset-password", dto.ResetPasswordRequest{Token: token, NewPassword: nueva}, nil); err != nil {
		s.log.Error().Err(err).Msg("restablecer contraseña")
		return ErrOperacion
	}
	return nil
}

// Token devuelve el token guardado o "".
func (s *Service) Token() string { return s.load().Token }

// UserType devuelve el tipo de usuario guardado o "".
func (s *Service) UserType() string { return s.load().UserType }

// Cedula devuelve la cédula guardada o "".
func (s *Service) Cedula() string { return s.load().Cedula }

func (s *Service) SetToken(v string)    { s.update(func(ss *session.Session) { ss.Token = v }) }
func (s *Service) SetUserType(v string) { s.update(func(ss *session.Session) { ss.UserType = v }) }
func (s *Service) SetCedula(v string)   { s.update(func(ss *session.Session) { ss.Cedula = v }) }

func (s *Service) ClearToken()    { s.SetToken("") }
func (s *Service) ClearUserType() { s.SetUserType("") }
func (s *Service) ClearCedula()   { s.SetCedula("") }

func (s *Service) load() session.Session {
	ss, err := s.store.Load()
	if err != nil {
		s.log.Error().Err(err).Msg("leer sesión")
		return session.Session{}
	}
	return ss
}

func (s *Service) update(fn func(*session.Session)) {
	ss := s.load()
	fn(&ss)
	if err := s.store.Save(ss); err != nil {
		s.log.Error().Err(err).Msg("guardar sesión")
	}
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
