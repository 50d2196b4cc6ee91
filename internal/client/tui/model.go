// Package tui es la interfaz de terminal de la consola administrativa (bubbletea).
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jhoicas/gestion-centros/internal/application/dto"
	"github.com/jhoicas/gestion-centros/internal/client/admin"
	"github.com/jhoicas/gestion-centros/internal/client/auth"
	"github.com/jhoicas/gestion-centros/internal/domain/entity"
	"github.com/rs/zerolog"
)

// AuthService operaciones de sesión que usa la TUI (las implementa *auth.Service).
type AuthService interface {
	Login(ctx context.Context, correo, contrasena string) (*dto.LoginResponse, error)
	Logout()
	IsAuthenticated() bool
	ForgotPassword(ctx context.Context, correo string) error
	ResetPassword(ctx context.Context, token, nueva string) error
	UserType() string
	Cedula() string
}

// SolicitudesBackend operaciones REST de solicitudes de almacén.
type SolicitudesBackend interface {
	ListSolicitudes(ctx context.Context, limit, offset int) (*dto.SolicitudListResponse, error)
	CambiarEstadoSolicitud(ctx context.Context, id, estado string) (*dto.SolicitudResponse, error)
}

// Options parámetros de presentación.
type Options struct {
	PageSize int
	Debounce time.Duration
}

type view int

const (
	viewLogin view = iota
	viewForgot
	viewReset
	viewSearch
	viewEdit
	viewDelete
	viewSolicitudes
)

// ToLoginMsg vuelve a la pantalla de ingreso (lo envía el navegador tras cerrar sesión).
type ToLoginMsg struct{}

// Navigator adapta el programa a auth.Navigator. El envío va en otra goroutine porque
// Logout puede llamarse desde un comando del propio programa.
func Navigator(p *tea.Program) auth.Navigator {
	return auth.NavigatorFunc(func() {
		go p.Send(ToLoginMsg{})
	})
}

// Model raíz de la TUI.
type Model struct {
	auth        AuthService
	users       *admin.Controller
	solicitudes SolicitudesBackend
	opts        Options
	log         zerolog.Logger

	view     view
	userType string // copia de la sesión, se fija al ingresar
	cedula   string
	width    int
	status   string
	statusOK bool
	quitting bool

	login  loginForm
	forgot forgotForm
	reset  resetForm
	search searchScreen
	edit   editDialog
	del    deleteDialog
	sol    solicitudesScreen
}

// New construye el modelo. Si hay sesión válida arranca en la pantalla del tipo de usuario.
func New(authSvc AuthService, users *admin.Controller, solicitudes SolicitudesBackend, opts Options, log zerolog.Logger) Model {
	if opts.PageSize <= 0 {
		opts.PageSize = 10
	}
	if opts.Debounce <= 0 {
		opts.Debounce = 300 * time.Millisecond
	}
	m := Model{
		auth:        authSvc,
		users:       users,
		solicitudes: solicitudes,
		opts:        opts,
		log:         log,
		login:       newLoginForm(),
		forgot:      newForgotForm(),
		reset:       newResetForm(),
		search:      newSearchScreen(opts.PageSize),
		sol:         newSolicitudesScreen(opts.PageSize),
	}
	if authSvc.IsAuthenticated() {
		m.userType, m.cedula = authSvc.UserType(), authSvc.Cedula()
		m.view = m.homeView()
	} else {
		m.view = viewLogin
		m.login.focus()
	}
	if m.view == viewSearch {
		m.search.focusCmd()
	}
	return m
}

// homeView pantalla inicial según el tipo de usuario de la sesión.
func (m Model) homeView() view {
	if m.isAdmin() {
		return viewSearch
	}
	return viewSolicitudes
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnterAltScreen}
	switch m.view {
	case viewSearch:
		cmds = append(cmds, m.loadUsersCmd())
	case viewSolicitudes:
		cmds = append(cmds, m.loadSolicitudesCmd())
	default:
		cmds = append(cmds, textinput.Blink)
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case ToLoginMsg:
		return m.toLogin("Sesión cerrada.")

	case usersLoadedMsg, userSavedMsg, filterTickMsg:
		if m.view != viewLogin && m.view != viewForgot && m.view != viewReset {
			return m.updateSearch(msg)
		}
		return m, nil

	case solicitudesLoadedMsg, estadoCambiadoMsg:
		if m.view != viewLogin && m.view != viewForgot && m.view != viewReset {
			return m.updateSolicitudes(msg)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "ctrl+l":
			if m.view != viewLogin && m.view != viewForgot && m.view != viewReset {
				return m, m.logoutCmd()
			}
		}
	}

	switch m.view {
	case viewLogin, viewForgot, viewReset:
		return m.updateAuthViews(msg)
	case viewSearch:
		return m.updateSearch(msg)
	case viewEdit:
		return m.updateEdit(msg)
	case viewDelete:
		return m.updateDelete(msg)
	case viewSolicitudes:
		return m.updateSolicitudes(msg)
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return "Hasta luego.\n"
	}

	header := HeaderStyle.Render(" GESTIÓN DE CENTROS · Consola administrativa ") + "\n"
	var sub, body, footer string

	switch m.view {
	case viewLogin:
		sub, body, footer = m.login.view()
	case viewForgot:
		sub, body, footer = m.forgot.view()
	case viewReset:
		sub, body, footer = m.reset.view()
	case viewSearch:
		sub, body, footer = m.search.view(m.cedula)
	case viewEdit:
		sub, body, footer = m.edit.view()
	case viewDelete:
		sub, body, footer = m.del.view()
	case viewSolicitudes:
		sub, body, footer = m.sol.view(m.canChangeEstado(), m.isAdmin())
	}

	status := ""
	if m.status != "" {
		if m.statusOK {
			status = "\n" + SuccessTextStyle.Render("✓ "+m.status)
		} else {
			status = "\n" + ErrorTextStyle.Render("✘ "+m.status)
		}
	}
	return fmt.Sprintf("%s%s\n%s%s\n%s", header, SubHeaderStyle.Render(sub), body, status, FooterStyle.Render(footer))
}

func (m Model) setStatus(s string, ok bool) Model {
	m.status = s
	m.statusOK = ok
	return m
}

func (m Model) toLogin(status string) (tea.Model, tea.Cmd) {
	m.view = viewLogin
	m.userType, m.cedula = "", ""
	m.users.Reset()
	m.login = newLoginForm()
	m.search = newSearchScreen(m.opts.PageSize)
	m.sol = newSolicitudesScreen(m.opts.PageSize)
	m = m.setStatus(status, true)
	cmd := m.login.focus()
	return m, cmd
}

func (m Model) logoutCmd() tea.Cmd {
	svc := m.auth
	return func() tea.Msg {
		svc.Logout()
		return nil
	}
}

// canChangeEstado almacén y administradores gestionan solicitudes.
func (m Model) canChangeEstado() bool {
	return m.userType == entity.TipoAlmacen.String() || m.isAdmin()
}

func (m Model) isAdmin() bool {
	return m.userType == entity.TipoAdministrador.String()
}
