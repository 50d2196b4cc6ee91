package tui

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jhoicas/gestion-centros/internal/application/dto"
	"github.com/jhoicas/gestion-centros/internal/client/admin"
)

type usersLoadedMsg struct{ err error }

type filterTickMsg struct{ seq int }

const (
	opActualizar = "actualizar"
	opEliminar   = "eliminar"
)

type userSavedMsg struct {
	op  string
	err error
}

// ── Selector ───────────────────────────────────────────────────────────────────

type option struct{ value, label string }

// selector lista cerrada que se recorre con ←/→.
type selector struct {
	options []option
	idx     int
}

func (s *selector) move(delta int) {
	if n := len(s.options); n > 0 {
		s.idx = (s.idx + delta + n) % n
	}
}

func (s *selector) selectLabel(label string) {
	for i, o := range s.options {
		if o.label == label {
			s.idx = i
			return
		}
	}
}

func (s selector) current() option {
	if len(s.options) == 0 {
		return option{}
	}
	return s.options[s.idx]
}

func (s selector) render(focused bool) string {
	label := s.current().label
	if focused {
		return InputStyle.Render("◂ " + label + " ▸")
	}
	return ValueStyle.Render("  " + label)
}

// ── Pantalla de búsqueda ───────────────────────────────────────────────────────

const (
	fieldNombre = iota
	fieldCentro
	fieldEmail
	fieldCedula
	fieldTabla
)

type searchScreen struct {
	inputs    [4]textinput.Model // centro usa el selector
	centro    selector
	focus     int
	table     table.Model
	pager     paginator.Model
	pageSize  int
	pageUsers []admin.User
	total     int
	seq       int
	applied   admin.Filter
	loading   bool
}

func newSearchScreen(pageSize int) searchScreen {
	s := searchScreen{pageSize: pageSize}
	placeholders := [4]string{"nombre o apellido", "", "correo", "cédula"}
	for i := range s.inputs {
		ti := textinput.New()
		ti.Prompt = "› "
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 80
		ti.Width = 30
		s.inputs[i] = ti
	}
	s.centro = selector{options: []option{{"", "Todos"}}}

	s.table = table.New(
		table.WithColumns([]table.Column{
			{Title: "Cédula", Width: 12},
			{Title: "Nombre", Width: 28},
			{Title: "Centro de formación", Width: 30},
			{Title: "Correo", Width: 26},
			{Title: "Teléfono", Width: 12},
			{Title: "Tipo", Width: 14},
		}),
		table.WithHeight(pageSize+1),
	)
	st := table.DefaultStyles()
	st.Header = st.Header.BorderStyle(lipgloss.NormalBorder()).BorderForeground(Muted).BorderBottom(true).Bold(true)
	st.Selected = st.Selected.Foreground(Text).Background(Primary).Bold(false)
	s.table.SetStyles(st)

	s.pager = paginator.New()
	s.pager.Type = paginator.Arabic
	s.pager.PerPage = pageSize
	return s
}

func (s *searchScreen) focusCmd() tea.Cmd {
	for i := range s.inputs {
		if i == s.focus {
			s.inputs[i].Focus()
		} else {
			s.inputs[i].Blur()
		}
	}
	if s.focus == fieldTabla {
		s.table.Focus()
		return nil
	}
	s.table.Blur()
	return textinput.Blink
}

func (s searchScreen) filter() admin.Filter {
	return admin.Filter{
		Nombre: strings.TrimSpace(s.inputs[fieldNombre].Value()),
		Centro: s.centro.current().value,
		Email:  strings.TrimSpace(s.inputs[fieldEmail].Value()),
		Cedula: strings.TrimSpace(s.inputs[fieldCedula].Value()),
	}
}

func (s *searchScreen) setCentros(centros []dto.CentroResponse) {
	current := s.centro.current().value
	opts := []option{{"", "Todos"}}
	for _, c := range centros {
		opts = append(opts, option{value: strconv.Itoa(c.ID), label: c.Nombre})
	}
	s.centro = selector{options: opts}
	for i, o := range opts {
		if o.value == current {
			s.centro.idx = i
		}
	}
}

// refresh vuelca la página actual del controlador en la tabla.
func (s *searchScreen) refresh(ctrl *admin.Controller) {
	s.total = ctrl.Total()
	if s.total == 0 {
		s.pager.TotalPages = 1
	} else {
		s.pager.SetTotalPages(s.total)
	}
	if s.pager.Page >= s.pager.TotalPages {
		s.pager.Page = s.pager.TotalPages - 1
	}
	s.pageUsers = ctrl.Page(s.pager.Page, s.pageSize)
	rows := make([]table.Row, 0, len(s.pageUsers))
	for _, u := range s.pageUsers {
		rows = append(rows, table.Row{
			strconv.FormatInt(u.Cedula, 10),
			strings.Join(strings.Fields(u.NombreCompleto()), " "),
			u.Centro,
			u.Email,
			u.Telefono,
			u.TipoUsuario,
		})
	}
	s.table.SetRows(rows)
	if c := s.table.Cursor(); c >= len(rows) && len(rows) > 0 {
		s.table.SetCursor(len(rows) - 1)
	}
}

func (s searchScreen) selected() (admin.User, bool) {
	c := s.table.Cursor()
	if c < 0 || c >= len(s.pageUsers) {
		return admin.User{}, false
	}
	return s.pageUsers[c], true
}

func (s searchScreen) view(cedula string) (string, string, string) {
	labels := [4]string{"Nombre", "Centro", "Correo", "Cédula"}
	var b strings.Builder
	for i := range s.inputs {
		label := LabelStyle.Render(labels[i])
		if i == s.focus {
			label = FocusedLabelStyle.Render(labels[i])
		}
		if i == fieldCentro {
			b.WriteString(label + s.centro.render(i == s.focus) + "\n")
			continue
		}
		b.WriteString(label + s.inputs[i].View() + "\n")
	}
	filters := CardStyle.Render(strings.TrimRight(b.String(), "\n"))

	summary := MutedStyle.Render(strconv.Itoa(s.total) + " usuario(s) · página " + s.pager.View())
	if s.loading {
		summary = MutedStyle.Render("Cargando usuarios...")
	}
	body := filters + "\n\n" + lipgloss.NewStyle().MarginLeft(2).Render(s.table.View()) + "\n  " + summary

	sub := "Buscar usuarios"
	if cedula != "" {
		sub += " · sesión " + cedula
	}
	footer := "▸ Tab: campo/tabla • ←/→: centro o página • E: editar • D: eliminar • R: recargar • S: solicitudes • Ctrl+L: cerrar sesión"
	return sub, body, footer
}

// ── Update ─────────────────────────────────────────────────────────────────────

func (m Model) loadUsersCmd() tea.Cmd {
	ctrl := m.users
	return func() tea.Msg {
		return usersLoadedMsg{err: ctrl.Load(context.Background())}
	}
}

// debounce agenda la aplicación del filtro; solo cuenta el último tick.
func (s *searchScreen) debounce(d time.Duration) tea.Cmd {
	s.seq++
	seq := s.seq
	return tea.Tick(d, func(time.Time) tea.Msg { return filterTickMsg{seq: seq} })
}

func (m Model) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case usersLoadedMsg:
		return m.onUsersLoaded(msg), nil

	case userSavedMsg:
		return m.onUserSaved(msg), nil

	case filterTickMsg:
		if msg.seq != m.search.seq {
			return m, nil
		}
		f := m.search.filter()
		if f == m.search.applied {
			return m, nil
		}
		m.search.applied = f
		m.users.Filter(f)
		m.search.pager.Page = 0
		m.search.refresh(m.users)
		return m, nil

	case tea.KeyMsg:
		return m.searchKey(msg)
	}
	return m, nil
}

func (m Model) onUsersLoaded(msg usersLoadedMsg) Model {
	if errors.Is(msg.err, admin.ErrStale) {
		return m
	}
	m.search.loading = false
	if msg.err != nil {
		return m.setStatus("No se pudieron cargar los usuarios.", false)
	}
	m.search.setCentros(m.users.Centros())
	m.search.refresh(m.users)
	return m
}

func (m Model) onUserSaved(msg userSavedMsg) Model {
	m.search.loading = false
	if errors.Is(msg.err, admin.ErrStale) {
		msg.err = nil
	}
	if msg.err != nil {
		return m.setStatus("No se pudo "+msg.op+" el usuario.", false)
	}
	m.search.setCentros(m.users.Centros())
	m.search.refresh(m.users)
	if msg.op == opEliminar {
		return m.setStatus("Usuario eliminado.", true)
	}
	return m.setStatus("Usuario actualizado.", true)
}

func (m Model) searchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.search
	switch msg.String() {
	case "tab":
		s.focus = (s.focus + 1) % (fieldTabla + 1)
		cmd := s.focusCmd()
		return m, cmd
	case "shift+tab":
		s.focus = (s.focus + fieldTabla) % (fieldTabla + 1)
		cmd := s.focusCmd()
		return m, cmd
	}

	if s.focus == fieldTabla {
		switch msg.String() {
		case "left", "pgup":
			s.pager.PrevPage()
			s.refresh(m.users)
			return m, nil
		case "right", "pgdown":
			s.pager.NextPage()
			s.refresh(m.users)
			return m, nil
		case "r", "R":
			s.loading = true
			return m.setStatus("", true), m.loadUsersCmd()
		case "s", "S":
			m.view = viewSolicitudes
			return m.setStatus("", true), m.loadSolicitudesCmd()
		case "e", "E", "enter":
			if u, ok := s.selected(); ok {
				m.edit = newEditDialog(u, m.users.Centros())
				m.view = viewEdit
				m = m.setStatus("", true)
				cmd := m.edit.focusCmd()
				return m, cmd
			}
			return m, nil
		case "d", "D", "delete":
			if u, ok := s.selected(); ok {
				m.del = deleteDialog{user: u}
				m.view = viewDelete
				return m.setStatus("", true), nil
			}
			return m, nil
		}
		var cmd tea.Cmd
		s.table, cmd = s.table.Update(msg)
		return m, cmd
	}

	if s.focus == fieldCentro {
		switch msg.String() {
		case "left":
			s.centro.move(-1)
		case "right":
			s.centro.move(1)
		default:
			return m, nil
		}
		cmd := s.debounce(m.opts.Debounce)
		return m, cmd
	}

	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	cmd = tea.Batch(cmd, s.debounce(m.opts.Debounce))
	return m, cmd
}
