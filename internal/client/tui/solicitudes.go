package tui

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jhoicas/gestion-centros/internal/application/dto"
	"github.com/jhoicas/gestion-centros/internal/domain/entity"
)

type solicitudesLoadedMsg struct {
	list *dto.SolicitudListResponse
	err  error
}

type estadoCambiadoMsg struct {
	resp *dto.SolicitudResponse
	err  error
}

type solicitudesScreen struct {
	table    table.Model
	items    []dto.SolicitudResponse
	pageSize int
	offset   int
	loading  bool
}

func newSolicitudesScreen(pageSize int) solicitudesScreen {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "ID", Width: 10},
			{Title: "Solicitante", Width: 12},
			{Title: "Producto", Width: 30},
			{Title: "Cantidad", Width: 10},
			{Title: "Unidad", Width: 10},
			{Title: "Estado", Width: 12},
			{Title: "Fecha", Width: 16},
		}),
		table.WithFocused(true),
		table.WithHeight(pageSize+1),
	)
	st := table.DefaultStyles()
	st.Header = st.Header.BorderStyle(lipgloss.NormalBorder()).BorderForeground(Muted).BorderBottom(true).Bold(true)
	st.Selected = st.Selected.Foreground(Text).Background(Primary).Bold(false)
	t.SetStyles(st)
	return solicitudesScreen{table: t, pageSize: pageSize}
}

func (s *solicitudesScreen) setItems(items []dto.SolicitudResponse) {
	s.items = items
	rows := make([]table.Row, 0, len(items))
	for _, it := range items {
		id := it.ID
		if len(id) > 8 {
			id = id[:8]
		}
		rows = append(rows, table.Row{
			id,
			strconv.FormatInt(it.Cedula, 10),
			it.Producto,
			it.Cantidad.String(),
			it.Unidad,
			it.Estado,
			it.CreatedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	s.table.SetRows(rows)
	if c := s.table.Cursor(); c >= len(rows) && len(rows) > 0 {
		s.table.SetCursor(len(rows) - 1)
	}
}

func (s solicitudesScreen) selected() (dto.SolicitudResponse, bool) {
	c := s.table.Cursor()
	if c < 0 || c >= len(s.items) {
		return dto.SolicitudResponse{}, false
	}
	return s.items[c], true
}

func (s solicitudesScreen) view(gestiona, admin bool) (string, string, string) {
	summary := "página " + strconv.Itoa(s.offset/s.pageSize+1)
	if s.loading {
		summary = "Cargando solicitudes..."
	}
	body := lipgloss.NewStyle().MarginLeft(2).Render(s.table.View()) + "\n  " + MutedStyle.Render(summary)

	keys := []string{"←/→: página", "R: recargar"}
	if gestiona {
		keys = append(keys, "A: aprobar", "X: rechazar", "G: entregar")
	}
	if admin {
		keys = append(keys, "U: usuarios")
	}
	keys = append(keys, "Ctrl+L: cerrar sesión")
	return "Solicitudes de almacén", body, "▸ " + strings.Join(keys, " • ")
}

// ── Update ─────────────────────────────────────────────────────────────────────

func (m Model) loadSolicitudesCmd() tea.Cmd {
	backend, limit, offset := m.solicitudes, m.sol.pageSize, m.sol.offset
	return func() tea.Msg {
		list, err := backend.ListSolicitudes(context.Background(), limit, offset)
		return solicitudesLoadedMsg{list: list, err: err}
	}
}

func (m Model) updateSolicitudes(msg tea.Msg) (tea.Model, tea.Cmd) {
	s := &m.sol
	switch msg := msg.(type) {
	case solicitudesLoadedMsg:
		s.loading = false
		if msg.err != nil {
			m.log.Error().Err(msg.err).Msg("listar solicitudes")
			return m.setStatus("No se pudieron cargar las solicitudes.", false), nil
		}
		s.setItems(msg.list.Items)
		return m, nil

	case estadoCambiadoMsg:
		if msg.err != nil {
			m.log.Error().Err(msg.err).Msg("cambiar estado de solicitud")
			return m.setStatus("No se pudo cambiar el estado de la solicitud.", false), nil
		}
		m = m.setStatus("Solicitud "+msg.resp.Estado+".", true)
		m.sol.loading = true
		return m, m.loadSolicitudesCmd()

	case tea.KeyMsg:
		switch msg.String() {
		case "r", "R":
			s.loading = true
			return m.setStatus("", true), m.loadSolicitudesCmd()
		case "left", "pgup":
			if s.offset == 0 {
				return m, nil
			}
			s.offset -= s.pageSize
			if s.offset < 0 {
				s.offset = 0
			}
			s.loading = true
			return m, m.loadSolicitudesCmd()
		case "right", "pgdown":
			if len(s.items) < s.pageSize {
				return m, nil
			}
			s.offset += s.pageSize
			s.loading = true
			return m, m.loadSolicitudesCmd()
		case "u", "U":
			if !m.isAdmin() {
				return m, nil
			}
			m.view = viewSearch
			m.search.loading = true
			m = m.setStatus("", true)
			cmd := tea.Batch(m.loadUsersCmd(), m.search.focusCmd())
			return m, cmd
		case "a", "A", "x", "X", "g", "G":
			if !m.canChangeEstado() {
				return m, nil
			}
			it, ok := s.selected()
			if !ok {
				return m, nil
			}
			estado := map[string]string{"a": entity.EstadoAprobada, "x": entity.EstadoRechazada, "g": entity.EstadoEntregada}[strings.ToLower(msg.String())]
			if !(&entity.SolicitudAlmacen{Estado: it.Estado}).PuedeCambiarA(estado) {
				return m.setStatus("No se puede pasar de "+it.Estado+" a "+estado+".", false), nil
			}
			backend, id := m.solicitudes, it.ID
			return m, func() tea.Msg {
				resp, err := backend.CambiarEstadoSolicitud(context.Background(), id, estado)
				return estadoCambiadoMsg{resp: resp, err: err}
			}
		}
		var cmd tea.Cmd
		s.table, cmd = s.table.Update(msg)
		return m, cmd
	}
	return m, nil
}
