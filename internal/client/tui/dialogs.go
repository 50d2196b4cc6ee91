package tui

import (
	"context"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jhoicas/gestion-centros/internal/application/dto"
	"github.com/jhoicas/gestion-centros/internal/client/admin"
	"github.com/jhoicas/gestion-centros/internal/domain/entity"
)

// ── Edición ────────────────────────────────────────────────────────────────────

const (
	editPrimerNombre = iota
	editSegundoNombre
	editPrimerApellido
	editSegundoApellido
	editEmail
	editTelefono
	editCentro
	editTipo
	editCampos
)

type editDialog struct {
	user   admin.User
	fields form
	centro selector
	tipo   selector
	focus  int
}

func newEditDialog(u admin.User, centros []dto.CentroResponse) editDialog {
	d := editDialog{
		user:   u,
		fields: newForm("Primer nombre", "Segundo nombre", "Primer apellido", "Segundo apellido", "Correo", "Teléfono"),
	}
	for i, v := range []string{u.PrimerNombre, u.SegundoNombre, u.PrimerApellido, u.SegundoApellido, u.Email, u.Telefono} {
		d.fields.inputs[i].SetValue(v)
	}

	for _, c := range centros {
		d.centro.options = append(d.centro.options, option{value: strconv.Itoa(c.ID), label: c.Nombre})
	}
	if u.Centro == admin.CentroDesconocido {
		d.centro.options = append([]option{{label: admin.CentroDesconocido}}, d.centro.options...)
	}
	d.centro.selectLabel(u.Centro)

	for _, t := range entity.TiposUsuario {
		d.tipo.options = append(d.tipo.options, option{value: strconv.Itoa(int(t)), label: t.String()})
	}
	d.tipo.selectLabel(u.TipoUsuario)
	return d
}

func (d *editDialog) focusCmd() tea.Cmd {
	if d.focus < editCentro {
		d.fields.focus = d.focus
		return d.fields.focusCmd()
	}
	for i := range d.fields.inputs {
		d.fields.inputs[i].Blur()
	}
	return nil
}

// result usuario editado que se envía al backend.
func (d editDialog) result() *admin.User {
	u := d.user
	u.PrimerNombre = d.fields.value(editPrimerNombre)
	u.SegundoNombre = d.fields.value(editSegundoNombre)
	u.PrimerApellido = d.fields.value(editPrimerApellido)
	u.SegundoApellido = d.fields.value(editSegundoApellido)
	u.Email = d.fields.value(editEmail)
	u.Telefono = d.fields.value(editTelefono)
	u.Centro = d.centro.current().label
	u.TipoUsuario = d.tipo.current().label
	return &u
}

func (d editDialog) view() (string, string, string) {
	var b strings.Builder
	b.WriteString(SectionTitleStyle.Render("Editar usuario " + strconv.FormatInt(d.user.Cedula, 10)))
	b.WriteString("\n")
	for i := range d.fields.inputs {
		label := LabelStyle.Render(d.fields.labels[i])
		if i == d.focus {
			label = FocusedLabelStyle.Render(d.fields.labels[i])
		}
		b.WriteString(label + d.fields.inputs[i].View() + "\n")
	}
	for i, sel := range []selector{d.centro, d.tipo} {
		idx := editCentro + i
		name := []string{"Centro", "Tipo de usuario"}[i]
		label := LabelStyle.Render(name)
		if idx == d.focus {
			label = FocusedLabelStyle.Render(name)
		}
		b.WriteString(label + sel.render(idx == d.focus) + "\n")
	}
	return "Buscar usuarios", DialogStyle.Render(strings.TrimRight(b.String(), "\n")),
		"▸ Tab: campo • ←/→: elegir centro o tipo • Enter: guardar • Esc: cancelar"
}

func (m Model) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateSearch(msg)
	}
	d := &m.edit
	switch key.String() {
	case "esc":
		m.view = viewSearch
		cmd := m.search.focusCmd()
		return m, cmd
	case "tab", "down":
		d.focus = (d.focus + 1) % editCampos
		cmd := d.focusCmd()
		return m, cmd
	case "shift+tab", "up":
		d.focus = (d.focus + editCampos - 1) % editCampos
		cmd := d.focusCmd()
		return m, cmd
	case "enter":
		u := d.result()
		if u.PrimerNombre == "" || u.PrimerApellido == "" || u.Email == "" {
			return m.setStatus("Nombre, apellido y correo son obligatorios.", false), nil
		}
		m.view = viewSearch
		m.search.loading = true
		ctrl := m.users
		cmd := tea.Batch(m.search.focusCmd(), func() tea.Msg {
			return userSavedMsg{op: opActualizar, err: ctrl.ApplyEdit(context.Background(), u)}
		})
		return m, cmd
	}
	switch d.focus {
	case editCentro, editTipo:
		sel := &d.centro
		if d.focus == editTipo {
			sel = &d.tipo
		}
		switch key.String() {
		case "left":
			sel.move(-1)
		case "right":
			sel.move(1)
		}
		return m, nil
	}
	cmd := d.fields.update(key)
	return m, cmd
}

// ── Eliminación ────────────────────────────────────────────────────────────────

type deleteDialog struct {
	user admin.User
}

func (d deleteDialog) view() (string, string, string) {
	nombre := strings.Join(strings.Fields(d.user.NombreCompleto()), " ")
	body := SectionTitleStyle.Render("Eliminar usuario") + "\n" +
		"¿Seguro que deseas eliminar a " + ValueStyle.Render(nombre) +
		" (cédula " + strconv.FormatInt(d.user.Cedula, 10) + ")?\n\n" +
		MutedStyle.Render("Esta acción no se puede deshacer.")
	return "Buscar usuarios", DialogStyle.Render(body), "▸ S: eliminar • N/Esc: cancelar"
}

func (m Model) updateDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateSearch(msg)
	}
	switch key.String() {
	case "s", "S", "y", "Y":
		m.view = viewSearch
		m.search.loading = true
		ctrl, u := m.users, m.del.user
		return m, func() tea.Msg {
			return userSavedMsg{op: opEliminar, err: ctrl.ApplyDelete(context.Background(), u, true)}
		}
	case "n", "N", "esc":
		m.view = viewSearch
		return m, nil
	}
	return m, nil
}
