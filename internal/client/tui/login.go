package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jhoicas/gestion-centros/internal/application/dto"
	"github.com/jhoicas/gestion-centros/internal/client/auth"
)

type loginDoneMsg struct {
	resp *dto.LoginResponse
	err  error
}

type forgotDoneMsg struct{ err error }

type resetDoneMsg struct{ err error }

// form grupo de campos de texto con foco rotativo.
type form struct {
	labels []string
	inputs []textinput.Model
	focus  int
}

func newForm(labels ...string) form {
	f := form{labels: labels, inputs: make([]textinput.Model, len(labels))}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = "› "
		ti.CharLimit = 120
		ti.Width = 40
		f.inputs[i] = ti
	}
	return f
}

func (f *form) focusCmd() tea.Cmd {
	for i := range f.inputs {
		if i == f.focus {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
	return textinput.Blink
}

func (f *form) next(delta int) tea.Cmd {
	n := len(f.inputs)
	f.focus = (f.focus + delta + n) % n
	return f.focusCmd()
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f form) value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

func (f form) render() string {
	var b strings.Builder
	for i, in := range f.inputs {
		label := LabelStyle.Render(f.labels[i])
		if i == f.focus {
			label = FocusedLabelStyle.Render(f.labels[i])
		}
		b.WriteString(label + in.View())
		if i < len(f.inputs)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// ── Ingreso ────────────────────────────────────────────────────────────────────

type loginForm struct {
	form
	busy bool
}

func newLoginForm() loginForm {
	f := newForm("Correo", "Contraseña")
	f.inputs[0].Placeholder = "usuario@centro.edu.co"
	f.inputs[1].EchoMode = textinput.EchoPassword
	f.inputs[1].EchoCharacter = '•'
	return loginForm{form: f}
}

func (l *loginForm) focus() tea.Cmd { return l.focusCmd() }

func (l loginForm) view() (string, string, string) {
	body := l.render()
	if l.busy {
		body += "\n\n" + MutedStyle.Render("Validando credenciales...")
	}
	return "Iniciar sesión", CardStyle.Render(body), "▸ Tab: campo • Enter: ingresar • Ctrl+F: olvidé mi contraseña • Ctrl+R: tengo un token • Ctrl+C: salir"
}

// ── Olvido de contraseña ───────────────────────────────────────────────────────

type forgotForm struct{ form }

func newForgotForm() forgotForm {
	f := newForm("Correo")
	return forgotForm{form: f}
}

func (f forgotForm) view() (string, string, string) {
	return "Recuperar contraseña", CardStyle.Render(MutedStyle.Render("Te enviaremos un enlace para restablecerla.") + "\n\n" + f.render()),
		"▸ Enter: enviar • Esc: volver"
}

// ── Restablecimiento ───────────────────────────────────────────────────────────

type resetForm struct{ form }

func newResetForm() resetForm {
	f := newForm("Token", "Nueva contraseña")
	f.inputs[0].CharLimit = 1024
	f.inputs[1].EchoMode = textinput.EchoPassword
	f.inputs[1].EchoCharacter = '•'
	return resetForm{form: f}
}

func (r resetForm) view() (string, string, string) {
	return "Restablecer contraseña", CardStyle.Render(r.render()), "▸ Tab: campo • Enter: guardar • Esc: volver"
}

// ── Update ─────────────────────────────────────────────────────────────────────

func (m Model) updateAuthViews(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		m.login.busy = false
		if msg.err != nil {
			var le *auth.LoginError
			if errors.As(msg.err, &le) {
				return m.setStatus(le.Message, false), nil
			}
			return m.setStatus(msg.err.Error(), false), nil
		}
		m = m.setStatus("", true)
		m.userType, m.cedula = m.auth.UserType(), m.auth.Cedula()
		m.view = m.homeView()
		if m.view == viewSearch {
			cmd := tea.Batch(m.loadUsersCmd(), m.search.focusCmd())
			return m, cmd
		}
		return m, m.loadSolicitudesCmd()

	case forgotDoneMsg:
		if msg.err != nil {
			return m.setStatus(msg.err.Error(), false), nil
		}
		m.view = viewReset
		m.reset = newResetForm()
		m = m.setStatus("Revisa tu correo y pega aquí el token recibido.", true)
		cmd := m.reset.focusCmd()
		return m, cmd

	case resetDoneMsg:
		if msg.err != nil {
			return m.setStatus(msg.err.Error(), false), nil
		}
		return m.toLogin("Contraseña actualizada. Ya puedes iniciar sesión.")

	case tea.KeyMsg:
		return m.authKey(msg)
	}
	return m, nil
}

func (m Model) authKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.view {
	case viewLogin:
		switch msg.String() {
		case "ctrl+f":
			m.view = viewForgot
			m.forgot = newForgotForm()
			m.forgot.inputs[0].SetValue(m.login.value(0))
			m = m.setStatus("", true)
			cmd := m.forgot.focusCmd()
			return m, cmd
		case "ctrl+r":
			m.view = viewReset
			m.reset = newResetForm()
			m = m.setStatus("", true)
			cmd := m.reset.focusCmd()
			return m, cmd
		case "tab", "down":
			cmd := m.login.next(1)
			return m, cmd
		case "shift+tab", "up":
			cmd := m.login.next(-1)
			return m, cmd
		case "enter":
			if m.login.busy {
				return m, nil
			}
			correo, pass := m.login.value(0), m.login.inputs[1].Value()
			if correo == "" || pass == "" {
				return m.setStatus("Ingresa correo y contraseña.", false), nil
			}
			m.login.busy = true
			svc := m.auth
			return m.setStatus("", true), func() tea.Msg {
				resp, err := svc.Login(context.Background(), correo, pass)
				return loginDoneMsg{resp: resp, err: err}
			}
		}
		cmd := m.login.update(msg)
		return m, cmd

	case viewForgot:
		switch msg.String() {
		case "esc":
			return m.toLogin("")
		case "enter":
			correo := m.forgot.value(0)
			if correo == "" {
				return m.setStatus("Ingresa tu correo.", false), nil
			}
			svc := m.auth
			return m, func() tea.Msg {
				return forgotDoneMsg{err: svc.ForgotPassword(context.Background(), correo)}
			}
		}
		cmd := m.forgot.update(msg)
		return m, cmd

	case viewReset:
		switch msg.String() {
		case "esc":
			return m.toLogin("")
		case "tab", "down":
			cmd := m.reset.next(1)
			return m, cmd
		case "shift+tab", "up":
			cmd := m.reset.next(-1)
			return m, cmd
		case "enter":
			token, nueva := m.reset.value(0), m.reset.inputs[1].Value()
			if token == "" || nueva == "" {
				return m.setStatus("Ingresa el token y la nueva contraseña.", false), nil
			}
			svc := m.auth
			return m, func() tea.Msg {
				return resetDoneMsg{err: svc.ResetPassword(context.Background(), token, nueva)}
			}
		}
		cmd := m.reset.update(msg)
		return m, cmd
	}
	return m, nil
}
