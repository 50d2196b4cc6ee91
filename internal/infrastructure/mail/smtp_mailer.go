package mail

import (
	"context"
	"fmt"
	"html"

	"github.com/jhoicas/gestion-centros/internal/application/ports"
	"github.com/jhoicas/gestion-centros/pkg/config"
	"github.com/rs/zerolog"
	gomail "gopkg.in/gomail.v2"
)

var (
	_ ports.Mailer = (*SMTPMailer)(nil)
	_ ports.Mailer = (*LogMailer)(nil)
)

// SMTPMailer envía correos por SMTP con gomail.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer construye el mailer a partir de la configuración SMTP.
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

// SendPasswordReset envía el enlace de restablecimiento. gomail no acepta contexto;
// se respeta una cancelación previa al envío.
func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to, nombre, link string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := BuildPasswordReset(m.from, to, nombre, link)
	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("smtp: enviar restablecimiento: %w", err)
	}
	return nil
}

// BuildPasswordReset arma el mensaje de restablecimiento (texto plano + HTML).
func BuildPasswordReset(from, to, nombre, link string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Restablecer contraseña")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Hola %s,\n\nPara restablecer tu contraseña abre el siguiente enlace:\n%s\n\nSi no lo solicitaste, ignora este correo.\n",
		nombre, link))
	msg.AddAlternative("text/html", fmt.Sprintf(
		`<p>Hola %s,</p><p>Para restablecer tu contraseña haz clic <a href="%s">aquí</a>.</p><p>Si no lo solicitaste, ignora este correo.</p>`,
		html.EscapeString(nombre), html.EscapeString(link)))
	return msg
}

// LogMailer registra el enlace en el log en lugar de enviarlo (SMTP sin configurar).
type LogMailer struct {
	log zerolog.Logger
}

// NewLogMailer construye el mailer de desarrollo.
func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) SendPasswordReset(_ context.Context, to, _, link string) error {
	m.log.Warn().Str("to", to).Str("link", link).Msg("SMTP sin configurar: enlace de restablecimiento no enviado")
	return nil
}
