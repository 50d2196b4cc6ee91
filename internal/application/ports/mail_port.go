package ports

import "context"

// Mailer envía correos transaccionales (restablecimiento de contraseña).
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, nombre, link string) error
}
