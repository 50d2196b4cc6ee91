package entity

import (
	"strings"
	"time"
)

// User representa un usuario del sistema; la cédula es la llave primaria.
type User struct {
	Cedula          int64
	PrimerNombre    string
	SegundoNombre   string
	PrimerApellido  string
	SegundoApellido string
	Correo          string
	Telefono        string
	CentroID        int
	TipoUsuario     TipoUsuario
	PasswordHash    string // bcrypt hash, nunca plano en dominio después de persistir
	Activo          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NombreCompleto une nombres y apellidos omitiendo los vacíos.
func (u *User) NombreCompleto() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{u.PrimerNombre, u.SegundoNombre, u.PrimerApellido, u.SegundoApellido} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}
