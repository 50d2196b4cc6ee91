package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTipoUsuario_RoundTrip(t *testing.T) {
	for _, tipo := range TiposUsuario {
		assert.True(t, tipo.Valid())
		got, ok := ParseTipoUsuario(tipo.String())
		assert.True(t, ok, tipo.String())
		assert.Equal(t, tipo, got)
	}
	assert.False(t, TipoUsuario(0).Valid())
	_, ok := ParseTipoUsuario("administrador")
	assert.False(t, ok, "el nombre distingue mayúsculas")
}

func TestSolicitud_PuedeCambiarA(t *testing.T) {
	cases := []struct {
		desde, hacia string
		ok           bool
	}{
		{EstadoPendiente, EstadoAprobada, true},
		{EstadoPendiente, EstadoRechazada, true},
		{EstadoPendiente, EstadoEntregada, false},
		{EstadoAprobada, EstadoEntregada, true},
		{EstadoAprobada, EstadoRechazada, false},
		{EstadoRechazada, EstadoAprobada, false},
		{EstadoEntregada, EstadoPendiente, false},
	}
	for _, tc := range cases {
		s := SolicitudAlmacen{Estado: tc.desde}
		assert.Equal(t, tc.ok, s.PuedeCambiarA(tc.hacia), "%s -> %s", tc.desde, tc.hacia)
	}
}

func TestUser_NombreCompleto(t *testing.T) {
	u := User{PrimerNombre: "Ana", PrimerApellido: "Gómez", SegundoApellido: "Ruiz"}
	assert.Equal(t, "Ana Gómez Ruiz", u.NombreCompleto())
}
