package entity

// TipoUsuario categoría cerrada de usuarios del sistema. El valor numérico coincide con
// tip_usr_id en la base de datos.
type TipoUsuario int

const (
	TipoAdministrador TipoUsuario = iota + 1
	TipoInstructor
	TipoAlmacen
)

// TiposUsuario lista todos los tipos válidos en orden de id.
var TiposUsuario = []TipoUsuario{TipoAdministrador, TipoInstructor, TipoAlmacen}

// String devuelve el nombre para mostrar ("Administrador", "Instructor", "Almacen").
func (t TipoUsuario) String() string {
	switch t {
	case TipoAdministrador:
		return "Administrador"
	case TipoInstructor:
		return "Instructor"
	case TipoAlmacen:
		return "Almacen"
	}
	return ""
}

// Valid indica si t es uno de los tipos conocidos.
func (t TipoUsuario) Valid() bool {
	return t.String() != ""
}

// ParseTipoUsuario busca el tipo por su nombre para mostrar.
func ParseTipoUsuario(nombre string) (TipoUsuario, bool) {
	for _, t := range TiposUsuario {
		if t.String() == nombre {
			return t, true
		}
	}
	return 0, false
}
