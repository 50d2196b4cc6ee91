package dto

// UserBackend representación de un usuario en la frontera HTTP (nombres de columna en español).
type UserBackend struct {
	Cedula          int64  `json:"usr_cedula"`
	PrimerNombre    string `json:"usr_primer_nombre"`
	SegundoNombre   string `json:"usr_segundo_nombre"`
	PrimerApellido  string `json:"usr_primer_apellido"`
	SegundoApellido string `json:"usr_segundo_apellido"`
	Correo          string `json:"usr_correo"`
	Telefono        string `json:"usr_telefono"`
	CentroID        int    `json:"cen_id"`
	TipoUsuarioID   int    `json:"tip_usr_id"`
}

// UpdateUserRequest actualización parcial; los campos nil no se modifican.
type UpdateUserRequest struct {
	PrimerNombre    *string `json:"usr_primer_nombre,omitempty"`
	SegundoNombre   *string `json:"usr_segundo_nombre,omitempty"`
	PrimerApellido  *string `json:"usr_primer_apellido,omitempty"`
	SegundoApellido *string `json:"usr_segundo_apellido,omitempty"`
	Correo          *string `json:"usr_correo,omitempty"`
	Telefono        *string `json:"usr_telefono,omitempty"`
	CentroID        *int    `json:"cen_id,omitempty"`
	TipoUsuarioID   *int    `json:"tip_usr_id,omitempty"`
}
