package entity

// Centro representa un centro de formación al que pertenecen los usuarios.
type Centro struct {
	ID     int
	Nombre string
}
