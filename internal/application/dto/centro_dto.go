package dto

// CentroResponse centro de formación.
type CentroResponse struct {
	ID     int    `json:"cen_id"`
	Nombre string `json:"cen_nombre"`
}

// CentroListResponse listado de centros envuelto en "data".
type CentroListResponse struct {
	Data []CentroResponse `json:"data"`
}
