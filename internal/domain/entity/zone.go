package entity

import "time"

// Zone representa una zona de cobertura (recurso scoped a una Company).
// Coordinates es el polígono [lon, lat] de la zona, persistido como JSONB.
type Zone struct {
	ID          string
	CompanyID   *string
	Name        string
	Description string
	Color       string // hex, para el mapa del cliente
	Coordinates [][]float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
