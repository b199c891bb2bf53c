package entity

import "time"

// Company representa una organización/tenant del sistema. Todo registro de
// negocio (usuario, vehículo, zona, envío) pertenece a lo sumo a una Company;
// un registro con CompanyID NULL queda fuera de cualquier consulta scoped.
type Company struct {
	ID          string
	Name        string // único, usado para descubrir la empresa al solicitar unirse
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
