package dto

import "time"

// CreateZoneRequest entrada para crear una zona de cobertura (solo admin).
type CreateZoneRequest struct {
	Name        string      `json:"name" validate:"required,min=1,max=200"`
	Description string      `json:"description" validate:"omitempty,max=500"`
	Color       string      `json:"color" validate:"omitempty,hexcolor"`
	Coordinates [][]float64 `json:"coordinates" validate:"required,min=3"`
}

// ZoneResponse salida de una zona.
type ZoneResponse struct {
	ID          string      `json:"id"`
	CompanyID   string      `json:"company_id,omitempty"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Color       string      `json:"color"`
	Coordinates [][]float64 `json:"coordinates"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// ZoneListResponse listado de zonas.
type ZoneListResponse struct {
	Items []ZoneResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
