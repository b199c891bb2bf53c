package dto

import "time"

// CreateVehicleRequest entrada para crear un vehículo (solo admin).
type CreateVehicleRequest struct {
	Name           string  `json:"name" validate:"required,min=1,max=200"`
	PlateNumber    string  `json:"plate_number" validate:"required,min=1,max=20"`
	VehicleType    string  `json:"vehicle_type" validate:"required,oneof=TRUCK VAN PICKUP"`
	WeightCapacity float64 `json:"weight_capacity" validate:"min=0"`
	VolumeCapacity float64 `json:"volume_capacity" validate:"min=0"`
	ZoneID         *string `json:"zone_id,omitempty"`
}

// AssignDriverRequest entrada para asignar un conductor a un vehículo.
type AssignDriverRequest struct {
	DriverID string `json:"driver_id" validate:"required,uuid"`
}

// UpdateVehicleStatusRequest entrada para actualizar el estado de un vehículo.
type UpdateVehicleStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=AVAILABLE IN_TRANSIT MAINTENANCE"`
}

// VehicleResponse salida de un vehículo.
type VehicleResponse struct {
	ID              string    `json:"id"`
	CompanyID       string    `json:"company_id,omitempty"`
	Name            string    `json:"name"`
	PlateNumber     string    `json:"plate_number"`
	VehicleType     string    `json:"vehicle_type"`
	WeightCapacity  float64   `json:"weight_capacity"`
	VolumeCapacity  float64   `json:"volume_capacity"`
	CurrentDriverID *string   `json:"current_driver_id,omitempty"`
	ZoneID          *string   `json:"zone_id,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// VehicleListResponse listado de vehículos.
type VehicleListResponse struct {
	Items []VehicleResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
