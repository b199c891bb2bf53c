package dto

import "time"

// CreateShipmentRequest entrada para crear un envío (usuario MSME; el
// remitente es siempre el actor autenticado, nunca viene del cliente).
type CreateShipmentRequest struct {
	PONumber      string  `json:"po_number" validate:"omitempty,max=50"`
	PickupAddress string  `json:"pickup_address" validate:"required,min=1,max=500"`
	DropAddress   string  `json:"drop_address" validate:"required,min=1,max=500"`
	TotalWeight   float64 `json:"total_weight" validate:"min=0"`
	TotalVolume   float64 `json:"total_volume" validate:"min=0"`
	Description   string  `json:"description" validate:"omitempty,max=500"`
}

// AssignShipmentRequest entrada para asignar conductor y vehículo a un envío.
type AssignShipmentRequest struct {
	DriverID  string  `json:"driver_id" validate:"required,uuid"`
	VehicleID *string `json:"vehicle_id,omitempty"`
}

// UpdateShipmentStatusRequest entrada para actualizar el estado de un envío.
type UpdateShipmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING ASSIGNED IN_TRANSIT DELIVERED"`
}

// ShipmentResponse salida de un envío.
type ShipmentResponse struct {
	ID               string    `json:"id"`
	CompanyID        string    `json:"company_id,omitempty"`
	TrackingNumber   string    `json:"tracking_number"`
	PONumber         string    `json:"po_number,omitempty"`
	SenderID         string    `json:"sender_id"`
	AssignedDriverID *string   `json:"assigned_driver_id,omitempty"`
	VehicleID        *string   `json:"vehicle_id,omitempty"`
	PickupAddress    string    `json:"pickup_address"`
	DropAddress      string    `json:"drop_address"`
	TotalWeight      float64   `json:"total_weight"`
	TotalVolume      float64   `json:"total_volume"`
	Status           string    `json:"status"`
	Description      string    `json:"description,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ShipmentListResponse listado de envíos.
type ShipmentListResponse struct {
	Items []ShipmentResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
