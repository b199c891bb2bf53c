package entity

import "time"

// Estados de un envío.
const (
	ShipmentPending   = "PENDING"
	ShipmentAssigned  = "ASSIGNED"
	ShipmentInTransit = "IN_TRANSIT"
	ShipmentDelivered = "DELIVERED"
)

// Shipment representa un envío creado por un usuario MSME (recurso scoped a
// una Company). SenderID vincula el envío con su creador; AssignedDriverID
// con el conductor que lo transporta.
type Shipment struct {
	ID               string
	CompanyID        *string
	TrackingNumber   string
	PONumber         string
	SenderID         string
	AssignedDriverID *string
	VehicleID        *string
	PickupAddress    string
	DropAddress      string
	TotalWeight      float64
	TotalVolume      float64
	Status           string
	Description      string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
