package entity

import "time"

// Tipos de vehículo válidos.
const (
	VehicleTruck  = "TRUCK"
	VehicleVan    = "VAN"
	VehiclePickup = "PICKUP"
)

// Estados operativos de un vehículo.
const (
	VehicleAvailable   = "AVAILABLE"
	VehicleInTransit   = "IN_TRANSIT"
	VehicleMaintenance = "MAINTENANCE"
)

// Vehicle representa un vehículo de la flota (recurso scoped a una Company).
// CurrentDriverID vincula el vehículo con el conductor asignado; un DRIVER
// solo puede ver y actualizar vehículos donde él es el asignado.
type Vehicle struct {
	ID              string
	CompanyID       *string
	Name            string
	PlateNumber     string
	VehicleType     string // TRUCK, VAN, PICKUP
	WeightCapacity  float64
	VolumeCapacity  float64
	CurrentDriverID *string
	ZoneID          *string
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
