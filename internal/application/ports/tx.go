package ports

import (
	"context"

	"github.com/jhoicas/Logistics-api/internal/domain/repository"
)

// Repos agrupa los puertos de persistencia atados a una misma transacción.
type Repos struct {
	Users     repository.UserRepository
	Companies repository.CompanyRepository
	Vehicles  repository.VehicleRepository
	Zones     repository.ZoneRepository
	Shipments repository.ShipmentRepository
}

// TxRunner ejecuta fn dentro de una transacción: todas las lecturas y
// escrituras hechas a través de r ven el mismo snapshot y se confirman o
// revierten juntas. Los chequeos tenant-empresa y los flujos multi-escritura
// (registro de empresa, aprobación, borrado de empresa) corren siempre aquí.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}
