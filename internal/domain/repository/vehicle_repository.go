package repository

import (
	"context"

	"github.com/jhoicas/Logistics-api/internal/domain/entity"
)

// VehicleRepository define el puerto de persistencia para Vehicle (DIP).
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *entity.Vehicle) error
	GetByID(ctx context.Context, id string) (*entity.Vehicle, error)
	Update(ctx context.Context, vehicle *entity.Vehicle) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Vehicle, error)
	ListByDriver(ctx context.Context, driverID string) ([]*entity.Vehicle, error)
	// ClearCompany desvincula (company_id = NULL) los vehículos de una empresa
	// antes de eliminarla; un vehículo sin empresa es invisible a consultas scoped.
	ClearCompany(ctx context.Context, companyID string) error
}
