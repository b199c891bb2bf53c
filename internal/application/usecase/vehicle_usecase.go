package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Logistics-api/internal/application/dto"
	"github.com/jhoicas/Logistics-api/internal/application/ports"
	"github.com/jhoicas/Logistics-api/internal/domain"
	"github.com/jhoicas/Logistics-api/internal/domain/authz"
	"github.com/jhoicas/Logistics-api/internal/domain/entity"
	"github.com/jhoicas/Logistics-api/internal/domain/repository"
)

// VehicleUseCase aplica reglas de negocio para vehículos. Toda operación
// pasa por el guard antes de tocar el store; un DRIVER solo ve y actualiza
// vehículos donde él es el conductor asignado.
type VehicleUseCase struct {
	repo     repository.VehicleRepository
	userRepo repository.UserRepository
	tx       ports.TxRunner
}

// NewVehicleUseCase construye el caso de uso.
func NewVehicleUseCase(repo repository.VehicleRepository, userRepo repository.UserRepository, tx ports.TxRunner) *VehicleUseCase {
	return &VehicleUseCase{repo: repo, userRepo: userRepo, tx: tx}
}

// Create crea un vehículo en la empresa del actor (solo admin). Si se indica
// una zona, debe pertenecer a la misma empresa; la verificación y la escritura
// corren en la misma transacción.
func (uc *VehicleUseCase) Create(ctx context.Context, actorID string, in dto.CreateVehicleRequest) (*dto.VehicleResponse, error) {
	actor, err := loadActor(ctx, uc.userRepo, actorID)
	if err != nil {
		return nil, err
	}
	if d := authz.Authorize(actor, authz.OpManageVehicles, nil); !d.Allowed {
		return nil, denied(actor, authz.OpManageVehicles, d)
	}
	scope, err := authz.ResolveScope(actor)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	vehicle := &entity.Vehicle{
		ID:             uuid.New().String(),
		CompanyID:      &scope,
		Name:           in.Name,
		PlateNumber:    in.PlateNumber,
		VehicleType:    in.VehicleType,
		WeightCapacity: in.WeightCapacity,
		VolumeCapacity: in.VolumeCapacity,
		ZoneID:         in.ZoneID,
		Status:         entity.VehicleAvailable,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		if in.ZoneID != nil {
			zone, err := r.Zones.GetByID(ctx, *in.ZoneID)
			if err != nil {
				return err
			}
			if zone == nil {
				return domain.ErrInvalidInput
			}
			if zone.CompanyID == nil || *zone.CompanyID != scope {
				return domain.ErrCrossTenantAccess
			}
		}
		return r.Vehicles.Create(ctx, vehicle)
	})
	if err != nil {
		return nil, err
	}
	return entityToVehicleResponse(vehicle), nil
}

// List lista vehículos según el rol: un admin ve toda la flota de su empresa,
// un conductor solo los vehículos asignados a él.
func (uc *VehicleUseCase) List(ctx context.Context, actorID string, page dto.PageRequest) (*dto.VehicleListResponse, error) {
	actor, err := loadActor(ctx, uc.userRepo, actorID)
	if err != nil {
		return nil, err
	}
	if d := authz.Authorize(actor, authz.OpViewVehicles, nil); !d.Allowed {
		return nil, denied(actor, authz.OpViewVehicles, d)
	}
	scope, err := authz.ResolveScope(actor)
	if err != nil {
		return nil, err
	}
	page.DefaultPage()

	var list []*entity.Vehicle
	if actor.Role == entity.RoleDriver {
		list, err = uc.repo.ListByDriver(ctx, actor.ID)
	} else {
		list, err = uc.repo.ListByCompany(ctx, scope, page.Limit, page.Offset)
	}
	if err != nil {
		return nil, err
	}

	items := make([]dto.VehicleResponse, 0, len(list))
	for _, v := range list {
		// El listado por conductor no filtra por empresa en SQL; el guard
		// descarta lo que quedó fuera del scope (ej. vehículo re-scopeado).
		if d := authz.Authorize(actor, authz.OpViewVehicles, vehicleTarget(v)); !d.Allowed {
			continue
		}
		items = append(items, *entityToVehicleResponse(v))
	}
	return &dto.VehicleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// GetByID obtiene un vehículo, validando scope y asignación.
func (uc *VehicleUseCase) GetByID(ctx context.Context, actorID, vehicleID string) (*dto.VehicleResponse, error) {
	actor, err := loadActor(ctx, uc.userRepo, actorID)
	if err != nil {
		return nil, err
	}
	vehicle, err := uc.repo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, domain.ErrNotFound
	}
	if d := authz.Authorize(actor, authz.OpViewVehicles, vehicleTarget(vehicle)); !d.Allowed {
		return nil, denied(actor, authz.OpViewVehicles, d)
	}
	return entityToVehicleResponse(vehicle), nil
}

// AssignDriver asigna un conductor a un vehículo (solo admin). El conductor
// debe ser un DRIVER activo de la misma empresa; la lectura del vehículo y
// la escritura corren en la misma transacción.
func (uc *VehicleUseCase) AssignDriver(ctx context.Context, actorID, vehicleID, driverID string) (*dto.VehicleResponse, error) {
	actor, err := loadActor(ctx, uc.userRepo, actorID)
	if err != nil {
		return nil, err
	}

	var out *dto.VehicleResponse
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		vehicle, err := r.Vehicles.GetByID(ctx, vehicleID)
		if err != nil {
			return err
		}
		if vehicle == nil {
			return domain.ErrNotFound
		}
		if d := authz.Authorize(actor, authz.OpManageVehicles, vehicleTarget(vehicle)); !d.Allowed {
			return denied(actor, authz.OpManageVehicles, d)
		}

		driver, err := r.Users.GetByID(ctx, driverID)
		if err != nil {
			return err
		}
		if driver == nil || driver.Role != entity.RoleDriver || driver.Status != entity.StatusActive {
			return domain.ErrInvalidInput
		}
		if driver.CompanyID == nil || vehicle.CompanyID == nil || *driver.CompanyID != *vehicle.CompanyID {
			return domain.ErrCrossTenantAccess
		}

		vehicle.CurrentDriverID = &driver.ID
		vehicle.UpdatedAt = time.Now()
		if err := r.Vehicles.Update(ctx, vehicle); err != nil {
			return err
		}
		out = entityToVehicleResponse(vehicle)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus actualiza el estado operativo de un vehículo. Un admin puede
// sobre cualquier vehículo de su empresa; un conductor solo sobre el suyo.
func (uc *VehicleUseCase) UpdateStatus(ctx context.Context, actorID, vehicleID string, in dto.UpdateVehicleStatusRequest) (*dto.VehicleResponse, error) {
	actor, err := loadActor(ctx, uc.userRepo, actorID)
	if err != nil {
		return nil, err
	}
	switch in.Status {
	case entity.VehicleAvailable, entity.VehicleInTransit, entity.VehicleMaintenance:
	default:
		return nil, domain.ErrInvalidInput
	}

	var out *dto.VehicleResponse
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		vehicle, err := r.Vehicles.GetByID(ctx, vehicleID)
		if err != nil {
			return err
		}
		if vehicle == nil {
			return domain.ErrNotFound
		}
		if d := authz.Authorize(actor, authz.OpUpdateVehicleStatus, vehicleTarget(vehicle)); !d.Allowed {
			return denied(actor, authz.OpUpdateVehicleStatus, d)
		}
		vehicle.Status = in.Status
		vehicle.UpdatedAt = time.Now()
		if err := r.Vehicles.Update(ctx, vehicle); err != nil {
			return err
		}
		out = entityToVehicleResponse(vehicle)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func vehicleTarget(v *entity.Vehicle) *authz.Target {
	t := &authz.Target{CompanyID: v.CompanyID}
	if v.CurrentDriverID != nil {
		t.LinkedUserIDs = []string{*v.CurrentDriverID}
	}
	return t
}

func entityToVehicleResponse(v *entity.Vehicle) *dto.VehicleResponse {
	if v == nil {
		return nil
	}
	companyID := ""
	if v.CompanyID != nil {
		companyID = *v.CompanyID
	}
	return &dto.VehicleResponse{
		ID:              v.ID,
		CompanyID:       companyID,
		Name:            v.Name,
		PlateNumber:     v.PlateNumber,
		VehicleType:     v.VehicleType,
		WeightCapacity:  v.WeightCapacity,
		VolumeCapacity:  v.VolumeCapacity,
		CurrentDriverID: v.CurrentDriverID,
		ZoneID:          v.ZoneID,
		Status:          v.Status,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}
