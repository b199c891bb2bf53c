package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Logistics-api/internal/application/dto"
	"github.com/jhoicas/Logistics-api/internal/application/ports"
	"github.com/jhoicas/Logistics-api/internal/domain"
	"github.com/jhoicas/Logistics-api/internal/domain/authz"
	"github.com/jhoicas/Logistics-api/internal/domain/entity"
	"github.com/jhoicas/Logistics-api/internal/domain/repository"
)

// ShipmentUseCase aplica reglas de negocio para envíos. Un MSME crea envíos
// y solo ve los suyos; un DRIVER solo ve y actualiza los envíos asignados a
// él; un admin opera sobre todos los de su empresa.
type ShipmentUseCase struct {
	repo     repository.ShipmentRepository
	userRepo repository.UserRepository
	tx       ports.TxRunner
}

// NewShipmentUseCase construye el caso de uso.
func NewShipmentUseCase(repo repository.ShipmentRepository, userRepo repository.UserRepository, tx ports.TxRunner) *ShipmentUseCase {
	return &ShipmentUseCase{repo: repo, userRepo: userRepo, tx: tx}
}

// Create crea un envío. El remitente es siempre el actor autenticado; el
// company_id se deriva del scope del actor, nunca del cliente.
func (uc *ShipmentUseCase) Create(ctx context.Context, actorID string, in dto.CreateShipmentRequest) (*dto.ShipmentResponse, error) {
	actor, err := loadActor(ctx, uc.userRepo, actorID)
	if err != nil {
		return nil, err
	}
	if d := authz.Authorize(actor, authz.OpCreateShipment, nil); !d.Allowed {
		return nil, denied(actor, authz.OpCreateShipment, d)
	}
	scope, err := authz.ResolveScope(actor)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	shipment := &entity.Shipment{
		ID:             uuid.New().String(),
		CompanyID:      &scope,
		TrackingNumber: newTrackingNumber(),
		PONumber:       in.PONumber,
		SenderID:       actor.ID,
		PickupAddress:  in.PickupAddress,
		DropAddress:    in.DropAddress,
		TotalWeight:    in.TotalWeight,
		TotalVolume:    in.TotalVolume,
		Status:         entity.ShipmentPending,
		Description:    in.Description,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, shipment); err != nil {
		return nil, err
	}
	return entityToShipmentResponse(shipment), nil
}

// List lista envíos según el rol: admin ve todos los de su empresa, MSME
// solo los que creó, DRIVER solo los asignados a él.
func (uc *ShipmentUseCase) List(ctx context.Context, actorID string, page dto.PageRequest) (*dto.ShipmentListResponse, error) {
	actor, err := loadActor(ctx, uc.userRepo, actorID)
	if err != nil {
		return nil, err
	}
	if d := authz.Authorize(actor, authz.OpViewShipments, nil); !d.Allowed {
		return nil, denied(actor, authz.OpViewShipments, d)
	}
	scope, err := authz.ResolveScope(actor)
	if err != nil {
		return nil, err
	}
	page.DefaultPage()

	var list []*entity.Shipment
	switch actor.Role {
	case entity.RoleMSME:
		list, err = uc.repo.ListBySender(ctx, actor.ID, page.Limit, page.Offset)
	case entity.RoleDriver:
		list, err = uc.repo.ListByDriver(ctx, actor.ID, page.Limit, page.Offset)
	default:
		list, err = uc.repo.ListByCompany(ctx, scope, page.Limit, page.Offset)
	}
	if err != nil {
		return nil, err
	}

	items := make([]dto.ShipmentResponse, 0, len(list))
	for _, s := range list {
		if d := authz.Authorize(actor, authz.OpViewShipments, shipmentTarget(s)); !d.Allowed {
			continue
		}
		items = append(items, *entityToShipmentResponse(s))
	}
	return &dto.ShipmentListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// GetByID obtiene un envío, validando scope y vínculo con el actor.
func (uc *ShipmentUseCase) GetByID(ctx context.Context, actorID, shipmentID string) (*dto.ShipmentResponse, error) {
	actor, err := loadActor(ctx, uc.userRepo, actorID)
	if err != nil {
		return nil, err
	}
	shipment, err := uc.repo.GetByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	if shipment == nil {
		return nil, domain.ErrNotFound
	}
	if d := authz.Authorize(actor, authz.OpViewShipments, shipmentTarget(shipment)); !d.Allowed {
		return nil, denied(actor, authz.OpViewShipments, d)
	}
	return entityToShipmentResponse(shipment), nil
}

// AssignDriver asigna conductor (y opcionalmente vehículo) a un envío
// pendiente (solo admin). El conductor debe ser un DRIVER activo de la
// misma empresa.
func (uc *ShipmentUseCase) AssignDriver(ctx context.Context, actorID, shipmentID string, in dto.AssignShipmentRequest) (*dto.ShipmentResponse, error) {
	actor, err := loadActor(ctx, uc.userRepo, actorID)
	if err != nil {
		return nil, err
	}

	var out *dto.ShipmentResponse
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		shipment, err := r.Shipments.GetByID(ctx, shipmentID)
		if err != nil {
			return err
		}
		if shipment == nil {
			return domain.ErrNotFound
		}
		if d := authz.Authorize(actor, authz.OpAssignShipment, shipmentTarget(shipment)); !d.Allowed {
			return denied(actor, authz.OpAssignShipment, d)
		}
		if shipment.Status == entity.ShipmentDelivered {
			return domain.ErrAlreadyResolved
		}

		driver, err := r.Users.GetByID(ctx, in.DriverID)
		if err != nil {
			return err
		}
		if driver == nil || driver.Role != entity.RoleDriver || driver.Status != entity.StatusActive {
			return domain.ErrInvalidInput
		}
		if driver.CompanyID == nil || shipment.CompanyID == nil || *driver.CompanyID != *shipment.CompanyID {
			return domain.ErrCrossTenantAccess
		}
		if in.VehicleID != nil {
			vehicle, err := r.Vehicles.GetByID(ctx, *in.VehicleID)
			if err != nil {
				return err
			}
			if vehicle == nil || vehicle.CompanyID == nil || *vehicle.CompanyID != *shipment.CompanyID {
				return domain.ErrInvalidInput
			}
			shipment.VehicleID = &vehicle.ID
		}

		shipment.AssignedDriverID = &driver.ID
		shipment.Status = entity.ShipmentAssigned
		shipment.UpdatedAt = time.Now()
		if err := r.Shipments.Update(ctx, shipment); err != nil {
			return err
		}
		out = entityToShipmentResponse(shipment)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus avanza el estado de un envío. Un admin sobre cualquier envío
// de su empresa; un conductor solo sobre los asignados a él.
func (uc *ShipmentUseCase) UpdateStatus(ctx context.Context, actorID, shipmentID string, in dto.UpdateShipmentStatusRequest) (*dto.ShipmentResponse, error) {
	actor, err := loadActor(ctx, uc.userRepo, actorID)
	if err != nil {
		return nil, err
	}
	switch in.Status {
	case entity.ShipmentPending, entity.ShipmentAssigned, entity.ShipmentInTransit, entity.ShipmentDelivered:
	default:
		return nil, domain.ErrInvalidInput
	}

	var out *dto.ShipmentResponse
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		shipment, err := r.Shipments.GetByID(ctx, shipmentID)
		if err != nil {
			return err
		}
		if shipment == nil {
			return domain.ErrNotFound
		}
		if d := authz.Authorize(actor, authz.OpUpdateShipmentStatus, shipmentTarget(shipment)); !d.Allowed {
			return denied(actor, authz.OpUpdateShipmentStatus, d)
		}
		shipment.Status = in.Status
		shipment.UpdatedAt = time.Now()
		if err := r.Shipments.Update(ctx, shipment); err != nil {
			return err
		}
		out = entityToShipmentResponse(shipment)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// shipmentTarget arma el target del guard: un MSME está vinculado como
// remitente, un DRIVER como conductor asignado.
func shipmentTarget(s *entity.Shipment) *authz.Target {
	t := &authz.Target{CompanyID: s.CompanyID, LinkedUserIDs: []string{s.SenderID}}
	if s.AssignedDriverID != nil {
		t.LinkedUserIDs = append(t.LinkedUserIDs, *s.AssignedDriverID)
	}
	return t
}

func newTrackingNumber() string {
	frag := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return "SHP-" + frag[:12]
}

func entityToShipmentResponse(s *entity.Shipment) *dto.ShipmentResponse {
	if s == nil {
		return nil
	}
	companyID := ""
	if s.CompanyID != nil {
		companyID = *s.CompanyID
	}
	return &dto.ShipmentResponse{
		ID:               s.ID,
		CompanyID:        companyID,
		TrackingNumber:   s.TrackingNumber,
		PONumber:         s.PONumber,
		SenderID:         s.SenderID,
		AssignedDriverID: s.AssignedDriverID,
		VehicleID:        s.VehicleID,
		PickupAddress:    s.PickupAddress,
		DropAddress:      s.DropAddress,
		TotalWeight:      s.TotalWeight,
		TotalVolume:      s.TotalVolume,
		Status:           s.Status,
		Description:      s.Description,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}
