package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Logistics-api/internal/application/dto"
	"github.com/jhoicas/Logistics-api/internal/domain"
	"github.com/jhoicas/Logistics-api/internal/domain/authz"
	"github.com/jhoicas/Logistics-api/internal/domain/entity"
	"github.com/jhoicas/Logistics-api/internal/domain/repository"
)

// ZoneUseCase aplica reglas de negocio para zonas de cobertura.
type ZoneUseCase struct {
	repo     repository.ZoneRepository
	userRepo repository.UserRepository
}

// NewZoneUseCase construye el caso de uso.
func NewZoneUseCase(repo repository.ZoneRepository, userRepo repository.UserRepository) *ZoneUseCase {
	return &ZoneUseCase{repo: repo, userRepo: userRepo}
}

// Create crea una zona en la empresa del actor (solo admin).
func (uc *ZoneUseCase) Create(ctx context.Context, actorID string, in dto.CreateZoneRequest) (*dto.ZoneResponse, error) {
	actor, err := loadActor(ctx, uc.userRepo, actorID)
	if err != nil {
		return nil, err
	}
	if d := authz.Authorize(actor, authz.OpManageZones, nil); !d.Allowed {
		return nil, denied(actor, authz.OpManageZones, d)
	}
	scope, err := authz.ResolveScope(actor)
	if err != nil {
		return nil, err
	}
	if len(in.Coordinates) < 3 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	zone := &entity.Zone{
		ID:          uuid.New().String(),
		CompanyID:   &scope,
		Name:        in.Name,
		Description: in.Description,
		Color:       in.Color,
		Coordinates: in.Coordinates,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, zone); err != nil {
		return nil, err
	}
	return entityToZoneResponse(zone), nil
}

// List lista las zonas de la empresa del actor.
func (uc *ZoneUseCase) List(ctx context.Context, actorID string, page dto.PageRequest) (*dto.ZoneListResponse, error) {
	actor, err := loadActor(ctx, uc.userRepo, actorID)
	if err != nil {
		return nil, err
	}
	if d := authz.Authorize(actor, authz.OpViewZones, nil); !d.Allowed {
		return nil, denied(actor, authz.OpViewZones, d)
	}
	scope, err := authz.ResolveScope(actor)
	if err != nil {
		return nil, err
	}
	page.DefaultPage()

	list, err := uc.repo.ListByCompany(ctx, scope, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ZoneResponse, 0, len(list))
	for _, z := range list {
		items = append(items, *entityToZoneResponse(z))
	}
	return &dto.ZoneListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// GetByID obtiene una zona, validando scope.
func (uc *ZoneUseCase) GetByID(ctx context.Context, actorID, zoneID string) (*dto.ZoneResponse, error) {
	actor, err := loadActor(ctx, uc.userRepo, actorID)
	if err != nil {
		return nil, err
	}
	zone, err := uc.repo.GetByID(ctx, zoneID)
	if err != nil {
		return nil, err
	}
	if zone == nil {
		return nil, domain.ErrNotFound
	}
	if d := authz.Authorize(actor, authz.OpViewZones, &authz.Target{CompanyID: zone.CompanyID}); !d.Allowed {
		return nil, denied(actor, authz.OpViewZones, d)
	}
	return entityToZoneResponse(zone), nil
}

func entityToZoneResponse(z *entity.Zone) *dto.ZoneResponse {
	if z == nil {
		return nil
	}
	companyID := ""
	if z.CompanyID != nil {
		companyID = *z.CompanyID
	}
	return &dto.ZoneResponse{
		ID:          z.ID,
		CompanyID:   companyID,
		Name:        z.Name,
		Description: z.Description,
		Color:       z.Color,
		Coordinates: z.Coordinates,
		CreatedAt:   z.CreatedAt,
		UpdatedAt:   z.UpdatedAt,
	}
}
