package repository

import (
	"context"

	"github.com/jhoicas/Logistics-api/internal/domain/entity"
)

// ZoneRepository define el puerto de persistencia para Zone (DIP).
type ZoneRepository interface {
	Create(ctx context.Context, zone *entity.Zone) error
	GetByID(ctx context.Context, id string) (*entity.Zone, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Zone, error)
	ClearCompany(ctx context.Context, companyID string) error
}
