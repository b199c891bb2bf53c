package repository

import (
	"context"

	"github.com/jhoicas/Logistics-api/internal/domain/entity"
)

// ShipmentRepository define el puerto de persistencia para Shipment (DIP).
type ShipmentRepository interface {
	Create(ctx context.Context, shipment *entity.Shipment) error
	GetByID(ctx context.Context, id string) (*entity.Shipment, error)
	Update(ctx context.Context, shipment *entity.Shipment) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Shipment, error)
	ListBySender(ctx context.Context, senderID string, limit, offset int) ([]*entity.Shipment, error)
	ListByDriver(ctx context.Context, driverID string, limit, offset int) ([]*entity.Shipment, error)
	ClearCompany(ctx context.Context, companyID string) error
}
