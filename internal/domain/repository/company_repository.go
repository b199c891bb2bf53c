package repository

import (
	"context"

	"github.com/jhoicas/Logistics-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	GetByName(ctx context.Context, name string) (*entity.Company, error)
	// SearchByName busca empresas por nombre parcial (descubrimiento público
	// del destino de una solicitud de ingreso).
	SearchByName(ctx context.Context, query string, limit int) ([]*entity.Company, error)
	Delete(ctx context.Context, id string) error
}
