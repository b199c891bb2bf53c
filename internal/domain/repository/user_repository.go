package repository

import (
	"context"

	"github.com/jhoicas/Logistics-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// La búsqueda por email es case-insensitive.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	// UpdateStatusIf cambia el estado solo si el estado actual es from.
	// Devuelve false si otra petición ya lo resolvió (update condicional,
	// serializa aprobaciones/rechazos concurrentes).
	UpdateStatusIf(ctx context.Context, id, from, to string) (bool, error)
	ListByCompanyAndStatus(ctx context.Context, companyID, status string, limit, offset int) ([]*entity.User, error)
	DeleteByCompany(ctx context.Context, companyID string) error
}
