package usecase

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Logistics-api/internal/application/dto"
	"github.com/jhoicas/Logistics-api/internal/application/ports"
	"github.com/jhoicas/Logistics-api/internal/domain"
	"github.com/jhoicas/Logistics-api/internal/domain/authz"
	"github.com/jhoicas/Logistics-api/internal/domain/entity"
	"github.com/jhoicas/Logistics-api/internal/domain/repository"
)

// CompanyUseCase aplica reglas de negocio para empresas.
// La búsqueda es pública (descubrimiento del destino de una solicitud de
// ingreso); el borrado es un flujo administrativo scoped al propio tenant.
type CompanyUseCase struct {
	repo     repository.CompanyRepository
	userRepo repository.UserRepository
	tx       ports.TxRunner
}

// NewCompanyUseCase construye el caso de uso.
func NewCompanyUseCase(repo repository.CompanyRepository, userRepo repository.UserRepository, tx ports.TxRunner) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, userRepo: userRepo, tx: tx}
}

// Search busca empresas por nombre parcial (público, máximo 20 resultados).
func (uc *CompanyUseCase) Search(ctx context.Context, query string) ([]dto.CompanyResponse, error) {
	list, err := uc.repo.SearchByName(ctx, query, 20)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *entityToCompanyResponse(c))
	}
	return items, nil
}

// GetByID obtiene una empresa por ID.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return entityToCompanyResponse(company), nil
}

// Delete elimina la empresa del actor (solo su propia empresa). En una sola
// transacción se desvinculan vehículos, zonas y envíos (company_id = NULL),
// se eliminan los usuarios y recién entonces la empresa: nunca quedan
// referencias colgando, y un alta concurrente contra la empresa serializa
// contra este borrado.
func (uc *CompanyUseCase) Delete(ctx context.Context, actorID, companyID string) error {
	actor, err := loadActor(ctx, uc.userRepo, actorID)
	if err != nil {
		return err
	}
	d := authz.Authorize(actor, authz.OpDeleteCompany, &authz.Target{CompanyID: &companyID})
	if !d.Allowed {
		return denied(actor, authz.OpDeleteCompany, d)
	}

	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		company, err := r.Companies.GetByID(ctx, companyID)
		if err != nil {
			return err
		}
		if company == nil {
			return domain.ErrCompanyNotFound
		}
		if err := r.Vehicles.ClearCompany(ctx, companyID); err != nil {
			return err
		}
		if err := r.Zones.ClearCompany(ctx, companyID); err != nil {
			return err
		}
		if err := r.Shipments.ClearCompany(ctx, companyID); err != nil {
			return err
		}
		if err := r.Users.DeleteByCompany(ctx, companyID); err != nil {
			return err
		}
		return r.Companies.Delete(ctx, companyID)
	})
	if err != nil {
		return err
	}
	log.Info().Str("actor_id", actorID).Str("company_id", companyID).Msg("empresa eliminada")
	return nil
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
