package usecase

import (
	"context"

	"github.com/jhoicas/Logistics-api/internal/application/auth"
	"github.com/jhoicas/Logistics-api/internal/application/dto"
	"github.com/jhoicas/Logistics-api/internal/domain/authz"
	"github.com/jhoicas/Logistics-api/internal/domain/entity"
	"github.com/jhoicas/Logistics-api/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios ya activos.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// Me devuelve el perfil del actor autenticado.
func (uc *UserUseCase) Me(ctx context.Context, actorID string) (*dto.UserResponse, error) {
	actor, err := loadActor(ctx, uc.repo, actorID)
	if err != nil {
		return nil, err
	}
	return auth.ToUserResponse(actor), nil
}

// ListActive lista los usuarios ACTIVE de la empresa del actor (solo admin).
func (uc *UserUseCase) ListActive(ctx context.Context, actorID string, page dto.PageRequest) (*dto.UserListResponse, error) {
	actor, err := loadActor(ctx, uc.repo, actorID)
	if err != nil {
		return nil, err
	}
	if d := authz.Authorize(actor, authz.OpManageUsers, nil); !d.Allowed {
		return nil, denied(actor, authz.OpManageUsers, d)
	}
	scope, err := authz.ResolveScope(actor)
	if err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.repo.ListByCompanyAndStatus(ctx, scope, entity.StatusActive, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *auth.ToUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}
