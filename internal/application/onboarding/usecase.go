// Package onboarding implementa el workflow por el cual un solicitante se
// convierte en cuenta activa y scoped:
//
//   - registro de empresa nueva: Company + ADMIN fundador atómicos, el
//     fundador entra ACTIVE directo (único camino a un ADMIN sin aprobación)
//   - solicitud de ingreso: usuario PENDING contra una empresa existente
//   - aprobar / rechazar: un ADMIN de la MISMA empresa resuelve la solicitud
//   - alta directa: un ADMIN crea un usuario ya ACTIVE en su empresa
//
// El estado nunca regresa de ACTIVE a PENDING; las resoluciones concurrentes
// se serializan con un update condicional sobre el estado actual.
package onboarding

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Logistics-api/internal/application/auth"
	"github.com/jhoicas/Logistics-api/internal/application/dto"
	"github.com/jhoicas/Logistics-api/internal/application/ports"
	"github.com/jhoicas/Logistics-api/internal/domain"
	"github.com/jhoicas/Logistics-api/internal/domain/authz"
	"github.com/jhoicas/Logistics-api/internal/domain/entity"
	"github.com/jhoicas/Logistics-api/internal/domain/repository"
	"github.com/jhoicas/Logistics-api/internal/infrastructure/metrics"
)

const defaultDriverRating = 5.0

// UseCase casos de uso del workflow de onboarding.
type UseCase struct {
	tx       ports.TxRunner
	userRepo repository.UserRepository
}

// NewUseCase construye el caso de uso. userRepo se usa para lecturas fuera
// de transacción (cargar el actor); toda escritura pasa por tx.
func NewUseCase(tx ports.TxRunner, userRepo repository.UserRepository) *UseCase {
	return &UseCase{tx: tx, userRepo: userRepo}
}

// RegisterCompany crea una empresa nueva junto con su administrador fundador
// en una sola transacción. Si el email ya está registrado no se persiste
// ninguna de las dos filas (nunca queda una empresa sin su admin).
func (uc *UseCase) RegisterCompany(ctx context.Context, in dto.RegisterCompanyRequest) (*dto.RegisterCompanyResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.AdminEmail))
	if email == "" || in.AdminPassword == "" || in.CompanyName == "" {
		return nil, domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var out dto.RegisterCompanyResponse
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		if existing, err := r.Users.GetByEmail(ctx, email); err != nil {
			return err
		} else if existing != nil {
			return domain.ErrEmailAlreadyExists
		}
		if existing, err := r.Companies.GetByName(ctx, in.CompanyName); err != nil {
			return err
		} else if existing != nil {
			return domain.ErrDuplicate
		}

		now := time.Now()
		company := &entity.Company{
			ID:          uuid.New().String(),
			Name:        in.CompanyName,
			Description: in.CompanyDescription,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := r.Companies.Create(ctx, company); err != nil {
			return err
		}

		admin := &entity.User{
			ID:           uuid.New().String(),
			CompanyID:    &company.ID,
			Email:        email,
			PasswordHash: string(hash),
			Name:         in.AdminName,
			Role:         entity.RoleAdmin,
			Status:       entity.StatusActive, // fundador: ACTIVE sin aprobación
			Rating:       defaultDriverRating,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := r.Users.Create(ctx, admin); err != nil {
			return err
		}

		out = dto.RegisterCompanyResponse{
			Company: toCompanyResponse(company),
			Admin:   *auth.ToUserResponse(admin),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.OnboardingTransitions.WithLabelValues("registered").Inc()
	log.Info().Str("company", out.Company.Name).Str("admin", email).Msg("empresa registrada")
	return &out, nil
}

// SubmitJoinRequest crea un usuario PENDING contra una empresa existente.
// La existencia de la empresa y el alta del usuario se evalúan en la misma
// transacción para que un borrado de empresa concurrente no deje la
// solicitud huérfana.
func (uc *UseCase) SubmitJoinRequest(ctx context.Context, in dto.JoinRequestRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" || in.CompanyID == "" {
		return nil, domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var out *dto.UserResponse
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		company, err := r.Companies.GetByID(ctx, in.CompanyID)
		if err != nil {
			return err
		}
		if company == nil {
			return domain.ErrCompanyNotFound
		}
		if existing, err := r.Users.GetByEmail(ctx, email); err != nil {
			return err
		} else if existing != nil {
			return domain.ErrEmailAlreadyExists
		}

		now := time.Now()
		user := &entity.User{
			ID:           uuid.New().String(),
			CompanyID:    &company.ID,
			Email:        email,
			PasswordHash: string(hash),
			Name:         in.Name,
			Role:         entity.RoleMSME,
			Status:       entity.StatusPending,
			Rating:       defaultDriverRating,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := r.Users.Create(ctx, user); err != nil {
			return err
		}
		out = auth.ToUserResponse(user)
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.OnboardingTransitions.WithLabelValues("requested").Inc()
	log.Info().Str("email", email).Str("company_id", in.CompanyID).Msg("solicitud de ingreso creada")
	return out, nil
}

// ListPending lista las solicitudes PENDING de la empresa del actor.
func (uc *UseCase) ListPending(ctx context.Context, actorID string) ([]dto.UserResponse, error) {
	actor, err := uc.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if d := authz.Authorize(actor, authz.OpResolveOnboarding, nil); !d.Allowed {
		return nil, uc.denied(actor, authz.OpResolveOnboarding, d)
	}
	scope, err := authz.ResolveScope(actor)
	if err != nil {
		return nil, err
	}
	pending, err := uc.userRepo.ListByCompanyAndStatus(ctx, scope, entity.StatusPending, 100, 0)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(pending))
	for _, u := range pending {
		items = append(items, *auth.ToUserResponse(u))
	}
	return items, nil
}

// Approve transiciona un usuario PENDING de la empresa del actor a ACTIVE.
// La lectura del objetivo, el chequeo de tenant y el update condicional
// corren en una transacción: de dos aprobaciones concurrentes exactamente
// una gana y la otra recibe ErrAlreadyResolved.
func (uc *UseCase) Approve(ctx context.Context, actorID, targetID string) (*dto.UserResponse, error) {
	return uc.resolve(ctx, actorID, targetID, entity.StatusActive, "approved")
}

// Reject transiciona un usuario PENDING a REJECTED (terminal: no puede
// autenticarse ni vuelve a aparecer en la lista de pendientes).
func (uc *UseCase) Reject(ctx context.Context, actorID, targetID string) (*dto.UserResponse, error) {
	return uc.resolve(ctx, actorID, targetID, entity.StatusRejected, "rejected")
}

func (uc *UseCase) resolve(ctx context.Context, actorID, targetID, to, transition string) (*dto.UserResponse, error) {
	var out *dto.UserResponse
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		actor, err := r.Users.GetByID(ctx, actorID)
		if err != nil {
			return err
		}
		target, err := r.Users.GetByID(ctx, targetID)
		if err != nil {
			return err
		}
		if target == nil {
			return domain.ErrNotFound
		}

		// El endpoint de aprobación es en sí una operación sobre recurso
		// tenant-owned: el id directo no exime el chequeo de empresa.
		d := authz.Authorize(actor, authz.OpResolveOnboarding, &authz.Target{CompanyID: target.CompanyID})
		if !d.Allowed {
			return uc.denied(actor, authz.OpResolveOnboarding, d)
		}

		ok, err := r.Users.UpdateStatusIf(ctx, targetID, entity.StatusPending, to)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrAlreadyResolved
		}
		target.Status = to
		out = auth.ToUserResponse(target)
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.OnboardingTransitions.WithLabelValues(transition).Inc()
	log.Info().Str("actor_id", actorID).Str("target_id", targetID).Str("transition", transition).Msg("solicitud resuelta")
	return out, nil
}

// CreateUser alta directa por un admin: el usuario nace ACTIVE dentro de la
// empresa del actor, sin pasar por aprobación.
func (uc *UseCase) CreateUser(ctx context.Context, actorID string, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	actor, err := uc.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if d := authz.Authorize(actor, authz.OpManageUsers, nil); !d.Allowed {
		return nil, uc.denied(actor, authz.OpManageUsers, d)
	}
	scope, err := authz.ResolveScope(actor)
	if err != nil {
		return nil, err
	}
	if !entity.ValidRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var out *dto.UserResponse
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		if existing, err := r.Users.GetByEmail(ctx, email); err != nil {
			return err
		} else if existing != nil {
			return domain.ErrEmailAlreadyExists
		}
		now := time.Now()
		user := &entity.User{
			ID:            uuid.New().String(),
			CompanyID:     &scope,
			Email:         email,
			PasswordHash:  string(hash),
			Name:          in.Name,
			Role:          in.Role,
			Status:        entity.StatusActive,
			Phone:         in.Phone,
			LicenseNumber: in.LicenseNumber,
			Rating:        defaultDriverRating,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := r.Users.Create(ctx, user); err != nil {
			return err
		}
		out = auth.ToUserResponse(user)
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.OnboardingTransitions.WithLabelValues("created_direct").Inc()
	log.Info().Str("actor_id", actorID).Str("email", email).Str("role", in.Role).Msg("usuario creado por admin")
	return out, nil
}

func (uc *UseCase) loadActor(ctx context.Context, actorID string) (*entity.User, error) {
	actor, err := uc.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, domain.ErrAccountNotActive
	}
	return actor, nil
}

// denied registra la denegación para auditoría (la distinción interna se
// conserva aunque la capa HTTP la degrade a not-found) y devuelve el motivo.
func (uc *UseCase) denied(actor *entity.User, op authz.Operation, d authz.Decision) error {
	actorID := ""
	if actor != nil {
		actorID = actor.ID
	}
	metrics.AuthzDenials.WithLabelValues(metrics.DenialReason(d.Reason)).Inc()
	log.Warn().Str("actor_id", actorID).Str("op", string(op)).Err(d.Reason).Msg("acceso denegado")
	return d.Reason
}

func toCompanyResponse(c *entity.Company) dto.CompanyResponse {
	return dto.CompanyResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
